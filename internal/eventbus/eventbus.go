package eventbus

import (
	"context"
	"sync"
	"time"
)

// Типы событий, публикуемых экспортёром.
const (
	EventExportCompleted = "export.completed"
	EventExportFailed    = "export.failed"
)

// Envelope описывает универсальный контейнер события.
type Envelope struct {
	ID        string            // Глобально уникальный идентификатор (UUID).
	Timestamp time.Time         // Время создания события (UTC).
	Source    string            // Имя сервиса-источника.
	EventType string            // Тип события (export.completed…).
	Payload   []byte            // Сериализованный JSON.
	Metadata  map[string]string // Произвольные метаданные.
}

// Filter позволяет подписаться только на нужные события.
type Filter struct {
	Types []string // Если пусто — все типы.
}

// Subscription возвращается при подписке; позволяет отписаться.
type Subscription interface {
	Unsubscribe()
}

// Handler потребляет события.
type Handler func(ctx context.Context, ev *Envelope)

// Stats агрегированные метрики шины.
type Stats struct {
	Published uint64
	Consumed  uint64
	Dropped   uint64
}

// EventBus определяет абстракцию шины событий.
// Реализации: in-memory (по умолчанию) и NATS JetStream.
type EventBus interface {
	Publish(ctx context.Context, ev *Envelope) error
	Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error)
	Metrics() Stats
}

//================ In-Memory implementation =================//

type memoryBus struct {
	mu          sync.RWMutex
	subscribers map[int]subscriber
	nextID      int
	stats       Stats
}

type subscriber struct {
	filter  Filter
	handler Handler
}

// NewMemoryBus создаёт in-memory шину.
// Доставка синхронная: Publish вызывает подходящих подписчиков напрямую.
func NewMemoryBus() EventBus {
	return &memoryBus{
		subscribers: make(map[int]subscriber),
	}
}

func (mb *memoryBus) Publish(ctx context.Context, ev *Envelope) error {
	mb.mu.RLock()
	subs := make([]subscriber, 0, len(mb.subscribers))
	for _, s := range mb.subscribers {
		subs = append(subs, s)
	}
	mb.mu.RUnlock()

	delivered := false
	for _, s := range subs {
		if !s.filter.matches(ev) {
			continue
		}
		s.handler(ctx, ev)
		delivered = true
	}

	mb.mu.Lock()
	mb.stats.Published++
	if delivered {
		mb.stats.Consumed++
	}
	mb.mu.Unlock()
	return nil
}

func (mb *memoryBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	id := mb.nextID
	mb.nextID++
	mb.subscribers[id] = subscriber{filter: f, handler: h}

	return &memorySub{bus: mb, id: id}, nil
}

func (mb *memoryBus) Metrics() Stats {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	return mb.stats
}

type memorySub struct {
	bus *memoryBus
	id  int
}

func (ms *memorySub) Unsubscribe() {
	ms.bus.mu.Lock()
	defer ms.bus.mu.Unlock()
	delete(ms.bus.subscribers, ms.id)
}

// matches проверяет событие против фильтра
func (f Filter) matches(ev *Envelope) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if t == ev.EventType {
			return true
		}
	}
	return false
}
