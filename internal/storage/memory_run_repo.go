package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRunRepo реализует RunRepo в памяти.
// Используется как fallback, когда MariaDB недоступна,
// или для CI/локальной разработки без БД.
type MemoryRunRepo struct {
	mu   sync.RWMutex
	data map[string]*ExportRun
}

// NewMemoryRunRepo создает новый журнал запусков в памяти
func NewMemoryRunRepo() *MemoryRunRepo {
	return &MemoryRunRepo{
		data: make(map[string]*ExportRun),
	}
}

// Save сохраняет запись о запуске в памяти
func (r *MemoryRunRepo) Save(ctx context.Context, run *ExportRun) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("недействительная запись запуска")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *run
	r.data[run.ID] = &stored
	return nil
}

// Get возвращает запуск по ID
func (r *MemoryRunRepo) Get(ctx context.Context, id string) (*ExportRun, bool, error) {
	if id == "" {
		return nil, false, fmt.Errorf("пустой ID запуска")
	}

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.data[id]
	if !exists {
		return nil, false, nil
	}

	copied := *run
	return &copied, true, nil
}

// List возвращает последние запуски, новые первыми
func (r *MemoryRunRepo) List(ctx context.Context, limit int) ([]*ExportRun, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*ExportRun, 0, len(r.data))
	for _, run := range r.data {
		copied := *run
		runs = append(runs, &copied)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Count возвращает количество записей (для отладки)
func (r *MemoryRunRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
