package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/annel0/dig-planner/internal/mapgrid"
)

// MemorySnapshotStore реализует SnapshotStore в памяти.
// Используется как fallback, когда BadgerDB недоступна,
// или для CI/локальной разработки без диска.
// ВНИМАНИЕ: Данные теряются при перезапуске!
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*mapgrid.Snapshot
}

// NewMemorySnapshotStore создает новое хранилище снимков в памяти
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		data: make(map[string]*mapgrid.Snapshot),
	}
}

// SaveWorld сохраняет снимок мира в памяти
func (s *MemorySnapshotStore) SaveWorld(ctx context.Context, world string, snap *mapgrid.Snapshot) error {
	if world == "" {
		return fmt.Errorf("пустое имя мира")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[world] = snap
	return nil
}

// LoadWorld загружает снимок мира из памяти
func (s *MemorySnapshotStore) LoadWorld(ctx context.Context, world string) (*mapgrid.Snapshot, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, exists := s.data[world]
	return snap, exists, nil
}

// ListWorlds возвращает имена всех сохранённых миров
func (s *MemorySnapshotStore) ListWorlds(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	worlds := make([]string, 0, len(s.data))
	for world := range s.data {
		worlds = append(worlds, world)
	}
	return worlds, nil
}

// DeleteWorld удаляет снимок мира из памяти
func (s *MemorySnapshotStore) DeleteWorld(ctx context.Context, world string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[world]; !exists {
		return fmt.Errorf("мир %q не найден", world)
	}

	delete(s.data, world)
	return nil
}
