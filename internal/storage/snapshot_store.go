package storage

import (
	"context"

	"github.com/annel0/dig-planner/internal/mapgrid"
)

// SnapshotStore определяет интерфейс хранилища снимков миров.
// Снимок — это неизменяемая сетка тайлов, снятая один раз;
// экспорт всегда работает с загруженным снимком целиком.
type SnapshotStore interface {
	// SaveWorld сохраняет снимок мира под указанным именем.
	// Повторное сохранение перезаписывает предыдущий снимок.
	SaveWorld(ctx context.Context, world string, snap *mapgrid.Snapshot) error

	// LoadWorld загружает снимок мира.
	// Возвращает:
	//   *mapgrid.Snapshot - снимок
	//   bool - true если мир найден
	//   error - ошибка при загрузке
	LoadWorld(ctx context.Context, world string) (*mapgrid.Snapshot, bool, error)

	// ListWorlds возвращает имена всех сохранённых миров.
	ListWorlds(ctx context.Context) ([]string, error)

	// DeleteWorld удаляет снимок мира.
	DeleteWorld(ctx context.Context, world string) error
}
