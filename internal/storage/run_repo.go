package storage

import (
	"context"
	"time"
)

// ExportRun описывает один завершённый (или упавший) запуск экспорта.
type ExportRun struct {
	ID          string        `json:"id"`           // UUID запуска
	World       string        `json:"world"`        // Имя мира
	Spoiler     bool          `json:"spoiler"`      // Режим раскрытия невидимых тайлов
	Elevations  []int         `json:"elevations"`   // Экспортированные высоты, по убыванию
	ArtifactDir string        `json:"artifact_dir"` // Директория с файлами высот
	Workbook    string        `json:"workbook"`     // Путь к xlsx, если собирался
	StartedAt   time.Time     `json:"started_at"`   // Время старта (UTC)
	Duration    time.Duration `json:"duration"`     // Длительность запуска
	Error       string        `json:"error"`        // Текст ошибки для упавших запусков
}

// RunRepo определяет интерфейс журнала запусков экспорта.
// Журнал нужен управляющему сервису: история, повторный доступ
// к артефактам, диагностика упавших запусков.
type RunRepo interface {
	// Save сохраняет запись о запуске.
	Save(ctx context.Context, run *ExportRun) error

	// Get возвращает запуск по ID.
	// Возвращает:
	//   *ExportRun - запись
	//   bool - true если запись найдена
	//   error - ошибка при загрузке
	Get(ctx context.Context, id string) (*ExportRun, bool, error)

	// List возвращает последние запуски, новые первыми.
	// limit <= 0 означает "без ограничения".
	List(ctx context.Context, limit int) ([]*ExportRun, error)
}
