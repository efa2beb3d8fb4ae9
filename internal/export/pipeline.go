package export

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/annel0/dig-planner/internal/eventbus"
	"github.com/annel0/dig-planner/internal/logging"
	"github.com/annel0/dig-planner/internal/mapgrid"
	"github.com/annel0/dig-planner/internal/storage"
	"github.com/google/uuid"
)

// Options задаёт параметры одного запуска экспорта.
type Options struct {
	World           string // Имя мира (и поддиректория артефактов)
	BaseDir         string // Корневая директория артефактов
	Spoiler         bool   // Раскрывать ли невидимые тайлы
	IncludeAdjacent bool   // Политика соседних слоёв при отборе
}

// Result — итог запуска экспорта.
type Result struct {
	RunID       string        // UUID запуска
	World       string        // Имя мира
	Elevations  []int         // Экспортированные высоты, по убыванию
	Records     []*Record     // Блоки в порядке отбора (вход рендерера)
	ArtifactDir string        // Директория с файлами высот
	StartedAt   time.Time     // Время старта (UTC)
	Duration    time.Duration // Длительность запуска
}

// Run прогоняет полный батч: обзор слоёв, отбор по политике,
// экспорт и запись каждого отобранного слоя.
//
// Весь конвейер синхронный: сетка уже целиком в памяти, отбор идёт
// строго сверху вниз (спойлер-отсечка чувствительна к порядку),
// файлы пишутся по мере экспорта. Первая ошибка записи обрывает батч.
func Run(src mapgrid.TileSource, opts Options) (*Result, error) {
	log := logging.GetExportLogger()
	started := time.Now().UTC()

	if opts.World == "" {
		return nil, fmt.Errorf("не указано имя мира")
	}

	artifactDir := filepath.Join(opts.BaseDir, opts.World)
	dims := src.Dimensions()
	log.Info("🗺️  Экспорт мира %q: сетка %dx%dx%d, spoiler=%v",
		opts.World, dims.X, dims.Y, dims.Z, opts.Spoiler)

	// Обзор всех слоёв по немаскированным данным
	surveys := mapgrid.SurveyAll(src)

	// Отбор слоёв сверху вниз
	selected := mapgrid.SelectLayers(surveys, mapgrid.SelectPolicy{
		Spoiler:         opts.Spoiler,
		IncludeAdjacent: opts.IncludeAdjacent,
	})
	log.Debug("Отобрано слоёв: %d из %d", len(selected), dims.Z)

	result := &Result{
		RunID:       uuid.NewString(),
		World:       opts.World,
		Elevations:  make([]int, 0, len(selected)),
		Records:     make([]*Record, 0, len(selected)),
		ArtifactDir: artifactDir,
		StartedAt:   started,
	}

	// Экспорт и запись каждого отобранного слоя
	for _, z := range selected {
		rec := ExportLayer(src, z, opts.Spoiler)
		if err := WriteRecord(artifactDir, rec); err != nil {
			runsTotal.WithLabelValues("error").Inc()
			log.Error("❌ Экспорт высоты %d не удался: %v", rec.Elevation, err)
			return nil, err
		}

		result.Elevations = append(result.Elevations, rec.Elevation)
		result.Records = append(result.Records, rec)
		layersExported.Inc()
		log.Trace("Высота %d записана (%d строк)", rec.Elevation, len(rec.Rows))
	}

	result.Duration = time.Since(started)
	runsTotal.WithLabelValues("ok").Inc()
	runDuration.Observe(result.Duration.Seconds())
	log.Info("✅ Экспорт завершён: %d слоёв за %s → %s",
		len(result.Records), result.Duration, artifactDir)

	return result, nil
}

// Service связывает пайплайн с журналом запусков и шиной событий.
// Оба коллаборатора опциональны: nil отключает соответствующий шаг.
type Service struct {
	runs storage.RunRepo
	bus  eventbus.EventBus
}

// NewService создаёт сервис экспорта
func NewService(runs storage.RunRepo, bus eventbus.EventBus) *Service {
	return &Service{runs: runs, bus: bus}
}

// completedPayload — полезная нагрузка события export.completed
type completedPayload struct {
	RunID       string `json:"run_id"`
	World       string `json:"world"`
	Elevations  []int  `json:"elevations"`
	ArtifactDir string `json:"artifact_dir"`
}

// Export запускает батч, записывает его в журнал и публикует событие.
func (s *Service) Export(ctx context.Context, src mapgrid.TileSource, opts Options) (*Result, error) {
	result, err := Run(src, opts)
	if err != nil {
		s.recordFailure(ctx, opts, err)
		return nil, err
	}

	if s.runs != nil {
		run := &storage.ExportRun{
			ID:          result.RunID,
			World:       result.World,
			Spoiler:     opts.Spoiler,
			Elevations:  result.Elevations,
			ArtifactDir: result.ArtifactDir,
			StartedAt:   result.StartedAt,
			Duration:    result.Duration,
		}
		if err := s.runs.Save(ctx, run); err != nil {
			logging.GetExportLogger().Warn("Журнал запусков недоступен: %v", err)
		}
	}

	if s.bus != nil {
		payload, _ := json.Marshal(completedPayload{
			RunID:       result.RunID,
			World:       result.World,
			Elevations:  result.Elevations,
			ArtifactDir: result.ArtifactDir,
		})
		ev := &eventbus.Envelope{
			ID:        uuid.NewString(),
			Timestamp: time.Now().UTC(),
			Source:    "dig-planner",
			EventType: eventbus.EventExportCompleted,
			Payload:   payload,
		}
		if err := s.bus.Publish(ctx, ev); err != nil {
			logging.GetExportLogger().Warn("Событие %s не опубликовано: %v", ev.EventType, err)
		}
	}

	return result, nil
}

// recordFailure заносит упавший запуск в журнал
func (s *Service) recordFailure(ctx context.Context, opts Options, runErr error) {
	if s.runs == nil {
		return
	}

	run := &storage.ExportRun{
		ID:        uuid.NewString(),
		World:     opts.World,
		Spoiler:   opts.Spoiler,
		StartedAt: time.Now().UTC(),
		Error:     runErr.Error(),
	}
	if err := s.runs.Save(ctx, run); err != nil {
		logging.GetExportLogger().Warn("Журнал запусков недоступен: %v", err)
	}
}
