package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/annel0/dig-planner/internal/config"
	"github.com/annel0/dig-planner/internal/eventbus"
	"github.com/annel0/dig-planner/internal/export"
	"github.com/annel0/dig-planner/internal/logging"
	"github.com/annel0/dig-planner/internal/mapgrid"
	"github.com/annel0/dig-planner/internal/sheet"
	"github.com/annel0/dig-planner/internal/storage"
)

// unsetElevation — маркер "высота высадки не указана"
const unsetElevation = -99999

func main() {
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("exporter"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	configPath := flag.String("config", "", "Путь к YAML конфигурации (или DIGPLAN_CONFIG)")
	world := flag.String("world", "", "Имя мира в хранилище снимков")
	baseDir := flag.String("basedir", "", "Корневая директория артефактов")
	spoiler := flag.Bool("spoiler", false, "Раскрывать невидимые тайлы")
	adjacent := flag.Bool("adjacent", false, "Брать слои непосредственно под грунтовыми")
	workbook := flag.Bool("workbook", false, "Собрать xlsx книгу после экспорта")
	zoom := flag.Int("zoom", 0, "Масштаб листов книги в процентах")
	embark := flag.Int("embark", unsetElevation, "Высота точки высадки (активный лист книги)")
	flag.Parse()

	if err := run(*configPath, *world, *baseDir, *spoiler, *adjacent, *workbook, *zoom, *embark); err != nil {
		logging.Error("❌ %v", err)
		os.Exit(1)
	}
}

func run(configPath, world, baseDir string, spoiler, adjacent, workbook bool, zoom, embark int) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	// Флаги имеют приоритет над конфигурацией
	if world == "" {
		world = cfg.Export.World
	}
	if world == "" {
		return fmt.Errorf("не указано имя мира (-world или export.world)")
	}
	if baseDir == "" {
		baseDir = cfg.Export.GetBaseDir()
	}
	if !spoiler {
		spoiler = cfg.Export.Spoiler
	}
	if !adjacent {
		adjacent = cfg.Export.IncludeAdjacent
	}
	if !workbook {
		workbook = cfg.Export.Workbook
	}
	if zoom == 0 {
		zoom = cfg.Export.GetZoom()
	}
	var embarkElevation *int
	if embark != unsetElevation {
		embarkElevation = &embark
	} else if cfg.Export.EmbarkElevation != nil {
		embarkElevation = cfg.Export.EmbarkElevation
	}

	logging.Info("🎮 Запуск экспортёра: мир=%q spoiler=%v workbook=%v", world, spoiler, workbook)

	// Хранилище снимков миров
	snapshots, err := storage.NewBadgerSnapshotStore(cfg.Storage.GetDataPath())
	if err != nil {
		return fmt.Errorf("ошибка открытия хранилища снимков: %w", err)
	}
	defer snapshots.Close()

	snap, found, err := snapshots.LoadWorld(ctx, world)
	if err != nil {
		return fmt.Errorf("ошибка загрузки снимка: %w", err)
	}
	if !found {
		return fmt.Errorf("мир %q не найден в хранилище (сгенерируйте его worldgen'ом)", world)
	}

	grid, err := mapgrid.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("повреждённый снимок мира: %w", err)
	}

	// Журнал запусков: MariaDB если настроена, иначе in-memory
	var runs storage.RunRepo
	if cfg.Storage.UseMaria {
		mariaRuns, err := storage.NewMariaRunRepo(cfg.Storage.MariaDSN)
		if err != nil {
			logging.Warn("MariaDB недоступна, журнал запусков в памяти: %v", err)
			runs = storage.NewMemoryRunRepo()
		} else {
			defer mariaRuns.Close()
			runs = mariaRuns
		}
	} else {
		runs = storage.NewMemoryRunRepo()
	}

	// Шина событий: NATS если настроен
	var bus eventbus.EventBus
	if cfg.EventBus.URL != "" {
		jsBus, err := eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream,
			time.Duration(cfg.EventBus.Retention)*time.Hour)
		if err != nil {
			logging.Warn("NATS недоступен, события отключены: %v", err)
		} else {
			defer jsBus.Close()
			bus = jsBus
		}
	}

	service := export.NewService(runs, bus)
	result, err := service.Export(ctx, grid, export.Options{
		World:           world,
		BaseDir:         baseDir,
		Spoiler:         spoiler,
		IncludeAdjacent: adjacent,
	})
	if err != nil {
		return err
	}

	if workbook {
		path := world + ".xlsx"
		if err := sheet.Write(path, result.Records, sheet.Options{
			Zoom:            float64(zoom),
			EmbarkElevation: embarkElevation,
		}); err != nil {
			return fmt.Errorf("ошибка сборки книги: %w", err)
		}
	}

	logging.Info("✅ Готово: %d слоёв, артефакты в %s", len(result.Elevations), result.ArtifactDir)
	return nil
}
