package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/annel0/dig-planner/internal/config"
	"github.com/annel0/dig-planner/internal/logging"
	"github.com/annel0/dig-planner/internal/storage"
	"github.com/annel0/dig-planner/internal/vec"
	"github.com/annel0/dig-planner/internal/worldgen"
)

func main() {
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("worldgen"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	configPath := flag.String("config", "", "Путь к YAML конфигурации (или DIGPLAN_CONFIG)")
	world := flag.String("world", "fortress", "Имя мира в хранилище снимков")
	seed := flag.Int64("seed", 1, "Сид генерации")
	sizeX := flag.Int("sx", 128, "Ширина карты (x)")
	sizeY := flag.Int("sy", 128, "Глубина карты (y)")
	sizeZ := flag.Int("sz", 32, "Количество слоёв (z)")
	origin := flag.Int("origin", 0, "Высота нижнего слоя")
	flag.Parse()

	if err := run(*configPath, *world, *seed, *sizeX, *sizeY, *sizeZ, *origin); err != nil {
		logging.Error("❌ %v", err)
		os.Exit(1)
	}
}

func run(configPath, world string, seed int64, sx, sy, sz, origin int) error {
	log := logging.GetWorldgenLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	if sx < 1 || sy < 1 || sz < 1 {
		return fmt.Errorf("недопустимые размеры карты %dx%dx%d", sx, sy, sz)
	}

	log.Info("🗺️  Генерация мира %q: %dx%dx%d, сид %d", world, sx, sy, sz, seed)

	gen := worldgen.NewGenerator(worldgen.Params{
		Seed:   seed,
		Dims:   vec.Vec3{X: sx, Y: sy, Z: sz},
		Origin: origin,
	})
	grid := gen.Generate()

	snapshots, err := storage.NewBadgerSnapshotStore(cfg.Storage.GetDataPath())
	if err != nil {
		return fmt.Errorf("ошибка открытия хранилища снимков: %w", err)
	}
	defer snapshots.Close()

	if err := snapshots.SaveWorld(context.Background(), world, grid.ToSnapshot()); err != nil {
		return fmt.Errorf("ошибка сохранения снимка: %w", err)
	}

	log.Info("✅ Мир %q сохранён в %s", world, cfg.Storage.GetDataPath())
	return nil
}
