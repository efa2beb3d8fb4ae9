package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/dig-planner/internal/api"
	"github.com/annel0/dig-planner/internal/config"
	"github.com/annel0/dig-planner/internal/eventbus"
	"github.com/annel0/dig-planner/internal/export"
	"github.com/annel0/dig-planner/internal/logging"
	"github.com/annel0/dig-planner/internal/observability"
	"github.com/annel0/dig-planner/internal/storage"
)

func main() {
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	configPath := flag.String("config", "", "Путь к YAML конфигурации (или DIGPLAN_CONFIG)")
	flag.Parse()

	logging.Info("🎮 Запуск Dig Planner Server...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
		logging.Info("Конфигурация не задана, используются значения по умолчанию")
	}

	ctx := context.Background()

	// === OBSERVABILITY ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, "dig-planner")
	if err != nil {
		logging.Warn("OpenTelemetry недоступен: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// === ХРАНИЛИЩА ===
	snapshots, err := storage.NewBadgerSnapshotStore(cfg.Storage.GetDataPath())
	if err != nil {
		logging.Error("❌ Ошибка открытия хранилища снимков: %v", err)
		log.Fatalf("❌ Ошибка открытия хранилища снимков: %v", err)
	}
	defer snapshots.Close()

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
			logging.Info("✅ Журнал запусков: MariaDB")
		}
	} else {
		runs = storage.NewMemoryRunRepo()
	}

	// === ШИНА СОБЫТИЙ ===
	var bus eventbus.EventBus
	if cfg.EventBus.URL != "" {
		jsBus, err := eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream,
			time.Duration(cfg.EventBus.Retention)*time.Hour)
		if err != nil {
			logging.Warn("NATS недоступен, шина событий в памяти: %v", err)
			bus = eventbus.NewMemoryBus()
		} else {
			defer jsBus.Close()
			bus = jsBus
			logging.Info("✅ Шина событий: NATS JetStream (%s)", cfg.EventBus.URL)
		}
	} else {
		bus = eventbus.NewMemoryBus()
	}

	// === REST API ===
	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	server := api.NewRestServer(api.Config{
		Port:      restPort,
		Service:   export.NewService(runs, bus),
		Runs:      runs,
		Snapshots: snapshots,
		Defaults: export.Options{
			BaseDir:         cfg.Export.GetBaseDir(),
			Spoiler:         cfg.Export.Spoiler,
			IncludeAdjacent: cfg.Export.IncludeAdjacent,
		},
	})

	go func() {
		if err := server.Start(); err != nil {
			logging.Error("❌ Ошибка REST API: %v", err)
		}
	}()

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("   📦 Снимки миров: %s", cfg.Storage.GetDataPath())
	logging.Info("💡 Примеры использования REST API:")
	logging.Info("   curl http://localhost%s/api/worlds", restPort)
	logging.Info("   curl -X POST http://localhost%s/api/export -H 'Content-Type: application/json' -d '{\"world\":\"fortress\"}'", restPort)

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Ждем сигнала для завершения
	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки REST API: %v", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки телеметрии: %v", err)
	}

	logging.Info("✅ Сервер остановлен")
}
