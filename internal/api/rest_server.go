package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/dig-planner/internal/export"
	"github.com/annel0/dig-planner/internal/logging"
	"github.com/annel0/dig-planner/internal/mapgrid"
	"github.com/annel0/dig-planner/internal/middleware"
	"github.com/annel0/dig-planner/internal/storage"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RestServer представляет REST API сервер экспортёра
type RestServer struct {
	router    *gin.Engine
	srv       *http.Server
	service   *export.Service
	runs      storage.RunRepo
	snapshots storage.SnapshotStore
	port      string
	metrics   *ServerMetrics
	defaults  export.Options
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port      string                // порт для запуска сервера
	Service   *export.Service       // сервис экспорта
	Runs      storage.RunRepo       // журнал запусков
	Snapshots storage.SnapshotStore // хранилище снимков миров
	Defaults  export.Options        // значения по умолчанию для запросов экспорта
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	otelRouter := otelgin.Middleware("rest_api")
	router.Use(otelRouter)

	promMw := middleware.NewPrometheusMiddleware("digplan")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:    router,
		service:   config.Service,
		runs:      config.Runs,
		snapshots: config.Snapshots,
		port:      config.Port,
		metrics:   NewServerMetrics(),
		defaults:  config.Defaults,
	}

	// Настраиваем маршруты
	server.setupRoutes()

	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Группа API
	api := rs.router.Group("/api")
	{
		api.GET("/worlds", rs.handleListWorlds)
		api.DELETE("/worlds/:world", rs.handleDeleteWorld)
		api.POST("/export", rs.handleExport)
		api.GET("/runs", rs.handleListRuns)
		api.GET("/runs/:id", rs.handleGetRun)
		api.GET("/server", rs.handleServerInfo)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// ExportRequest представляет запрос на экспорт мира
type ExportRequest struct {
	World           string `json:"world" binding:"required"`
	Spoiler         *bool  `json:"spoiler"`          // nil - значение из конфигурации
	IncludeAdjacent *bool  `json:"include_adjacent"` // nil - значение из конфигурации
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// handleExport загружает снимок мира и прогоняет батч экспорта
func (rs *RestServer) handleExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	snap, found, err := rs.snapshots.LoadWorld(c.Request.Context(), req.World)
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка загрузки снимка: " + err.Error(),
		})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: fmt.Sprintf("Мир %q не найден", req.World),
		})
		return
	}

	grid, err := mapgrid.FromSnapshot(snap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Повреждённый снимок мира: " + err.Error(),
		})
		return
	}

	opts := rs.defaults
	opts.World = req.World
	if req.Spoiler != nil {
		opts.Spoiler = *req.Spoiler
	}
	if req.IncludeAdjacent != nil {
		opts.IncludeAdjacent = *req.IncludeAdjacent
	}

	result, err := rs.service.Export(c.Request.Context(), grid, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Экспорт не удался: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Экспорт завершён",
		Data: map[string]interface{}{
			"run_id":       result.RunID,
			"world":        result.World,
			"elevations":   result.Elevations,
			"artifact_dir": result.ArtifactDir,
			"duration_ms":  result.Duration.Milliseconds(),
		},
	})
}

// handleListWorlds возвращает имена сохранённых миров
func (rs *RestServer) handleListWorlds(c *gin.Context) {
	worlds, err := rs.snapshots.ListWorlds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка чтения хранилища: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список миров",
		Data: map[string]interface{}{
			"worlds": worlds,
			"total":  len(worlds),
		},
	})
}

// handleDeleteWorld удаляет снимок мира
func (rs *RestServer) handleDeleteWorld(c *gin.Context) {
	world := c.Param("world")
	if err := rs.snapshots.DeleteWorld(c.Request.Context(), world); err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка удаления мира: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: fmt.Sprintf("Мир %q удалён", world),
	})
}

// handleListRuns возвращает последние запуски экспорта
func (rs *RestServer) handleListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	runs, err := rs.runs.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Журнал запусков недоступен: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список запусков",
		Data: map[string]interface{}{
			"runs":  runs,
			"limit": limit,
			"total": len(runs),
		},
	})
}

// handleGetRun возвращает запуск по ID
func (rs *RestServer) handleGetRun(c *gin.Context) {
	run, found, err := rs.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Журнал запусков недоступен: " + err.Error(),
		})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Запуск не найден",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Запуск найден",
		Data:    run,
	})
}

// handleServerInfo возвращает информацию о сервере
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	// Получаем реальные метрики
	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()
	systemCPU, _ := rs.metrics.GetSystemCPUUsage()

	info := map[string]interface{}{
		"version":        "v0.2.1",
		"name":           "Dig Planner",
		"status":         "running",
		"uptime":         rs.metrics.GetUptime(),
		"memory_mb":      fmt.Sprintf("%.1f", memoryMB),
		"cpu_percent":    fmt.Sprintf("%.1f", cpuPercent),
		"system_cpu":     fmt.Sprintf("%.1f", systemCPU),
		"memory_details": rs.metrics.GetDetailedMemoryStats(),
		"server_time":    time.Now().Unix(),
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    info,
	})
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Start запускает REST сервер; блокирует до остановки
func (rs *RestServer) Start() error {
	rs.srv = &http.Server{
		Addr:    rs.port,
		Handler: rs.router,
	}

	logging.Info("🌐 REST API слушает %s", rs.port)
	if err := rs.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop останавливает REST сервер с дожиданием активных запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	if rs.srv == nil {
		return nil
	}
	return rs.srv.Shutdown(ctx)
}
