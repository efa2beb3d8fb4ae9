package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Export   ExportConfig   `yaml:"export"`
	Storage  StorageConfig  `yaml:"storage"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Server   ServerConfig   `yaml:"server"`
}

// ExportConfig описывает политику экспорта высотных карт.
type ExportConfig struct {
	BaseDir         string `yaml:"base_dir"`         // Корневая директория артефактов
	World           string `yaml:"world"`            // Имя мира по умолчанию
	Spoiler         bool   `yaml:"spoiler"`          // Раскрывать ли невидимые тайлы
	IncludeAdjacent bool   `yaml:"include_adjacent"` // Брать ли слои под грунтовыми
	Workbook        bool   `yaml:"workbook"`         // Собирать ли xlsx после экспорта
	Zoom            int    `yaml:"zoom"`             // Масштаб листов в процентах
	EmbarkElevation *int   `yaml:"embark_elevation"` // Высота высадки для активного листа
}

// GetBaseDir возвращает директорию артефактов с fallback на умолчание
func (e *ExportConfig) GetBaseDir() string {
	if e.BaseDir != "" {
		return e.BaseDir
	}
	if env := os.Getenv("DIGPLAN_BASE_DIR"); env != "" {
		return env
	}
	return "elevations"
}

// GetZoom возвращает масштаб листов (в процентах)
func (e *ExportConfig) GetZoom() int {
	if e.Zoom > 0 {
		return e.Zoom
	}
	return 25
}

// StorageConfig описывает подключение хранилищ.
type StorageConfig struct {
	DataPath string `yaml:"data_path"` // Путь к BadgerDB со снимками миров
	UseMaria bool   `yaml:"use_maria"` // Писать ли историю запусков в MariaDB
	MariaDSN string `yaml:"maria_dsn"` // user:pass@tcp(host:port)/dbname
}

// GetDataPath возвращает путь к данным с fallback на умолчание
func (s *StorageConfig) GetDataPath() string {
	if s.DataPath != "" {
		return s.DataPath
	}
	if env := os.Getenv("DIGPLAN_DATA_PATH"); env != "" {
		return env
	}
	return "data"
}

// EventBusConfig описывает подключение к шине событий.
type EventBusConfig struct {
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
}

// ServerConfig описывает порты управляющего сервиса.
type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "DIGPLAN_REST_PORT", 8088)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV DIGPLAN_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("DIGPLAN_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
