package export

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Метрики пайплайна экспорта:
// * digplan_export_runs_total{status} — counter запусков
// * digplan_layers_exported_total — counter экспортированных слоёв
// * digplan_export_duration_seconds — histogram длительности запусков

var (
	runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "digplan_export_runs_total",
		Help: "Общее число запусков экспорта по статусу (ok/error).",
	}, []string{"status"})

	layersExported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "digplan_layers_exported_total",
		Help: "Общее число экспортированных слоёв.",
	})

	runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "digplan_export_duration_seconds",
		Help:    "Длительность запусков экспорта.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
	})
)

func init() {
	prometheus.MustRegister(runsTotal, layersExported, runDuration)
}
