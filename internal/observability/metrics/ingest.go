package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okulikov/docrag/internal/core/domain"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	reindexTotal    *prometheus.CounterVec
	reindexDuration *prometheus.HistogramVec
	reindexInFlight prometheus.Gauge
	corpusFiles     *prometheus.GaugeVec
	corpusChunks    *prometheus.GaugeVec
	errorUnitsTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	reindexTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docrag",
			Subsystem: "worker",
			Name:      "reindex_total",
			Help:      "Total corpus reindex runs by status.",
		},
		[]string{"service", "status"},
	)
	reindexDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docrag",
			Subsystem: "worker",
			Name:      "reindex_duration_seconds",
			Help:      "Corpus reindex duration in seconds by status.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"service", "status"},
	)
	reindexInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docrag",
			Subsystem: "worker",
			Name:      "reindex_in_flight",
			Help:      "Number of in-flight reindex runs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	corpusFiles := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "docrag",
			Subsystem: "worker",
			Name:      "corpus_files",
			Help:      "Files seen by the last completed reindex.",
		},
		[]string{"service"},
	)
	corpusChunks := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "docrag",
			Subsystem: "worker",
			Name:      "corpus_chunks",
			Help:      "Chunks indexed by the last completed reindex.",
		},
		[]string{"service"},
	)
	errorUnitsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docrag",
			Subsystem: "worker",
			Name:      "error_units_total",
			Help:      "Total extraction error units encountered during reindexing.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		reindexTotal,
		reindexDuration,
		reindexInFlight,
		corpusFiles,
		corpusChunks,
		errorUnitsTotal,
	)

	return &WorkerMetrics{
		registry:        registry,
		reindexTotal:    reindexTotal,
		reindexDuration: reindexDuration,
		reindexInFlight: reindexInFlight,
		corpusFiles:     corpusFiles,
		corpusChunks:    corpusChunks,
		errorUnitsTotal: errorUnitsTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartReindex() {
	m.reindexInFlight.Inc()
}

func (m *WorkerMetrics) FinishReindex(service string, stats domain.ReindexStats, err error) {
	m.reindexInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.reindexTotal.WithLabelValues(service, status).Inc()
	m.reindexDuration.WithLabelValues(service, status).Observe(stats.Duration.Seconds())

	if err == nil {
		m.corpusFiles.WithLabelValues(service).Set(float64(stats.Files))
		m.corpusChunks.WithLabelValues(service).Set(float64(stats.Chunks))
	}
	if stats.ErrorUnits > 0 {
		m.errorUnitsTotal.WithLabelValues(service).Add(float64(stats.ErrorUnits))
	}
}
