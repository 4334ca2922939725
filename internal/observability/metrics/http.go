package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	queryRequestsTotal *prometheus.CounterVec
	queryRetrievalHits *prometheus.CounterVec
	queryNoContext     *prometheus.CounterVec
	queryChunks        *prometheus.HistogramVec
	queryDuration      *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docrag",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docrag",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docrag",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queryRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docrag",
			Subsystem: "rag",
			Name:      "requests_total",
			Help:      "Total successful RAG query requests.",
		},
		[]string{"service", "department"},
	)
	queryRetrievalHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docrag",
			Subsystem: "rag",
			Name:      "retrieval_hit_total",
			Help:      "Total RAG queries with at least one retrieved source.",
		},
		[]string{"service", "department"},
	)
	queryNoContext := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docrag",
			Subsystem: "rag",
			Name:      "no_context_total",
			Help:      "Total RAG queries without retrieved sources.",
		},
		[]string{"service", "department"},
	)
	queryChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docrag",
			Subsystem: "rag",
			Name:      "retrieved_chunks",
			Help:      "Distribution of retrieved chunks per successful query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service", "department"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docrag",
			Subsystem: "rag",
			Name:      "duration_seconds",
			Help:      "End-to-end query duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "department"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		queryRequestsTotal,
		queryRetrievalHits,
		queryNoContext,
		queryChunks,
		queryDuration,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		queryRequestsTotal: queryRequestsTotal,
		queryRetrievalHits: queryRetrievalHits,
		queryNoContext:     queryNoContext,
		queryChunks:        queryChunks,
		queryDuration:      queryDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordQuery(service, department string, sourceCount int, duration time.Duration) {
	if department == "" {
		department = "all"
	}
	m.queryRequestsTotal.WithLabelValues(service, department).Inc()
	m.queryChunks.WithLabelValues(service, department).Observe(float64(sourceCount))
	m.queryDuration.WithLabelValues(service, department).Observe(duration.Seconds())

	if sourceCount > 0 {
		m.queryRetrievalHits.WithLabelValues(service, department).Inc()
		return
	}
	m.queryNoContext.WithLabelValues(service, department).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
