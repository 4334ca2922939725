package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/okulikov/docrag/internal/core/domain"
	"github.com/okulikov/docrag/internal/core/ports"
	"github.com/okulikov/docrag/internal/observability/metrics"
)

type Router struct {
	queryUC ports.QueryService
	catalog ports.DocumentCatalog
	queue   ports.ReindexQueue
	metrics *metrics.HTTPServerMetrics
	logger  *slog.Logger
	opts    Options
}

type Options struct {
	ServiceName    string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxConcurrent  int
	OverloadWait   time.Duration
}

func NewRouter(
	queryUC ports.QueryService,
	catalog ports.DocumentCatalog,
	queue ports.ReindexQueue,
	m *metrics.HTTPServerMetrics,
	logger *slog.Logger,
	opts Options,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "api"
	}
	if opts.OverloadWait <= 0 {
		opts.OverloadWait = 50 * time.Millisecond
	}
	return &Router{
		queryUC: queryUC,
		catalog: catalog,
		queue:   queue,
		metrics: m,
		logger:  logger,
		opts:    opts,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/rag/query", rt.queryRAG)
	mux.HandleFunc("/v1/documents", rt.listDocuments)
	mux.HandleFunc("/v1/reindex", rt.requestReindex)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.opts.ServiceName, handler)
	}
	if rt.opts.MaxConcurrent > 0 {
		handler = backpressureMiddleware(handler, rt.opts.MaxConcurrent, rt.opts.OverloadWait)
	}
	if rt.opts.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.opts.RateLimitRPS, rt.opts.RateLimitBurst)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) queryRAG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req domain.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	start := time.Now()
	resp, err := rt.queryUC.Answer(r.Context(), req)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		if status >= 500 {
			rt.logger.Error("rag query failed", "error", err, "request_id", requestIDFromContext(r.Context()))
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordQuery(rt.opts.ServiceName, req.Department, len(resp.Sources), time.Since(start))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	records, err := rt.catalog.ListDocuments(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		rt.logger.Error("list documents failed", "error", err)
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []domain.DocumentRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": records,
		"total":     len(records),
	})
}

func (rt *Router) requestReindex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Department string `json:"department"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
	}

	if err := rt.queue.PublishReindexRequested(r.Context(), req.Department); err != nil {
		rt.logger.Error("publish reindex request failed", "error", err)
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":     "queued",
		"department": req.Department,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
