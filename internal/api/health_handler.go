package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"fitplan/internal/concurrent"
	"fitplan/pkg/cache"
	"fitplan/pkg/logger"
)

// HealthHandler canlılık ve hazır olma uçlarını sunar. /health/ready
// bağımlılıklardan biri (veritabanı, önbellek) erişilemezse 503 döner.
type HealthHandler struct {
	db     *sql.DB
	cache  cache.Cache
	pool   *concurrent.WorkerPool
	logger logger.Logger
}

func NewHealthHandler(db *sql.DB, cache cache.Cache, pool *concurrent.WorkerPool, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		pool:   pool,
		logger: logger,
	}
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /health/live", h.Liveness)
	mux.HandleFunc("GET /health/ready", h.Readiness)
}

type healthStatus struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Components map[string]string      `json:"components"`
	AuditQueue map[string]interface{} `json:"audit_queue,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := healthStatus{
		Status:     "ok",
		Timestamp:  time.Now(),
		Components: make(map[string]string),
	}

	if err := h.db.PingContext(ctx); err != nil {
		status.Status = "degraded"
		status.Components["database"] = "down"
		h.logger.Error("Veritabanı sağlık kontrolü başarısız", map[string]interface{}{"error": err.Error()})
	} else {
		status.Components["database"] = "up"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			status.Status = "degraded"
			status.Components["cache"] = "down"
		} else {
			status.Components["cache"] = "up"
		}
	}

	if h.pool != nil {
		stats := h.pool.GetStats()
		status.AuditQueue = map[string]interface{}{
			"length":    h.pool.QueueLength(),
			"capacity":  h.pool.QueueCapacity(),
			"submitted": stats.Submitted,
			"completed": stats.Completed,
			"failed":    stats.Failed,
			"rejected":  stats.Rejected,
		}
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, status)
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
