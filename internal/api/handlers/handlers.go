package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/kkrishnan90/mmt-live-api/internal/api/middleware"
	"github.com/kkrishnan90/mmt-live-api/internal/audit"
)

// LogsHandler serves the recent ledger operation audit trail.
type LogsHandler struct {
	sink *audit.Sink
	log  zerolog.Logger
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(sink *audit.Sink, log zerolog.Logger) *LogsHandler {
	return &LogsHandler{sink: sink, log: log}
}

// GetLogs handles GET /api/logs
func (h *LogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	limit := h.sink.Len()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	// Recent treats a non-positive n as "everything"; an explicit limit=0
	// means no records.
	records := []audit.Record{}
	if limit > 0 {
		if recent := h.sink.Recent(limit); recent != nil {
			records = recent
		}
	}

	middleware.WriteJSON(w, http.StatusOK, records)
}

// HealthHandler reports liveness and basic runtime info.
type HealthHandler struct {
	started time.Time
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{started: time.Now().UTC(), version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	})
}
