package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/georegions-server/internal/logger"
	"github.com/dtroode/georegions-server/internal/model"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health reports liveness together with store reachability.
type Health struct {
	store  model.Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(store model.Pinger, logger *logger.Logger) *Health {
	return &Health{store: store, logger: logger}
}

// Check handles GET /health.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: store unreachable", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: "store unreachable"})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
