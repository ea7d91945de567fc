package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"customers-api/internal/api/handler/dto"
	"customers-api/internal/pkg/apperrors"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler accepts a nil db for drivers with nothing to ping.
func NewHealthHandler(db Pinger, l *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: l.With("component", "HealthHandler")}
}

// Health handles GET /health
// @Summary Liveness and database reachability
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.ProblemResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			respondError(w, r, h.logger, apperrors.WrapDatabaseError(err, "health check ping failed"))
			return
		}
	}
	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}
