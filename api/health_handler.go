package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/devprojects-api/database"
	"github.com/rpupo63/devprojects-api/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          database.Database
	startupTime time.Time
	now         func() time.Time
}

func newHealthHandler(db database.Database, startupTime time.Time, now func() time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
		now:         now,
	}
}

// HealthResponse reports liveness and storage reachability.
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Database  string `json:"database" example:"ok"`
	Uptime    string `json:"uptime" example:"1h2m3s"`
	StartedAt string `json:"startedAt" example:"2024-01-01T00:00:00Z"`
}

// health reports whether the API and its database are reachable
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse "Service Unavailable - Database unreachable"
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("Database unreachable", err))
			return
		}

		h.responder.WriteJSON(w, HealthResponse{
			Status:    "ok",
			Database:  "ok",
			Uptime:    h.now().Sub(h.startupTime).Round(time.Second).String(),
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
		})
	}
}
