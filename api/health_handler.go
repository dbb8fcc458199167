package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const healthPingTimeout = 2 * time.Second

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          pinger
	startupTime time.Time
}

func newHealthHandler(db pinger, renderer Renderer, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger, renderer, flashStore{}),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

// health reports process uptime and whether the database answers a ping
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		response := HealthResponse{
			Status:   "healthy",
			Database: "up",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
		}
		status := http.StatusOK

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("database ping failed")
			response.Status = "unhealthy"
			response.Database = "down"
			status = http.StatusServiceUnavailable
		}

		h.responder.WriteJSON(w, status, response)
	}
}
