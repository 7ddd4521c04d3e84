package get_stations

import (
	"errors"
	"net/http"

	"github.com/atabaev/TMR-BookingAgent/internal/api/handlers"
	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

const msgUpstreamUnavailable = "сервис железной дороги недоступен"

type Handler struct {
	service TimetableService
	logger  Logger
}

func NewHandler(service TimetableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stations, err := h.service.Stations(r.Context())
	if err != nil {
		var apiErr *railways.APIError
		switch {
		case errors.As(err, &apiErr):
			h.logger.Warn("GET /stations - Upstream rejected request: id=%s message=%s", apiErr.ID, apiErr.Message)
			handlers.RespondError(w, http.StatusUnprocessableEntity, apiErr.Message)

		case errors.Is(err, railways.ErrTransport), errors.Is(err, railways.ErrMalformedResponse):
			h.logger.Error("GET /stations - Upstream unavailable: %v", err)
			handlers.RespondBadGateway(w, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /stations - Failed to fetch stations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations - Fetched %d stations", len(stations))
	handlers.RespondJSON(w, http.StatusOK, FromLocations(stations))
}
