package search_trips

import (
	"errors"
	"net/http"

	"github.com/atabaev/TMR-BookingAgent/internal/api/handlers"
	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
	"github.com/atabaev/TMR-BookingAgent/internal/service/timetable"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSearchParams = "некорректные параметры поиска"
	msgUpstreamUnavailable = "сервис железной дороги недоступен"
)

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

// Handle POST /api/v1/trips/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SearchTripsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trips/search - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /trips/search - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	trips, err := h.service.Search(r.Context(), serviceReq)
	if err != nil {
		var apiErr *railways.APIError
		switch {
		case errors.Is(err, timetable.ErrInvalidInput):
			h.logger.Warn("POST /trips/search - Invalid params: src=%d dest=%d: %v", req.SourceID, req.DestinationID, err)
			handlers.RespondBadRequest(w, msgInvalidSearchParams)

		case errors.As(err, &apiErr):
			h.logger.Warn("POST /trips/search - Upstream rejected request: id=%s message=%s", apiErr.ID, apiErr.Message)
			handlers.RespondError(w, http.StatusUnprocessableEntity, apiErr.Message)

		case errors.Is(err, railways.ErrTransport), errors.Is(err, railways.ErrMalformedResponse):
			h.logger.Error("POST /trips/search - Upstream unavailable: %v", err)
			handlers.RespondBadGateway(w, msgUpstreamUnavailable)

		default:
			h.logger.Error("POST /trips/search - Search failed: src=%d dest=%d: %v", req.SourceID, req.DestinationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trips/search - Found %d trips: src=%d dest=%d date=%s",
		len(trips), req.SourceID, req.DestinationID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromTrips(trips))
}
