package get_seats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atabaev/TMR-BookingAgent/internal/api/handlers"
	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
	"github.com/atabaev/TMR-BookingAgent/internal/service/timetable"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTripID       = "некорректный ID рейса"
	msgInvalidSeatsParams  = "некорректные параметры запроса мест"
	msgPartialInbound      = "обратное направление задается парой рейс + тип вагона целиком"
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

// Handle POST /api/v1/trips/{tripId}/seats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(mux.Vars(r)["tripId"], 10, 64)
	if err != nil || tripID <= 0 {
		h.logger.Warn("POST /trips/{tripId}/seats - Invalid trip ID: %s", mux.Vars(r)["tripId"])
		handlers.RespondBadRequest(w, msgInvalidTripID)
		return
	}

	var req GetSeatsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trips/%d/seats - Invalid request body: %v", tripID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	seats, err := h.service.Seats(r.Context(), req.ToServiceRequest(tripID))
	if err != nil {
		var apiErr *railways.APIError
		switch {
		case errors.Is(err, timetable.ErrInvalidInput):
			h.logger.Warn("POST /trips/%d/seats - Invalid params: %v", tripID, err)
			handlers.RespondBadRequest(w, msgInvalidSeatsParams)

		case errors.Is(err, railways.ErrPartialInbound):
			h.logger.Warn("POST /trips/%d/seats - Partial inbound pair: %v", tripID, err)
			handlers.RespondBadRequest(w, msgPartialInbound)

		case errors.As(err, &apiErr):
			h.logger.Warn("POST /trips/%d/seats - Upstream rejected request: id=%s message=%s",
				tripID, apiErr.ID, apiErr.Message)
			handlers.RespondError(w, http.StatusUnprocessableEntity, apiErr.Message)

		case errors.Is(err, railways.ErrTransport), errors.Is(err, railways.ErrMalformedResponse):
			h.logger.Error("POST /trips/%d/seats - Upstream unavailable: %v", tripID, err)
			handlers.RespondBadGateway(w, msgUpstreamUnavailable)

		default:
			h.logger.Error("POST /trips/%d/seats - Failed to fetch seats: %v", tripID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trips/%d/seats - Seats fetched, roundTrip=%t", tripID, req.InboundTripID != nil)
	handlers.RespondJSON(w, http.StatusOK, FromSeats(seats))
}
