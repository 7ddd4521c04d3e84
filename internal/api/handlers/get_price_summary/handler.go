package get_price_summary

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
	msgInvalidTripID       = "некорректный ID рейса"
	msgInvalidInboundID    = "некорректный ID обратного рейса"
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

// Handle GET /api/v1/trips/{tripId}/price-summary
// Обратный рейс задается query-параметром ?inbound=<tripId>.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tripID, err := strconv.ParseInt(mux.Vars(r)["tripId"], 10, 64)
	if err != nil || tripID <= 0 {
		h.logger.Warn("GET /trips/{tripId}/price-summary - Invalid trip ID: %s", mux.Vars(r)["tripId"])
		handlers.RespondBadRequest(w, msgInvalidTripID)
		return
	}

	var inboundTripID *int64
	if raw := r.URL.Query().Get("inbound"); raw != "" {
		inbound, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || inbound <= 0 {
			h.logger.Warn("GET /trips/%d/price-summary - Invalid inbound trip ID: %s", tripID, raw)
			handlers.RespondBadRequest(w, msgInvalidInboundID)
			return
		}
		inboundTripID = &inbound
	}

	summary, err := h.service.PriceSummary(r.Context(), tripID, inboundTripID)
	if err != nil {
		var apiErr *railways.APIError
		switch {
		case errors.Is(err, timetable.ErrInvalidInput):
			h.logger.Warn("GET /trips/%d/price-summary - Invalid params: %v", tripID, err)
			handlers.RespondBadRequest(w, msgInvalidTripID)

		case errors.As(err, &apiErr):
			h.logger.Warn("GET /trips/%d/price-summary - Upstream rejected request: id=%s message=%s",
				tripID, apiErr.ID, apiErr.Message)
			handlers.RespondError(w, http.StatusUnprocessableEntity, apiErr.Message)

		case errors.Is(err, railways.ErrTransport), errors.Is(err, railways.ErrMalformedResponse):
			h.logger.Error("GET /trips/%d/price-summary - Upstream unavailable: %v", tripID, err)
			handlers.RespondBadGateway(w, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /trips/%d/price-summary - Failed to fetch prices: %v", tripID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /trips/%d/price-summary - Prices fetched, roundTrip=%t", tripID, inboundTripID != nil)
	handlers.RespondJSON(w, http.StatusOK, FromPriceSummary(summary))
}
