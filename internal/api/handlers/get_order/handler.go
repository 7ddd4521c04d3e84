package get_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atabaev/TMR-BookingAgent/internal/api/handlers"
	"github.com/atabaev/TMR-BookingAgent/internal/api/middleware"
	"github.com/atabaev/TMR-BookingAgent/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgOrderNotFound  = "заказ не найден"
	msgAccessDenied   = "нет доступа к этому заказу"
	msgUnauthorized   = "требуется авторизация"
)

type Handler struct {
	service OrdersService
	logger  Logger
}

func NewHandler(service OrdersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil || orderID <= 0 {
		h.logger.Warn("GET /orders/{orderId} - Invalid order ID: %s", mux.Vars(r)["orderId"])
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("GET /orders/%d - Order not found: user_id=%d", orderID, userID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /orders/%d - Access denied: user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /orders/%d - Failed to fetch order: user_id=%d: %v", orderID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, order)
}
