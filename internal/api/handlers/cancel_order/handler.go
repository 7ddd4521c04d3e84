package cancel_order

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
	msgCannotCancel   = "заказ нельзя отменить в текущем статусе"
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

// Handle DELETE /api/v1/orders/{orderId}
// Отмена помечает заказ в локальной истории, бронирование upstream
// истекает самостоятельно по expire_time.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil || orderID <= 0 {
		h.logger.Warn("DELETE /orders/{orderId} - Invalid order ID: %s", mux.Vars(r)["orderId"])
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	if err := h.service.Cancel(r.Context(), orderID, userID); err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("DELETE /orders/%d - Order not found: user_id=%d", orderID, userID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("DELETE /orders/%d - Access denied: user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, orders.ErrCannotCancel):
			h.logger.Warn("DELETE /orders/%d - Cannot cancel: user_id=%d", orderID, userID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("DELETE /orders/%d - Failed to cancel order: user_id=%d: %v", orderID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /orders/%d - Order cancelled: user_id=%d", orderID, userID)
	w.WriteHeader(http.StatusNoContent)
}
