package get_user_orders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/atabaev/TMR-BookingAgent/internal/api/handlers"
	"github.com/atabaev/TMR-BookingAgent/internal/api/middleware"
	"github.com/atabaev/TMR-BookingAgent/internal/service/orders"
	"github.com/atabaev/TMR-BookingAgent/internal/service/orders/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidStatus = "некорректный статус заказа"
	msgAccessDenied  = "нет доступа к заказам другого пользователя"
	msgUnauthorized  = "требуется авторизация"
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

// Handle GET /api/v1/users/{userId}/orders
// Опциональный фильтр по статусу: ?status=active|expired|cancelled.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		h.logger.Warn("GET /users/{userId}/orders - Invalid user ID: %s", mux.Vars(r)["userId"])
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Пользователь видит только собственную историю заказов
	if userID != authUserID {
		h.logger.Warn("GET /users/%d/orders - Access denied: auth_user_id=%d", userID, authUserID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetUserOrdersRequest{UserID: userID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetUserOrders(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("GET /users/%d/orders - Invalid status filter: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/%d/orders - Failed to fetch orders: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/%d/orders - Fetched %d orders", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
