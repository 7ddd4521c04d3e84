package create_order

import (
	"errors"
	"net/http"

	"github.com/atabaev/TMR-BookingAgent/internal/api/handlers"
	"github.com/atabaev/TMR-BookingAgent/internal/api/middleware"
	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
	createOrder "github.com/atabaev/TMR-BookingAgent/internal/usecase/create_order"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidOrderData    = "некорректные данные заказа"
	msgPartialInbound      = "обратное направление задается целиком: рейс, вагон и место"
	msgUnauthorized        = "требуется авторизация"
	msgUpstreamUnavailable = "сервис железной дороги недоступен"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /orders - Failed to parse request: user_id=%d: %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var apiErr *railways.APIError
		switch {
		case errors.Is(err, createOrder.ErrPartialInbound):
			h.logger.Warn("POST /orders - Partial inbound leg: user_id=%d: %v", userID, err)
			handlers.RespondBadRequest(w, msgPartialInbound)

		case errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid order data: user_id=%d: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidOrderData)

		case errors.As(err, &apiErr):
			h.logger.Warn("POST /orders - Upstream rejected booking: user_id=%d id=%s message=%s",
				userID, apiErr.ID, apiErr.Message)
			handlers.RespondError(w, http.StatusUnprocessableEntity, apiErr.Message)

		case errors.Is(err, railways.ErrTransport), errors.Is(err, railways.ErrMalformedResponse):
			h.logger.Error("POST /orders - Upstream unavailable: user_id=%d: %v", userID, err)
			handlers.RespondBadGateway(w, msgUpstreamUnavailable)

		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%d: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created: user_id=%d order_id=%d booking_number=%s persisted=%t",
		userID, result.OrderID, result.BookingNumber, result.Persisted)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
