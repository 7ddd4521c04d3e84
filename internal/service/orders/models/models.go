package models

import (
	"fmt"
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
)

// OrderResponse модель заказа для внешних слоев
type OrderResponse struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	BookingNumber  string `json:"bookingNumber"`
	OrderNumber    string `json:"orderNumber"`
	FormURL        string `json:"formUrl"`
	ExpireTime     string `json:"expireTime"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	TravelDate     string `json:"travelDate"`
	PassengerCount int    `json:"passengerCount"`
	RoundTrip      bool   `json:"roundTrip"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Total  int              `json:"total"`
}

// GetUserOrdersRequest параметры запроса истории заказов пользователя
type GetUserOrdersRequest struct {
	UserID int64
	Status *string
}

// FromDomainOrder конвертирует domain.Order в OrderResponse
func FromDomainOrder(order *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:             order.ID,
		UserID:         order.UserID,
		BookingNumber:  order.BookingNumber,
		OrderNumber:    order.OrderNumber,
		FormURL:        order.FormURL,
		ExpireTime:     order.ExpireTime.Format(time.RFC3339),
		Source:         order.Source,
		Destination:    order.Destination,
		TravelDate:     order.TravelDate.Format(domain.DateFormat),
		PassengerCount: order.PassengerCount,
		RoundTrip:      order.RoundTrip,
		Status:         string(order.Status),
		CreatedAt:      order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      order.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainOrderList конвертирует список заказов
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	responses := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, FromDomainOrder(order))
	}

	return &OrderListResponse{
		Orders: responses,
		Total:  len(responses),
	}
}

// ToDomainOrderStatus конвертирует строку в domain.OrderStatus
func ToDomainOrderStatus(status string) (domain.OrderStatus, error) {
	switch domain.OrderStatus(status) {
	case domain.StatusActive, domain.StatusExpired, domain.StatusCancelled:
		return domain.OrderStatus(status), nil
	default:
		return "", fmt.Errorf("unknown order status: %s", status)
	}
}
