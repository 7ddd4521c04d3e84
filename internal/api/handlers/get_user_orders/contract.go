package get_user_orders

import (
	"context"

	"github.com/atabaev/TMR-BookingAgent/internal/service/orders/models"
)

type OrdersService interface {
	GetUserOrders(ctx context.Context, req *models.GetUserOrdersRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
