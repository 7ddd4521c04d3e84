package create_order

import (
	"context"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

// RailwaysClient интерфейс клиента railway API
type RailwaysClient interface {
	BookTickets(ctx context.Context, req railways.BookingRequest) (railways.Booking, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
