package timetable

import (
	"context"
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

// RailwaysClient интерфейс клиента railway API
type RailwaysClient interface {
	Locations(ctx context.Context) ([]railways.Location, error)
	SearchTrips(ctx context.Context, src, dest railways.Location, date time.Time, adults, children int) ([]railways.Trip, error)
	GetPriceSummary(ctx context.Context, outbound railways.Trip, inbound *railways.Trip) (railways.PriceSummary, error)
	GetSeats(ctx context.Context, outbound railways.Trip, outboundWagon railways.Wagon, adults, children int, inbound *railways.Trip, inboundWagon *railways.Wagon) (railways.Seats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
