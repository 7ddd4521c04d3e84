package get_price_summary

import (
	"context"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

type TimetableService interface {
	PriceSummary(ctx context.Context, outboundTripID int64, inboundTripID *int64) (railways.PriceSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
