package get_stations

import (
	"context"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

type TimetableService interface {
	Stations(ctx context.Context) ([]railways.Location, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
