package get_seats

import (
	"context"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
	"github.com/atabaev/TMR-BookingAgent/internal/service/timetable"
)

type TimetableService interface {
	Seats(ctx context.Context, req timetable.SeatsRequest) (railways.Seats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
