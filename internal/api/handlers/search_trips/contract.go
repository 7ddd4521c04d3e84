package search_trips

import (
	"context"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
	"github.com/atabaev/TMR-BookingAgent/internal/service/timetable"
)

type TimetableService interface {
	Search(ctx context.Context, req timetable.SearchRequest) ([]railways.Trip, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
