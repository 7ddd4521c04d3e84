package timetable

import (
	"context"
	"fmt"
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

// Service сервис расписания: станции, поиск рейсов, цены и места.
// Тонкая обертка над railway клиентом: проверяет входные данные и
// пробрасывает ответы upstream как есть (включая порядок рейсов и
// ошибки конверта с их id/message).
type Service struct {
	client RailwaysClient
	logger Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(client RailwaysClient, logger Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// SearchRequest параметры поиска рейсов
type SearchRequest struct {
	SourceID      int64
	DestinationID int64
	Date          time.Time
	Adults        int
	Children      int
}

// SeatsRequest параметры запроса мест.
// Обратное направление задается парой InboundTripID + InboundWagonTypeID
// целиком или не задается вовсе.
type SeatsRequest struct {
	OutboundTripID      int64
	OutboundWagonTypeID int64
	Adults              int
	Children            int
	InboundTripID       *int64
	InboundWagonTypeID  *int64
}

// Stations возвращает справочник станций
func (s *Service) Stations(ctx context.Context) ([]railways.Location, error) {
	locations, err := s.client.Locations(ctx)
	if err != nil {
		s.logger.Error("Stations: failed to fetch locations: %v", err)
		return nil, err
	}

	s.logger.Info("Stations: fetched %d stations", len(locations))
	return locations, nil
}

// Search ищет рейсы. Для несуществующих станций upstream возвращает
// пустой список — это не ошибка, семантика сохраняется.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]railways.Trip, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	trips, err := s.client.SearchTrips(
		ctx,
		railways.Location{ID: req.SourceID},
		railways.Location{ID: req.DestinationID},
		req.Date,
		req.Adults,
		req.Children,
	)
	if err != nil {
		s.logger.Error("Search: src=%d dest=%d: %v", req.SourceID, req.DestinationID, err)
		return nil, err
	}

	return trips, nil
}

// PriceSummary запрашивает цены по рейсу, опционально с обратным рейсом
func (s *Service) PriceSummary(ctx context.Context, outboundTripID int64, inboundTripID *int64) (railways.PriceSummary, error) {
	if outboundTripID <= 0 {
		return railways.PriceSummary{}, fmt.Errorf("%w: outbound trip id must be positive", ErrInvalidInput)
	}
	if inboundTripID != nil && *inboundTripID <= 0 {
		return railways.PriceSummary{}, fmt.Errorf("%w: inbound trip id must be positive", ErrInvalidInput)
	}

	var inbound *railways.Trip
	if inboundTripID != nil {
		inbound = &railways.Trip{ID: *inboundTripID}
	}

	summary, err := s.client.GetPriceSummary(ctx, railways.Trip{ID: outboundTripID}, inbound)
	if err != nil {
		s.logger.Error("PriceSummary: trip=%d: %v", outboundTripID, err)
		return railways.PriceSummary{}, err
	}

	return summary, nil
}

// Seats запрашивает доступные места
func (s *Service) Seats(ctx context.Context, req SeatsRequest) (railways.Seats, error) {
	if err := req.validate(); err != nil {
		return railways.Seats{}, err
	}

	// неполная пара дойдет до railway клиента и вернется как
	// railways.ErrPartialInbound — контракт проверяется в одном месте
	var inboundTrip *railways.Trip
	var inboundWagon *railways.Wagon
	if req.InboundTripID != nil {
		inboundTrip = &railways.Trip{ID: *req.InboundTripID}
	}
	if req.InboundWagonTypeID != nil {
		inboundWagon = &railways.Wagon{ID: *req.InboundWagonTypeID}
	}

	seats, err := s.client.GetSeats(
		ctx,
		railways.Trip{ID: req.OutboundTripID},
		railways.Wagon{ID: req.OutboundWagonTypeID},
		req.Adults,
		req.Children,
		inboundTrip,
		inboundWagon,
	)
	if err != nil {
		s.logger.Error("Seats: trip=%d wagon=%d: %v", req.OutboundTripID, req.OutboundWagonTypeID, err)
		return railways.Seats{}, err
	}

	return seats, nil
}

func (r SearchRequest) validate() error {
	if r.SourceID <= 0 {
		return fmt.Errorf("%w: source id must be positive", ErrInvalidInput)
	}
	if r.DestinationID <= 0 {
		return fmt.Errorf("%w: destination id must be positive", ErrInvalidInput)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if r.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
	}
	if r.Children < 0 {
		return fmt.Errorf("%w: children count must not be negative", ErrInvalidInput)
	}
	return nil
}

func (r SeatsRequest) validate() error {
	if r.OutboundTripID <= 0 {
		return fmt.Errorf("%w: outbound trip id must be positive", ErrInvalidInput)
	}
	if r.OutboundWagonTypeID <= 0 {
		return fmt.Errorf("%w: outbound wagon type id must be positive", ErrInvalidInput)
	}
	if r.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
	}
	if r.Children < 0 {
		return fmt.Errorf("%w: children count must not be negative", ErrInvalidInput)
	}

	// пара inbound параметров задается целиком или никак;
	// само сочетание проверяет railway клиент, здесь — только значения
	if r.InboundTripID != nil && *r.InboundTripID <= 0 {
		return fmt.Errorf("%w: inbound trip id must be positive", ErrInvalidInput)
	}
	if r.InboundWagonTypeID != nil && *r.InboundWagonTypeID <= 0 {
		return fmt.Errorf("%w: inbound wagon type id must be positive", ErrInvalidInput)
	}
	return nil
}
