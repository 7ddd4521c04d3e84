package railways

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Client типизированный клиент railway API.
//
// Один экземпляр безопасен для конкурентного использования. Справочник
// станций загружается при первом обращении и кэшируется на время жизни
// клиента (см. locations.go).
type Client struct {
	session *session
	log     Logger

	cache locationCache

	closeOnce sync.Once
}

// NewClient создает новый экземпляр клиента railway API.
// log и metrics могут быть nil — тогда используются no-op реализации.
func NewClient(hostname string, timeout time.Duration, log Logger, metrics Metrics) *Client {
	if log == nil {
		log = nopLogger{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Client{
		session: newSession(hostname, timeout, metrics),
		log:     log,
	}
}

// Close освобождает соединения клиента. Повторные вызовы безопасны.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.session.close()
	})
}

// SearchTrips ищет рейсы по направлению и дате.
// Порядок рейсов в ответе сохраняется как есть — upstream сортирует сам.
// Для несуществующих станций upstream возвращает пустой список, не ошибку.
func (c *Client) SearchTrips(
	ctx context.Context,
	src Location,
	dest Location,
	date time.Time,
	adults int,
	children int,
) ([]Trip, error) {
	c.log.Info("SearchTrips: src=%d dest=%d date=%s adults=%d children=%d",
		src.ID, dest.ID, date.Format(wireDateFormat), adults, children)

	body := newSearchRequest(src.ID, dest.ID, date, adults, children)

	data, err := c.session.postJSON(ctx, "search_trips", pathTrips, body)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Trips *[]tripDTO `json:"trips"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode trips payload: %v", ErrMalformedResponse, err)
	}
	if payload.Trips == nil {
		return nil, missingField("search response", "trips")
	}

	trips := make([]Trip, 0, len(*payload.Trips))
	for _, tripData := range *payload.Trips {
		trip, err := mapTrip(tripData)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	c.log.Info("SearchTrips: found %d trips", len(trips))
	return trips, nil
}

// GetPriceSummary запрашивает цены по выбранным рейсам.
// inbound равный nil означает поездку в одну сторону.
//
// Фактическую итоговую сумму upstream не считает: ответ содержит тарифы
// по вагонам и price_formation, итог складывает вызывающий.
func (c *Client) GetPriceSummary(ctx context.Context, outbound Trip, inbound *Trip) (PriceSummary, error) {
	var inboundID *int64
	if inbound != nil {
		inboundID = &inbound.ID
	}

	data, err := c.session.getJSON(ctx, "price_summary", priceSummaryPath(outbound.ID, inboundID))
	if err != nil {
		return PriceSummary{}, err
	}

	var dto priceSummaryDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return PriceSummary{}, fmt.Errorf("%w: failed to decode price summary payload: %v", ErrMalformedResponse, err)
	}

	return mapPriceSummary(dto)
}

// GetSeats запрашивает доступные места по выбранным рейсам и типам вагонов.
// Обратное направление задается парой inbound + inboundWagon целиком или
// не задается вовсе.
func (c *Client) GetSeats(
	ctx context.Context,
	outbound Trip,
	outboundWagon Wagon,
	adults int,
	children int,
	inbound *Trip,
	inboundWagon *Wagon,
) (Seats, error) {
	if (inbound != nil) != (inboundWagon != nil) {
		return Seats{}, fmt.Errorf(
			"%w: inbound trip and wagon must be supplied together (trip=%t, wagon=%t)",
			ErrPartialInbound, inbound != nil, inboundWagon != nil,
		)
	}

	var inboundTripID, inboundWagonID *int64
	if inbound != nil {
		inboundTripID = &inbound.ID
		inboundWagonID = &inboundWagon.ID
	}

	body := newSeatsRequest(adults, children, outboundWagon.ID, inboundWagonID)

	data, err := c.session.postJSON(ctx, "seats", seatsPath(outbound.ID, inboundTripID), body)
	if err != nil {
		return Seats{}, err
	}

	var dto seatsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return Seats{}, fmt.Errorf("%w: failed to decode seats payload: %v", ErrMalformedResponse, err)
	}

	return mapSeats(dto)
}

// BookTickets отправляет бронирование.
// Контракт вызывающего проверяется до сетевого запроса: обратное
// направление либо задано целиком (journey + wagon + seat), либо никак.
func (c *Client) BookTickets(ctx context.Context, req BookingRequest) (Booking, error) {
	if err := req.validate(); err != nil {
		return Booking{}, err
	}

	c.log.Info("BookTickets: passengers=%d roundTrip=%t", len(req.Passengers), req.roundTrip())

	data, err := c.session.postJSON(ctx, "bookings", pathBookings, req.body())
	if err != nil {
		return Booking{}, err
	}

	var payload struct {
		Booking *bookingDTO `json:"booking"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return Booking{}, fmt.Errorf("%w: failed to decode booking payload: %v", ErrMalformedResponse, err)
	}
	if payload.Booking == nil {
		return Booking{}, missingField("booking response", "booking")
	}

	booking, err := mapBooking(*payload.Booking)
	if err != nil {
		return Booking{}, err
	}

	c.log.Info("BookTickets: booked, booking_number=%s order_number=%s",
		booking.BookingNumber, booking.OrderNumber)
	return booking, nil
}
