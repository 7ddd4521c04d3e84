package create_order

import (
	"context"
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

// UseCase оформление заказа: бронирование через railway API и запись
// подтверждения в историю заказов
type UseCase struct {
	client       RailwaysClient
	orderRepo    OrderRepository
	timeProvider TimeProvider
	logger       Logger
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NewUseCase создает новый экземпляр usecase оформления заказа
func NewUseCase(
	client RailwaysClient,
	orderRepo OrderRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:       client,
		orderRepo:    orderRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute оформляет заказ.
// Валидация выполняется до сетевого запроса: нарушение контракта
// (частичное обратное направление, некорректные пассажиры) никогда
// не доходит до railway API.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		return nil, err
	}

	uc.logger.Info("Execute: booking tickets for user=%d, passengers=%d, roundTrip=%t",
		req.UserID, len(req.Passengers), req.roundTrip())

	booking, err := uc.client.BookTickets(ctx, uc.toBookingRequest(req))
	if err != nil {
		uc.logger.Error("Execute: booking failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	response := &Response{
		BookingNumber: booking.BookingNumber,
		OrderNumber:   booking.OrderNumber,
		FormURL:       booking.FormURL,
		ExpireTime:    booking.ExpireTime,
	}

	order := &domain.Order{
		UserID:         req.UserID,
		BookingNumber:  booking.BookingNumber,
		OrderNumber:    booking.OrderNumber,
		FormURL:        booking.FormURL,
		ExpireTime:     booking.ExpireTime,
		Source:         req.Source,
		Destination:    req.Destination,
		TravelDate:     req.TravelDate,
		PassengerCount: len(req.Passengers),
		RoundTrip:      req.roundTrip(),
		Status:         domain.StatusActive,
	}

	created, err := uc.orderRepo.Create(ctx, order)
	if err != nil {
		// Бронирование уже создано upstream, откатить его отсюда нельзя.
		// Возвращаем подтверждение, но помечаем, что история не записана.
		uc.logger.Error("Execute: booking %s confirmed but order persistence failed: %v",
			booking.OrderNumber, err)
		return response, nil
	}

	response.OrderID = created.ID
	response.Persisted = true

	uc.logger.Info("Execute: order created, order_id=%d booking_number=%s",
		created.ID, booking.BookingNumber)
	return response, nil
}

// toBookingRequest собирает запрос к railway клиенту.
// Вызывается только после validateRequest.
func (uc *UseCase) toBookingRequest(req *Request) railways.BookingRequest {
	passengers := make([]railways.Passenger, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		passengers = append(passengers, railways.Passenger{
			Name:           p.Name,
			Surname:        p.Surname,
			DOB:            p.DOB,
			Tariff:         p.Tariff,
			Gender:         p.Gender,
			IdentityType:   p.IdentityType,
			IdentityNumber: p.IdentityNumber,
		})
	}

	bookingReq := railways.BookingRequest{
		Contact: railways.Contact{
			Mobile:      req.Contact.Mobile,
			Email:       req.Contact.Email,
			MainContact: req.Contact.MainContact,
		},
		Passengers:      passengers,
		OutboundJourney: railways.JourneySeats{ID: req.OutboundJourneyID},
		OutboundWagon:   railways.WagonSeats{ID: req.OutboundWagonID},
		OutboundSeat:    railways.Seat{ID: req.OutboundSeatID},
		HasMediaWifi:    req.HasMediaWifi,
		HasLunchbox:     req.HasLunchbox,
		BeddingType:     req.BeddingType,
	}

	if req.roundTrip() {
		bookingReq.InboundJourney = &railways.JourneySeats{ID: *req.InboundJourneyID}
		bookingReq.InboundWagon = &railways.WagonSeats{ID: *req.InboundWagonID}
		bookingReq.InboundSeat = &railways.Seat{ID: *req.InboundSeatID}
	}

	return bookingReq
}
