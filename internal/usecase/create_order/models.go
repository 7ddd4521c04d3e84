package create_order

import "time"

// ContactInput контактные данные для бронирования
type ContactInput struct {
	Mobile      string
	Email       string
	MainContact string
}

// PassengerInput данные одного пассажира
type PassengerInput struct {
	Name           string
	Surname        string
	DOB            time.Time
	Tariff         string
	Gender         string
	IdentityType   string
	IdentityNumber string
}

// Request входные данные оформления заказа
type Request struct {
	UserID int64

	Contact    ContactInput
	Passengers []PassengerInput

	// Данные направления для истории заказов
	Source      string
	Destination string
	TravelDate  time.Time

	OutboundJourneyID int64
	OutboundWagonID   int64
	OutboundSeatID    int64

	// Обратное направление: либо все три, либо ни одного
	InboundJourneyID *int64
	InboundWagonID   *int64
	InboundSeatID    *int64

	HasMediaWifi bool
	HasLunchbox  bool
	BeddingType  string
}

// roundTrip сообщает, задано ли обратное направление.
// Вызывается только после validateRequest.
func (r *Request) roundTrip() bool {
	return r.InboundJourneyID != nil
}

// Response результат оформления заказа
type Response struct {
	OrderID       int64
	BookingNumber string
	OrderNumber   string
	FormURL       string
	ExpireTime    time.Time

	// Persisted false, если бронирование создано upstream, но запись
	// в историю заказов не удалась
	Persisted bool
}
