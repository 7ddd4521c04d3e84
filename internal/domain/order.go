package domain

import "time"

// OrderStatus represents the status of a stored ticket order
type OrderStatus string

const (
	StatusActive    OrderStatus = "active"
	StatusExpired   OrderStatus = "expired"
	StatusCancelled OrderStatus = "cancelled"
)

// Order represents a railway ticket order placed through the service.
// It is the local record of a booking confirmed by the railway API.
type Order struct {
	ID     int64
	UserID int64

	// Данные подтверждения от railway API
	BookingNumber string
	OrderNumber   string
	FormURL       string
	ExpireTime    time.Time

	// Denormalized trip data for history
	Source         string
	Destination    string
	TravelDate     time.Time
	PassengerCount int
	RoundTrip      bool

	Status OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the order is still active
func (o *Order) IsActive() bool {
	return o.Status == StatusActive
}

// IsPaymentExpired returns true if the payment window has passed
func (o *Order) IsPaymentExpired(now time.Time) bool {
	return now.After(o.ExpireTime)
}

// CanBeCancelled returns true if the order can be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusActive
}
