package create_order

import (
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
	createOrder "github.com/atabaev/TMR-BookingAgent/internal/usecase/create_order"
)

// ContactRequest контактные данные
type ContactRequest struct {
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	MainContact string `json:"mainContact"`
}

// PassengerRequest данные пассажира
type PassengerRequest struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	DateOfBirth    string `json:"dateOfBirth"` // "1990-12-03"
	Tariff         string `json:"tariff"`      // "adult" / "child"
	Gender         string `json:"gender"`      // "male" / "female"
	IdentityType   string `json:"identityType"`
	IdentityNumber string `json:"identityNumber"`
}

// SeatSelectionRequest выбор места в рамках направления
type SeatSelectionRequest struct {
	JourneyID int64 `json:"journeyId"`
	WagonID   int64 `json:"wagonId"`
	SeatID    int64 `json:"seatId"`
}

// CreateOrderRequest HTTP request model.
// Inbound присутствует только для поездки туда-обратно.
type CreateOrderRequest struct {
	Contact    ContactRequest     `json:"contact"`
	Passengers []PassengerRequest `json:"passengers"`

	Source      string `json:"source"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travelDate"` // "2026-09-15"

	Outbound SeatSelectionRequest  `json:"outbound"`
	Inbound  *SeatSelectionRequest `json:"inbound,omitempty"`

	HasMediaWifi bool   `json:"hasMediaWifi"`
	HasLunchbox  bool   `json:"hasLunchbox"`
	BeddingType  string `json:"beddingType,omitempty"`
}

// CreateOrderResponse HTTP response model
type CreateOrderResponse struct {
	OrderID       int64  `json:"orderId,omitempty"`
	BookingNumber string `json:"bookingNumber"`
	OrderNumber   string `json:"orderNumber"`
	FormURL       string `json:"formUrl"`
	ExpireTime    string `json:"expireTime"`
	Persisted     bool   `json:"persisted"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом дат)
func (r *CreateOrderRequest) ToUseCaseRequest(userID int64) (*createOrder.Request, error) {
	travelDate, err := time.Parse(domain.DateFormat, r.TravelDate)
	if err != nil {
		return nil, err
	}

	passengers := make([]createOrder.PassengerInput, 0, len(r.Passengers))
	for _, p := range r.Passengers {
		dob, err := time.Parse(domain.DateFormat, p.DateOfBirth)
		if err != nil {
			return nil, err
		}

		passengers = append(passengers, createOrder.PassengerInput{
			Name:           p.Name,
			Surname:        p.Surname,
			DOB:            dob,
			Tariff:         p.Tariff,
			Gender:         p.Gender,
			IdentityType:   p.IdentityType,
			IdentityNumber: p.IdentityNumber,
		})
	}

	req := &createOrder.Request{
		UserID: userID,
		Contact: createOrder.ContactInput{
			Mobile:      r.Contact.Mobile,
			Email:       r.Contact.Email,
			MainContact: r.Contact.MainContact,
		},
		Passengers:        passengers,
		Source:            r.Source,
		Destination:       r.Destination,
		TravelDate:        travelDate,
		OutboundJourneyID: r.Outbound.JourneyID,
		OutboundWagonID:   r.Outbound.WagonID,
		OutboundSeatID:    r.Outbound.SeatID,
		HasMediaWifi:      r.HasMediaWifi,
		HasLunchbox:       r.HasLunchbox,
		BeddingType:       r.BeddingType,
	}

	if r.Inbound != nil {
		req.InboundJourneyID = &r.Inbound.JourneyID
		req.InboundWagonID = &r.Inbound.WagonID
		req.InboundSeatID = &r.Inbound.SeatID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *CreateOrderResponse {
	return &CreateOrderResponse{
		OrderID:       resp.OrderID,
		BookingNumber: resp.BookingNumber,
		OrderNumber:   resp.OrderNumber,
		FormURL:       resp.FormURL,
		ExpireTime:    resp.ExpireTime.Format(time.RFC3339),
		Persisted:     resp.Persisted,
	}
}
