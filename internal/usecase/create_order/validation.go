package create_order

import (
	"fmt"
	"strings"
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Выполняется до любого сетевого запроса и записи в БД.
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if err := validateContact(req.Contact); err != nil {
		return err
	}

	if len(req.Passengers) < domain.MinPassengersPerOrder {
		return fmt.Errorf("%w: at least one passenger is required", ErrInvalidInput)
	}
	if len(req.Passengers) > domain.MaxPassengersPerOrder {
		return fmt.Errorf("%w: at most %d passengers per order", ErrInvalidInput, domain.MaxPassengersPerOrder)
	}
	for i, passenger := range req.Passengers {
		if err := validatePassenger(i, passenger, now); err != nil {
			return err
		}
	}

	if req.Source == "" || req.Destination == "" {
		return fmt.Errorf("%w: source and destination are required", ErrInvalidInput)
	}
	if req.TravelDate.IsZero() {
		return fmt.Errorf("%w: travelDate is required", ErrInvalidInput)
	}

	if req.OutboundJourneyID <= 0 || req.OutboundWagonID <= 0 || req.OutboundSeatID <= 0 {
		return fmt.Errorf("%w: outbound journey, wagon and seat ids must be positive", ErrInvalidInput)
	}

	return validateInbound(req)
}

// validateInbound проверяет, что обратное направление задано целиком
// либо не задано вовсе. Частичный набор — нарушение контракта
// вызывающего, запрос не должен уходить в сеть.
func validateInbound(req *Request) error {
	hasJourney := req.InboundJourneyID != nil
	hasWagon := req.InboundWagonID != nil
	hasSeat := req.InboundSeatID != nil

	if hasJourney != hasWagon || hasWagon != hasSeat {
		return fmt.Errorf(
			"%w: inbound journey/wagon/seat must be supplied together (journey=%t, wagon=%t, seat=%t)",
			ErrPartialInbound, hasJourney, hasWagon, hasSeat,
		)
	}

	if hasJourney {
		if *req.InboundJourneyID <= 0 || *req.InboundWagonID <= 0 || *req.InboundSeatID <= 0 {
			return fmt.Errorf("%w: inbound journey, wagon and seat ids must be positive", ErrInvalidInput)
		}
	}

	return nil
}

func validateContact(contact ContactInput) error {
	if contact.Mobile == "" {
		return fmt.Errorf("%w: contact mobile is required", ErrInvalidInput)
	}
	if contact.Email == "" || !strings.Contains(contact.Email, "@") {
		return fmt.Errorf("%w: contact email is invalid", ErrInvalidInput)
	}
	if contact.MainContact == "" {
		return fmt.Errorf("%w: main contact name is required", ErrInvalidInput)
	}
	return nil
}

func validatePassenger(index int, passenger PassengerInput, now time.Time) error {
	if passenger.Name == "" || passenger.Surname == "" {
		return fmt.Errorf("%w: passenger %d: name and surname are required", ErrInvalidInput, index)
	}

	if passenger.DOB.IsZero() {
		return fmt.Errorf("%w: passenger %d: date of birth is required", ErrInvalidInput, index)
	}
	if !passenger.DOB.Before(now) {
		return fmt.Errorf("%w: passenger %d: date of birth must be in the past", ErrInvalidInput, index)
	}

	switch passenger.Tariff {
	case "adult", "child":
	default:
		return fmt.Errorf("%w: passenger %d: unknown tariff %q", ErrInvalidInput, index, passenger.Tariff)
	}

	switch passenger.Gender {
	case "male", "female":
	default:
		return fmt.Errorf("%w: passenger %d: unknown gender %q", ErrInvalidInput, index, passenger.Gender)
	}

	if passenger.IdentityType == "" {
		return fmt.Errorf("%w: passenger %d: identity type is required", ErrInvalidInput, index)
	}
	if passenger.IdentityNumber == "" {
		return fmt.Errorf("%w: passenger %d: identity number is required", ErrInvalidInput, index)
	}

	return nil
}
