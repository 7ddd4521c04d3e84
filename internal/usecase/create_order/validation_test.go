package create_order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func validRequest() *Request {
	return &Request{
		UserID: 7,
		Contact: ContactInput{
			Mobile:      "+99365123456",
			Email:       "merdan@example.com",
			MainContact: "Merdan Atayev",
		},
		Passengers: []PassengerInput{
			{
				Name:           "Merdan",
				Surname:        "Atayev",
				DOB:            time.Date(1990, 12, 3, 0, 0, 0, 0, time.UTC),
				Tariff:         "adult",
				Gender:         "male",
				IdentityType:   "passport",
				IdentityNumber: "I-AŞ 123456",
			},
		},
		Source:            "Aşgabat",
		Destination:       "Mary",
		TravelDate:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		OutboundJourneyID: 501,
		OutboundWagonID:   42,
		OutboundSeatID:    9001,
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, validateRequest(validRequest(), now))

	roundTrip := validRequest()
	roundTrip.InboundJourneyID = int64Ptr(601)
	roundTrip.InboundWagonID = int64Ptr(55)
	roundTrip.InboundSeatID = int64Ptr(9100)
	require.NoError(t, validateRequest(roundTrip, now))
}

func TestValidateRequest_PartialInbound(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		journey *int64
		wagon   *int64
		seat    *int64
	}{
		{"only journey", int64Ptr(601), nil, nil},
		{"only wagon", nil, int64Ptr(55), nil},
		{"only seat", nil, nil, int64Ptr(9100)},
		{"journey and wagon", int64Ptr(601), int64Ptr(55), nil},
		{"wagon and seat", nil, int64Ptr(55), int64Ptr(9100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.InboundJourneyID = tt.journey
			req.InboundWagonID = tt.wagon
			req.InboundSeatID = tt.seat

			err := validateRequest(req, now)
			assert.ErrorIs(t, err, ErrPartialInbound)
		})
	}
}

func TestValidateRequest_InvalidInput(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user id", func(r *Request) { r.UserID = 0 }},
		{"missing mobile", func(r *Request) { r.Contact.Mobile = "" }},
		{"email without at sign", func(r *Request) { r.Contact.Email = "merdan.example.com" }},
		{"missing main contact", func(r *Request) { r.Contact.MainContact = "" }},
		{"no passengers", func(r *Request) { r.Passengers = nil }},
		{"too many passengers", func(r *Request) {
			for i := 0; i < 10; i++ {
				r.Passengers = append(r.Passengers, r.Passengers[0])
			}
		}},
		{"passenger without name", func(r *Request) { r.Passengers[0].Name = "" }},
		{"future date of birth", func(r *Request) {
			r.Passengers[0].DOB = now.Add(24 * time.Hour)
		}},
		{"unknown tariff", func(r *Request) { r.Passengers[0].Tariff = "senior" }},
		{"unknown gender", func(r *Request) { r.Passengers[0].Gender = "other" }},
		{"missing identity number", func(r *Request) { r.Passengers[0].IdentityNumber = "" }},
		{"missing source", func(r *Request) { r.Source = "" }},
		{"zero travel date", func(r *Request) { r.TravelDate = time.Time{} }},
		{"zero outbound seat", func(r *Request) { r.OutboundSeatID = 0 }},
		{"negative inbound wagon", func(r *Request) {
			r.InboundJourneyID = int64Ptr(601)
			r.InboundWagonID = int64Ptr(-1)
			r.InboundSeatID = int64Ptr(9100)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validateRequest(req, now)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
