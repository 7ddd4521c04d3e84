package railways

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchRequest(t *testing.T) {
	date := time.Date(2026, 9, 10, 14, 25, 0, 0, time.UTC)

	body := newSearchRequest(17, 4, date, 2, 1)

	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	// идентификаторы станций уходят строками, время отбрасывается
	assert.JSONEq(t, `{
		"source": "17",
		"destination": "4",
		"date": "2026-09-10",
		"adult": 2,
		"child": 1
	}`, string(encoded))
}

func TestPriceSummaryPath(t *testing.T) {
	assert.Equal(t, "/railway-api/trips/101/price_summary", priceSummaryPath(101, nil))

	inbound := int64(202)
	assert.Equal(t,
		"/railway-api/roundtrips/outbound/101/inbound/202/price_summary",
		priceSummaryPath(101, &inbound),
	)
}

func TestSeatsPath(t *testing.T) {
	assert.Equal(t, "/railway-api/trips/101", seatsPath(101, nil))

	inbound := int64(202)
	assert.Equal(t, "/railway-api/roundtrips/outbound/101/inbound/202", seatsPath(101, &inbound))
}

func TestNewSeatsRequest_OneWayOmitsInboundWagon(t *testing.T) {
	encoded, err := json.Marshal(newSeatsRequest(2, 0, 3, nil))

	require.NoError(t, err)
	assert.JSONEq(t, `{"adult": 2, "child": 0, "outbound_wagon_type_id": 3}`, string(encoded))
}

func TestNewSeatsRequest_RoundTrip(t *testing.T) {
	inboundWagon := int64(7)
	encoded, err := json.Marshal(newSeatsRequest(1, 1, 3, &inboundWagon))

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"adult": 1,
		"child": 1,
		"outbound_wagon_type_id": 3,
		"inbound_wagon_type_id": 7
	}`, string(encoded))
}

func testBookingRequest() BookingRequest {
	return BookingRequest{
		Contact: Contact{
			Mobile:      "+99365000000",
			Email:       "test@example.com",
			MainContact: "Merdan Atayew",
		},
		Passengers: []Passenger{
			{
				Name:           "Merdan",
				Surname:        "Atayew",
				DOB:            time.Date(1990, 12, 3, 0, 0, 0, 0, time.UTC),
				Tariff:         "adult",
				Gender:         "male",
				IdentityType:   "passport",
				IdentityNumber: "I-AS 123456",
			},
		},
		OutboundJourney: JourneySeats{ID: 501},
		OutboundWagon:   WagonSeats{ID: 11},
		OutboundSeat:    Seat{ID: 1001},
	}
}

func TestBookingRequest_Validate_OneWay(t *testing.T) {
	req := testBookingRequest()

	assert.NoError(t, req.validate())
	assert.False(t, req.roundTrip())
}

func TestBookingRequest_Validate_FullInbound(t *testing.T) {
	req := testBookingRequest()
	req.InboundJourney = &JourneySeats{ID: 601}
	req.InboundWagon = &WagonSeats{ID: 21}
	req.InboundSeat = &Seat{ID: 2001}

	assert.NoError(t, req.validate())
	assert.True(t, req.roundTrip())
}

func TestBookingRequest_Validate_PartialInbound(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"only journey", func(r *BookingRequest) {
			r.InboundJourney = &JourneySeats{ID: 601}
		}},
		{"only wagon", func(r *BookingRequest) {
			r.InboundWagon = &WagonSeats{ID: 21}
		}},
		{"only seat", func(r *BookingRequest) {
			r.InboundSeat = &Seat{ID: 2001}
		}},
		{"journey and wagon", func(r *BookingRequest) {
			r.InboundJourney = &JourneySeats{ID: 601}
			r.InboundWagon = &WagonSeats{ID: 21}
		}},
		{"wagon and seat", func(r *BookingRequest) {
			r.InboundWagon = &WagonSeats{ID: 21}
			r.InboundSeat = &Seat{ID: 2001}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testBookingRequest()
			tc.mutate(&req)

			err := req.validate()

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPartialInbound)
		})
	}
}

func TestBookingRequest_Body_OneWay(t *testing.T) {
	req := testBookingRequest()

	encoded, err := json.Marshal(req.body())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	// ключ inbound присутствует всегда и равен null для одного направления
	inbound, ok := decoded["inbound"]
	require.True(t, ok, "inbound key must be present")
	assert.Equal(t, "null", string(inbound))

	assert.JSONEq(t, `{
		"selected_journeys": [
			{"id": 501, "seats": [{"id": 1001, "train_wagon_id": 11}]}
		]
	}`, string(decoded["outbound"]))

	assert.JSONEq(t, `[{
		"name": "Merdan",
		"surname": "Atayew",
		"dob": "03-12-1990",
		"tariff": "adult",
		"gender": "male",
		"identity_type": "passport",
		"identity_number": "I-AS 123456"
	}]`, string(decoded["passengers"]))

	assert.Equal(t, `"default"`, string(decoded["bedding_type"]))
	assert.Equal(t, `"web"`, string(decoded["api_client"]))
	assert.Equal(t, `false`, string(decoded["has_media_wifi"]))
	assert.Equal(t, `false`, string(decoded["has_lunchbox"]))
}

func TestBookingRequest_Body_RoundTrip(t *testing.T) {
	req := testBookingRequest()
	req.InboundJourney = &JourneySeats{ID: 601}
	req.InboundWagon = &WagonSeats{ID: 21}
	req.InboundSeat = &Seat{ID: 2001}
	req.HasLunchbox = true
	req.BeddingType = "none"

	encoded, err := json.Marshal(req.body())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.JSONEq(t, `{
		"selected_journeys": [
			{"id": 601, "seats": [{"id": 2001, "train_wagon_id": 21}]}
		]
	}`, string(decoded["inbound"]))

	assert.Equal(t, `"none"`, string(decoded["bedding_type"]))
	assert.Equal(t, `true`, string(decoded["has_lunchbox"]))
}
