package railways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream поднимает httptest-сервер с маршрутами railway API
type fakeUpstream struct {
	server *httptest.Server

	stationHits int64
	bookingHits int64

	lastBookingBody []byte
}

func tripFixture(id int64) string {
	return fmt.Sprintf(`{
		"id": %d,
		"source": "Aşgabat",
		"destination": "Daşoguz",
		"departure_time": "2026-09-10T08:30:00+05:00",
		"arrival_time": "2026-09-10T18:45:00+05:00",
		"travel_time": 615,
		"distance": 560,
		"wagon_types": [{"wagon_type_id": 3, "wagon_type_title": "Kupe", "price": 120.5, "has_seats": true}],
		"journeys": [{
			"id": 501,
			"source": "Aşgabat",
			"destination": "Daşoguz",
			"departure_time": "2026-09-10T08:30:00+05:00",
			"arrival_time": "2026-09-10T18:45:00+05:00",
			"travel_time": 615,
			"train_run_number": "105",
			"service_type_id": 2,
			"service_type_title": "Ýolagçy",
			"distance": 560
		}]
	}`, id)
}

func writeSuccess(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"success":true,"data":%s}`, data)
}

func writeFailure(w http.ResponseWriter, errJSON string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"success":false,"error":%s}`, errJSON)
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()

	f := &fakeUpstream{}
	r := mux.NewRouter()

	r.HandleFunc("/railway-api/stations", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&f.stationHits, 1)
		writeSuccess(w, `{"stations":[{"id":17,"title_tm":"Aşgabat"},{"id":4,"title_tm":"Daşoguz"}]}`)
	}).Methods(http.MethodGet)

	r.HandleFunc("/railway-api/trips", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Source      string `json:"source"`
			Destination string `json:"destination"`
			Date        string `json:"date"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// несуществующие станции — пустой список, как у настоящего API
		if body.Source != "17" || body.Destination != "4" {
			writeSuccess(w, `{"trips":[]}`)
			return
		}

		writeSuccess(w, `{"trips":[`+tripFixture(101)+`,`+tripFixture(102)+`]}`)
	}).Methods(http.MethodPost)

	r.HandleFunc("/railway-api/trips/{tripId}/price_summary", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, `{
			"outbound": `+testTripPriceJSON()+`,
			"price_formation": [{"id": 1, "title": "Hyzmat tölegi", "amount": 5.0}]
		}`)
	}).Methods(http.MethodGet)

	r.HandleFunc("/railway-api/roundtrips/outbound/{outboundId}/inbound/{inboundId}/price_summary",
		func(w http.ResponseWriter, _ *http.Request) {
			writeSuccess(w, `{
				"outbound": `+testTripPriceJSON()+`,
				"inbound": `+testTripPriceJSON()+`,
				"price_formation": []
			}`)
		}).Methods(http.MethodGet)

	r.HandleFunc("/railway-api/trips/{tripId}", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, `{"outbound": `+testTripSeatsJSON()+`}`)
	}).Methods(http.MethodPost)

	r.HandleFunc("/railway-api/roundtrips/outbound/{outboundId}/inbound/{inboundId}",
		func(w http.ResponseWriter, _ *http.Request) {
			writeSuccess(w, `{"outbound": `+testTripSeatsJSON()+`, "inbound": `+testTripSeatsJSON()+`}`)
		}).Methods(http.MethodPost)

	r.HandleFunc("/railway-api/bookings", func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt64(&f.bookingHits, 1)

		var raw json.RawMessage
		if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.lastBookingBody = raw

		writeSuccess(w, `{"booking":{
			"booking_number": "BN-20260910-1",
			"expire_time": "2026-09-10T09:00:00+05:00",
			"order_number": "ON-44512",
			"form_url": "https://railway.gov.tm/payment/ON-44512"
		}}`)
	}).Methods(http.MethodPost)

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)

	return f
}

func newTestClient(t *testing.T, upstream *fakeUpstream) *Client {
	t.Helper()

	client := NewClient(upstream.server.URL, 5*time.Second, nil, nil)
	t.Cleanup(client.Close)
	return client
}

func TestClient_Locations_FetchOnceAndLookup(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)
	ctx := context.Background()

	byID, err := client.LocationByID(ctx, 17)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Aşgabat", byID.Name)

	byName, err := client.LocationByName(ctx, "Daşoguz")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, int64(4), byName.ID)

	// отсутствие совпадения — не ошибка
	missing, err := client.LocationByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missingByName, err := client.LocationByName(ctx, "Nowhere")
	require.NoError(t, err)
	assert.Nil(t, missingByName)

	// справочник загружен ровно один раз
	assert.Equal(t, int64(1), atomic.LoadInt64(&upstream.stationHits))
}

func TestClient_Locations_RefreshAndInvalidate(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)
	ctx := context.Background()

	_, err := client.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&upstream.stationHits))

	require.NoError(t, client.RefreshLocations(ctx))
	assert.Equal(t, int64(2), atomic.LoadInt64(&upstream.stationHits))

	client.InvalidateLocations()
	_, err = client.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), atomic.LoadInt64(&upstream.stationHits))
}

func TestClient_SearchTrips_PreservesUpstreamOrder(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	trips, err := client.SearchTrips(
		context.Background(),
		Location{ID: 17, Name: "Aşgabat"},
		Location{ID: 4, Name: "Daşoguz"},
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		1, 0,
	)

	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, int64(101), trips[0].ID)
	assert.Equal(t, int64(102), trips[1].ID)
}

func TestClient_SearchTrips_UnknownLocationsYieldEmptyList(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	trips, err := client.SearchTrips(
		context.Background(),
		Location{ID: 2555, Name: "what"},
		Location{ID: 4, Name: "Daşoguz"},
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		1, 0,
	)

	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestClient_SearchTrips_EnvelopeErrorSurfaced(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/railway-api/trips", func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, `{"id":"E1","message":"bad date"}`)
	}).Methods(http.MethodPost)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 5*time.Second, nil, nil)
	t.Cleanup(client.Close)

	_, err := client.SearchTrips(
		context.Background(),
		Location{ID: 17}, Location{ID: 4},
		time.Now(), 1, 0,
	)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "E1", apiErr.ID)
	assert.Equal(t, "bad date", apiErr.Message)
}

func TestClient_GetPriceSummary_OneWay(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	summary, err := client.GetPriceSummary(context.Background(), Trip{ID: 101}, nil)

	require.NoError(t, err)
	assert.Nil(t, summary.Inbound)
	assert.Equal(t, int64(101), summary.Outbound.ID)
	require.Len(t, summary.PriceFormation, 1)
}

func TestClient_GetPriceSummary_RoundTrip(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	summary, err := client.GetPriceSummary(context.Background(), Trip{ID: 101}, &Trip{ID: 202})

	require.NoError(t, err)
	require.NotNil(t, summary.Inbound)
}

func TestClient_GetSeats_OneWay(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	seats, err := client.GetSeats(
		context.Background(),
		Trip{ID: 101}, Wagon{ID: 3},
		1, 0,
		nil, nil,
	)

	require.NoError(t, err)
	assert.Nil(t, seats.Inbound)
	require.Len(t, seats.Outbound.Journeys, 1)
}

func TestClient_GetSeats_RoundTrip(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	seats, err := client.GetSeats(
		context.Background(),
		Trip{ID: 101}, Wagon{ID: 3},
		1, 0,
		&Trip{ID: 202}, &Wagon{ID: 7},
	)

	require.NoError(t, err)
	require.NotNil(t, seats.Inbound)
}

func TestClient_GetSeats_PartialInboundPair(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	_, err := client.GetSeats(
		context.Background(),
		Trip{ID: 101}, Wagon{ID: 3},
		1, 0,
		&Trip{ID: 202}, nil,
	)

	assert.ErrorIs(t, err, ErrPartialInbound)
}

func TestClient_BookTickets_OneWaySendsNullInbound(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	booking, err := client.BookTickets(context.Background(), testBookingRequest())

	require.NoError(t, err)
	assert.Equal(t, "BN-20260910-1", booking.BookingNumber)
	assert.Equal(t, "ON-44512", booking.OrderNumber)
	assert.Equal(t, "https://railway.gov.tm/payment/ON-44512", booking.FormURL)

	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(upstream.lastBookingBody, &sent))

	inbound, ok := sent["inbound"]
	require.True(t, ok, "inbound key must be present in the wire body")
	assert.Equal(t, "null", string(inbound))
}

func TestClient_BookTickets_PartialInboundFailsBeforeRequest(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := newTestClient(t, upstream)

	req := testBookingRequest()
	req.InboundWagon = &WagonSeats{ID: 21} // journey и seat не заданы

	_, err := client.BookTickets(context.Background(), req)

	assert.ErrorIs(t, err, ErrPartialInbound)
	assert.Equal(t, int64(0), atomic.LoadInt64(&upstream.bookingHits),
		"partial inbound must fail before any network call")
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 5*time.Second, nil, nil)
	t.Cleanup(client.Close)

	_, err := client.Locations(context.Background())

	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "503")
}
