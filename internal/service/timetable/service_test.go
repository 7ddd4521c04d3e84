package timetable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

type fakeClient struct {
	trips       []railways.Trip
	searchCalls int
	lastSrc     railways.Location
	lastDest    railways.Location

	seatsCalls       int
	lastInboundTrip  *railways.Trip
	lastInboundWagon *railways.Wagon
}

func (c *fakeClient) Locations(_ context.Context) ([]railways.Location, error) {
	return []railways.Location{{ID: 1, Name: "Aşgabat"}, {ID: 2, Name: "Mary"}}, nil
}

func (c *fakeClient) SearchTrips(_ context.Context, src, dest railways.Location, _ time.Time, _, _ int) ([]railways.Trip, error) {
	c.searchCalls++
	c.lastSrc = src
	c.lastDest = dest
	return c.trips, nil
}

func (c *fakeClient) GetPriceSummary(_ context.Context, outbound railways.Trip, inbound *railways.Trip) (railways.PriceSummary, error) {
	summary := railways.PriceSummary{Outbound: railways.TripPrice{ID: outbound.ID}}
	if inbound != nil {
		summary.Inbound = &railways.TripPrice{ID: inbound.ID}
	}
	return summary, nil
}

func (c *fakeClient) GetSeats(_ context.Context, outbound railways.Trip, _ railways.Wagon, _, _ int, inboundTrip *railways.Trip, inboundWagon *railways.Wagon) (railways.Seats, error) {
	c.seatsCalls++
	c.lastInboundTrip = inboundTrip
	c.lastInboundWagon = inboundWagon
	return railways.Seats{Outbound: railways.TripSeats{ID: outbound.ID}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSearch_Validation(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, nopLogger{})

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  SearchRequest
	}{
		{"zero source", SearchRequest{DestinationID: 2, Date: date, Adults: 1}},
		{"zero destination", SearchRequest{SourceID: 1, Date: date, Adults: 1}},
		{"zero date", SearchRequest{SourceID: 1, DestinationID: 2, Adults: 1}},
		{"no adults", SearchRequest{SourceID: 1, DestinationID: 2, Date: date}},
		{"negative children", SearchRequest{SourceID: 1, DestinationID: 2, Date: date, Adults: 1, Children: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Zero(t, client.searchCalls)
}

func TestSearch_PassesLocationIDs(t *testing.T) {
	client := &fakeClient{trips: []railways.Trip{{ID: 101}, {ID: 102}}}
	svc := NewService(client, nopLogger{})

	trips, err := svc.Search(context.Background(), SearchRequest{
		SourceID:      1,
		DestinationID: 2,
		Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Adults:        2,
		Children:      1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), client.lastSrc.ID)
	assert.Equal(t, int64(2), client.lastDest.ID)
	require.Len(t, trips, 2)
	assert.Equal(t, int64(101), trips[0].ID)
	assert.Equal(t, int64(102), trips[1].ID)
}

func TestPriceSummary(t *testing.T) {
	svc := NewService(&fakeClient{}, nopLogger{})

	t.Run("one way", func(t *testing.T) {
		summary, err := svc.PriceSummary(context.Background(), 101, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(101), summary.Outbound.ID)
		assert.Nil(t, summary.Inbound)
	})

	t.Run("round trip", func(t *testing.T) {
		inbound := int64(202)
		summary, err := svc.PriceSummary(context.Background(), 101, &inbound)
		require.NoError(t, err)
		require.NotNil(t, summary.Inbound)
		assert.Equal(t, int64(202), summary.Inbound.ID)
	})

	t.Run("invalid outbound id", func(t *testing.T) {
		_, err := svc.PriceSummary(context.Background(), 0, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid inbound id", func(t *testing.T) {
		inbound := int64(-5)
		_, err := svc.PriceSummary(context.Background(), 101, &inbound)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSeats_InboundPairPassedThrough(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, nopLogger{})

	inboundTrip := int64(202)
	inboundWagon := int64(55)
	_, err := svc.Seats(context.Background(), SeatsRequest{
		OutboundTripID:      101,
		OutboundWagonTypeID: 42,
		Adults:              1,
		InboundTripID:       &inboundTrip,
		InboundWagonTypeID:  &inboundWagon,
	})
	require.NoError(t, err)

	require.NotNil(t, client.lastInboundTrip)
	require.NotNil(t, client.lastInboundWagon)
	assert.Equal(t, int64(202), client.lastInboundTrip.ID)
	assert.Equal(t, int64(55), client.lastInboundWagon.ID)
}
