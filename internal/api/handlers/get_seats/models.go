package get_seats

import (
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
	"github.com/atabaev/TMR-BookingAgent/internal/service/timetable"
)

// GetSeatsRequest HTTP request model.
// inboundTripId и inboundWagonTypeId задаются вместе или не задаются вовсе.
type GetSeatsRequest struct {
	WagonTypeID        int64  `json:"wagonTypeId"`
	Adults             int    `json:"adults"`
	Children           int    `json:"children"`
	InboundTripID      *int64 `json:"inboundTripId,omitempty"`
	InboundWagonTypeID *int64 `json:"inboundWagonTypeId,omitempty"`
}

// SeatResponse место в вагоне
type SeatResponse struct {
	ID        int64  `json:"id"`
	Available bool   `json:"available"`
	Label     string `json:"label"`
	Level     int    `json:"level"`
}

// WagonSeatsResponse вагон со схемой размещения и местами
type WagonSeatsResponse struct {
	ID             int64          `json:"id"`
	LayoutMap      string         `json:"layoutMap"`
	Number         int            `json:"number"`
	Seats          []SeatResponse `json:"seats"`
	WagonTypeID    int64          `json:"wagonTypeId"`
	WagonTypeTitle string         `json:"wagonTypeTitle"`
}

// JourneySeatsResponse сегмент рейса с вагонами
type JourneySeatsResponse struct {
	ID               int64                `json:"id"`
	Source           string               `json:"source"`
	Destination      string               `json:"destination"`
	DepartureTime    string               `json:"departureTime"`
	ArrivalTime      string               `json:"arrivalTime"`
	TravelTime       int                  `json:"travelTime"`
	TrainRunNumber   string               `json:"trainRunNumber"`
	ServiceTypeID    int64                `json:"serviceTypeId"`
	ServiceTypeTitle string               `json:"serviceTypeTitle"`
	Distance         int                  `json:"distance"`
	TrainWagons      []WagonSeatsResponse `json:"trainWagons"`
}

// TripSeatsResponse места по рейсу целиком
type TripSeatsResponse struct {
	ID       int64                  `json:"id"`
	Journeys []JourneySeatsResponse `json:"journeys"`
}

// SeatsResponse HTTP response model.
// Inbound присутствует только для поездки туда-обратно.
type SeatsResponse struct {
	Outbound TripSeatsResponse  `json:"outbound"`
	Inbound  *TripSeatsResponse `json:"inbound,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *GetSeatsRequest) ToServiceRequest(tripID int64) timetable.SeatsRequest {
	return timetable.SeatsRequest{
		OutboundTripID:      tripID,
		OutboundWagonTypeID: r.WagonTypeID,
		Adults:              r.Adults,
		Children:            r.Children,
		InboundTripID:       r.InboundTripID,
		InboundWagonTypeID:  r.InboundWagonTypeID,
	}
}

// FromSeats конвертирует ответ upstream в HTTP response
func FromSeats(seats railways.Seats) *SeatsResponse {
	response := &SeatsResponse{
		Outbound: fromTripSeats(seats.Outbound),
	}

	if seats.Inbound != nil {
		inbound := fromTripSeats(*seats.Inbound)
		response.Inbound = &inbound
	}

	return response
}

func fromTripSeats(trip railways.TripSeats) TripSeatsResponse {
	journeys := make([]JourneySeatsResponse, 0, len(trip.Journeys))
	for _, journey := range trip.Journeys {
		wagons := make([]WagonSeatsResponse, 0, len(journey.TrainWagons))
		for _, wagon := range journey.TrainWagons {
			seats := make([]SeatResponse, 0, len(wagon.Seats))
			for _, seat := range wagon.Seats {
				seats = append(seats, SeatResponse{
					ID:        seat.ID,
					Available: seat.Available,
					Label:     seat.Label,
					Level:     seat.Level,
				})
			}

			wagons = append(wagons, WagonSeatsResponse{
				ID:             wagon.ID,
				LayoutMap:      wagon.LayoutMap,
				Number:         wagon.Number,
				Seats:          seats,
				WagonTypeID:    wagon.WagonTypeID,
				WagonTypeTitle: wagon.WagonTypeTitle,
			})
		}

		journeys = append(journeys, JourneySeatsResponse{
			ID:               journey.ID,
			Source:           journey.Source,
			Destination:      journey.Destination,
			DepartureTime:    journey.DepartureTime.Format(time.RFC3339),
			ArrivalTime:      journey.ArrivalTime.Format(time.RFC3339),
			TravelTime:       journey.TravelTime,
			TrainRunNumber:   journey.TrainRunNumber,
			ServiceTypeID:    journey.ServiceTypeID,
			ServiceTypeTitle: journey.ServiceTypeTitle,
			Distance:         journey.Distance,
			TrainWagons:      wagons,
		})
	}

	return TripSeatsResponse{
		ID:       trip.ID,
		Journeys: journeys,
	}
}
