package search_trips

import (
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
	"github.com/atabaev/TMR-BookingAgent/internal/service/timetable"
)

// SearchTripsRequest HTTP request model
type SearchTripsRequest struct {
	SourceID      int64  `json:"sourceId"`
	DestinationID int64  `json:"destinationId"`
	Date          string `json:"date"` // "2026-09-15"
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
}

// WagonResponse тип вагона в составе рейса
type WagonResponse struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	HasSeats bool    `json:"hasSeats"`
}

// JourneyResponse сегмент рейса
type JourneyResponse struct {
	ID               int64  `json:"id"`
	Source           string `json:"source"`
	Destination      string `json:"destination"`
	DepartureTime    string `json:"departureTime"`
	ArrivalTime      string `json:"arrivalTime"`
	TravelTime       int    `json:"travelTime"`
	TrainRunNumber   string `json:"trainRunNumber"`
	ServiceTypeID    int64  `json:"serviceTypeId"`
	ServiceTypeTitle string `json:"serviceTypeTitle"`
	Distance         int    `json:"distance"`
}

// TripResponse рейс в результатах поиска
type TripResponse struct {
	ID            int64             `json:"id"`
	Source        string            `json:"source"`
	Destination   string            `json:"destination"`
	DepartureTime string            `json:"departureTime"`
	ArrivalTime   string            `json:"arrivalTime"`
	TravelTime    int               `json:"travelTime"`
	Distance      int               `json:"distance"`
	WagonTypes    []WagonResponse   `json:"wagonTypes"`
	Journeys      []JourneyResponse `json:"journeys"`
}

// SearchTripsResponse HTTP response model
type SearchTripsResponse struct {
	Trips []TripResponse `json:"trips"`
	Total int            `json:"total"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом даты)
func (r *SearchTripsRequest) ToServiceRequest() (timetable.SearchRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return timetable.SearchRequest{}, err
	}

	return timetable.SearchRequest{
		SourceID:      r.SourceID,
		DestinationID: r.DestinationID,
		Date:          date,
		Adults:        r.Adults,
		Children:      r.Children,
	}, nil
}

// FromTrips конвертирует результаты поиска в HTTP response.
// Порядок рейсов сохраняется как в ответе upstream.
func FromTrips(trips []railways.Trip) *SearchTripsResponse {
	responses := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, fromTrip(trip))
	}

	return &SearchTripsResponse{
		Trips: responses,
		Total: len(responses),
	}
}

func fromTrip(trip railways.Trip) TripResponse {
	wagons := make([]WagonResponse, 0, len(trip.WagonTypes))
	for _, wagon := range trip.WagonTypes {
		wagons = append(wagons, WagonResponse{
			ID:       wagon.ID,
			Title:    wagon.Title,
			Price:    wagon.Price,
			HasSeats: wagon.HasSeats,
		})
	}

	journeys := make([]JourneyResponse, 0, len(trip.Journeys))
	for _, journey := range trip.Journeys {
		journeys = append(journeys, fromJourney(journey))
	}

	return TripResponse{
		ID:            trip.ID,
		Source:        trip.Source,
		Destination:   trip.Destination,
		DepartureTime: trip.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   trip.ArrivalTime.Format(time.RFC3339),
		TravelTime:    trip.TravelTime,
		Distance:      trip.Distance,
		WagonTypes:    wagons,
		Journeys:      journeys,
	}
}

func fromJourney(journey railways.Journey) JourneyResponse {
	return JourneyResponse{
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
	}
}
