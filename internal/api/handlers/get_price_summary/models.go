package get_price_summary

import (
	"time"

	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
)

// WagonPriceResponse цены на тип вагона
type WagonPriceResponse struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Adult float64 `json:"adult"`
	Child float64 `json:"child"`
}

// JourneyPriceResponse цены по сегменту рейса
type JourneyPriceResponse struct {
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
	Prices           []WagonPriceResponse `json:"prices"`
}

// TripPriceResponse цены по рейсу целиком
type TripPriceResponse struct {
	ID            int64                  `json:"id"`
	Source        string                 `json:"source"`
	Destination   string                 `json:"destination"`
	DepartureTime string                 `json:"departureTime"`
	ArrivalTime   string                 `json:"arrivalTime"`
	TravelTime    int                    `json:"travelTime"`
	Distance      int                    `json:"distance"`
	Journeys      []JourneyPriceResponse `json:"journeys"`
}

// PriceFormationResponse строка детализации стоимости
type PriceFormationResponse struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

// PriceSummaryResponse HTTP response model.
// Inbound присутствует только для поездки туда-обратно.
type PriceSummaryResponse struct {
	Outbound       TripPriceResponse        `json:"outbound"`
	Inbound        *TripPriceResponse       `json:"inbound,omitempty"`
	PriceFormation []PriceFormationResponse `json:"priceFormation"`
}

// FromPriceSummary конвертирует ответ upstream в HTTP response
func FromPriceSummary(summary railways.PriceSummary) *PriceSummaryResponse {
	response := &PriceSummaryResponse{
		Outbound:       fromTripPrice(summary.Outbound),
		PriceFormation: make([]PriceFormationResponse, 0, len(summary.PriceFormation)),
	}

	if summary.Inbound != nil {
		inbound := fromTripPrice(*summary.Inbound)
		response.Inbound = &inbound
	}

	for _, price := range summary.PriceFormation {
		response.PriceFormation = append(response.PriceFormation, PriceFormationResponse{
			ID:     price.ID,
			Title:  price.Title,
			Amount: price.Amount,
		})
	}

	return response
}

func fromTripPrice(trip railways.TripPrice) TripPriceResponse {
	journeys := make([]JourneyPriceResponse, 0, len(trip.Journeys))
	for _, journey := range trip.Journeys {
		prices := make([]WagonPriceResponse, 0, len(journey.Prices))
		for _, price := range journey.Prices {
			prices = append(prices, WagonPriceResponse{
				ID:    price.ID,
				Title: price.Title,
				Adult: price.Adult,
				Child: price.Child,
			})
		}

		journeys = append(journeys, JourneyPriceResponse{
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
			Prices:           prices,
		})
	}

	return TripPriceResponse{
		ID:            trip.ID,
		Source:        trip.Source,
		Destination:   trip.Destination,
		DepartureTime: trip.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   trip.ArrivalTime.Format(time.RFC3339),
		TravelTime:    trip.TravelTime,
		Distance:      trip.Distance,
		Journeys:      journeys,
	}
}
