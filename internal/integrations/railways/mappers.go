package railways

import (
	"fmt"
	"strconv"
	"time"
)

// Маппинг ответов railway API в типизированные модели.
//
// Каждый маппер — чистая функция из одной JSON структуры в одну модель.
// Обязательные поля читаются через указатели: отсутствующий ключ дает
// структурированную ошибку "missing field", а не тихое нулевое значение.
// Порядок элементов вложенных списков сохраняется — upstream сортирует
// рейсы, сегменты и вагоны сам.

func missingField(entity, field string) error {
	return fmt.Errorf("%w: %s: missing required field %q", ErrMalformedResponse, entity, field)
}

// parseTimestamp парсит метку времени upstream формата (ISO-8601 с
// явным смещением таймзоны). Строка без смещения — ошибка формата.
func parseTimestamp(entity, field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf(
			"%w: %s: field %q: invalid timestamp %q (timezone offset is required)",
			ErrMalformedResponse, entity, field, value,
		)
	}
	return t, nil
}

// flexInt целое, которое upstream присылает то числом, то строкой
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("flexInt: cannot parse %s: %v", string(data), err)
	}
	*f = flexInt(n)
	return nil
}

// --- справочник станций ---

type locationDTO struct {
	ID      *int64  `json:"id"`
	TitleTM *string `json:"title_tm"`
}

func mapLocation(d locationDTO) (Location, error) {
	if d.ID == nil {
		return Location{}, missingField("location", "id")
	}
	if d.TitleTM == nil {
		return Location{}, missingField("location", "title_tm")
	}
	return Location{ID: *d.ID, Name: *d.TitleTM}, nil
}

// --- поиск рейсов ---

type wagonDTO struct {
	WagonTypeID    *int64   `json:"wagon_type_id"`
	WagonTypeTitle *string  `json:"wagon_type_title"`
	Price          *float64 `json:"price"`
	HasSeats       *bool    `json:"has_seats"`
}

func mapWagon(d wagonDTO) (Wagon, error) {
	if d.WagonTypeID == nil {
		return Wagon{}, missingField("wagon", "wagon_type_id")
	}
	if d.WagonTypeTitle == nil {
		return Wagon{}, missingField("wagon", "wagon_type_title")
	}
	if d.Price == nil {
		return Wagon{}, missingField("wagon", "price")
	}
	if d.HasSeats == nil {
		return Wagon{}, missingField("wagon", "has_seats")
	}
	return Wagon{
		ID:       *d.WagonTypeID,
		Title:    *d.WagonTypeTitle,
		Price:    *d.Price,
		HasSeats: *d.HasSeats,
	}, nil
}

type journeyDTO struct {
	ID               *int64  `json:"id"`
	Source           *string `json:"source"`
	Destination      *string `json:"destination"`
	DepartureTime    *string `json:"departure_time"`
	ArrivalTime      *string `json:"arrival_time"`
	TravelTime       *int    `json:"travel_time"`
	TrainRunNumber   *string `json:"train_run_number"`
	ServiceTypeID    *int64  `json:"service_type_id"`
	ServiceTypeTitle *string `json:"service_type_title"`
	Distance         *int    `json:"distance"`
}

func mapJourney(d journeyDTO) (Journey, error) {
	if d.ID == nil {
		return Journey{}, missingField("journey", "id")
	}
	if d.Source == nil {
		return Journey{}, missingField("journey", "source")
	}
	if d.Destination == nil {
		return Journey{}, missingField("journey", "destination")
	}
	if d.DepartureTime == nil {
		return Journey{}, missingField("journey", "departure_time")
	}
	if d.ArrivalTime == nil {
		return Journey{}, missingField("journey", "arrival_time")
	}
	if d.TravelTime == nil {
		return Journey{}, missingField("journey", "travel_time")
	}
	if d.TrainRunNumber == nil {
		return Journey{}, missingField("journey", "train_run_number")
	}
	if d.ServiceTypeID == nil {
		return Journey{}, missingField("journey", "service_type_id")
	}
	if d.ServiceTypeTitle == nil {
		return Journey{}, missingField("journey", "service_type_title")
	}
	if d.Distance == nil {
		return Journey{}, missingField("journey", "distance")
	}

	departure, err := parseTimestamp("journey", "departure_time", *d.DepartureTime)
	if err != nil {
		return Journey{}, err
	}
	arrival, err := parseTimestamp("journey", "arrival_time", *d.ArrivalTime)
	if err != nil {
		return Journey{}, err
	}

	return Journey{
		ID:               *d.ID,
		Source:           *d.Source,
		Destination:      *d.Destination,
		DepartureTime:    departure,
		ArrivalTime:      arrival,
		TravelTime:       *d.TravelTime,
		TrainRunNumber:   *d.TrainRunNumber,
		ServiceTypeID:    *d.ServiceTypeID,
		ServiceTypeTitle: *d.ServiceTypeTitle,
		Distance:         *d.Distance,
	}, nil
}

type tripDTO struct {
	ID            *int64        `json:"id"`
	Source        *string       `json:"source"`
	Destination   *string       `json:"destination"`
	DepartureTime *string       `json:"departure_time"`
	ArrivalTime   *string       `json:"arrival_time"`
	TravelTime    *int          `json:"travel_time"`
	Distance      *int          `json:"distance"`
	WagonTypes    *[]wagonDTO   `json:"wagon_types"`
	Journeys      *[]journeyDTO `json:"journeys"`
}

func mapTrip(d tripDTO) (Trip, error) {
	if d.ID == nil {
		return Trip{}, missingField("trip", "id")
	}
	if d.Source == nil {
		return Trip{}, missingField("trip", "source")
	}
	if d.Destination == nil {
		return Trip{}, missingField("trip", "destination")
	}
	if d.DepartureTime == nil {
		return Trip{}, missingField("trip", "departure_time")
	}
	if d.ArrivalTime == nil {
		return Trip{}, missingField("trip", "arrival_time")
	}
	if d.TravelTime == nil {
		return Trip{}, missingField("trip", "travel_time")
	}
	if d.Distance == nil {
		return Trip{}, missingField("trip", "distance")
	}
	if d.WagonTypes == nil {
		return Trip{}, missingField("trip", "wagon_types")
	}
	if d.Journeys == nil {
		return Trip{}, missingField("trip", "journeys")
	}

	departure, err := parseTimestamp("trip", "departure_time", *d.DepartureTime)
	if err != nil {
		return Trip{}, err
	}
	arrival, err := parseTimestamp("trip", "arrival_time", *d.ArrivalTime)
	if err != nil {
		return Trip{}, err
	}

	wagons := make([]Wagon, 0, len(*d.WagonTypes))
	for _, wagonData := range *d.WagonTypes {
		wagon, err := mapWagon(wagonData)
		if err != nil {
			return Trip{}, err
		}
		wagons = append(wagons, wagon)
	}

	journeys := make([]Journey, 0, len(*d.Journeys))
	for _, journeyData := range *d.Journeys {
		journey, err := mapJourney(journeyData)
		if err != nil {
			return Trip{}, err
		}
		journeys = append(journeys, journey)
	}

	return Trip{
		ID:            *d.ID,
		Source:        *d.Source,
		Destination:   *d.Destination,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		TravelTime:    *d.TravelTime,
		Distance:      *d.Distance,
		WagonTypes:    wagons,
		Journeys:      journeys,
	}, nil
}

// --- цены ---

type wagonPriceDTO struct {
	WagonTypeID    *int64   `json:"wagon_type_id"`
	WagonTypeTitle *string  `json:"wagon_type_title"`
	Adult          *float64 `json:"adult"`
	Child          *float64 `json:"child"`
}

func mapWagonPrice(d wagonPriceDTO) (WagonPrice, error) {
	if d.WagonTypeID == nil {
		return WagonPrice{}, missingField("wagon price", "wagon_type_id")
	}
	if d.WagonTypeTitle == nil {
		return WagonPrice{}, missingField("wagon price", "wagon_type_title")
	}
	if d.Adult == nil {
		return WagonPrice{}, missingField("wagon price", "adult")
	}

	// child — единственное опциональное поле тарифа: по контракту
	// upstream отсутствие означает 0
	var child float64
	if d.Child != nil {
		child = *d.Child
	}

	return WagonPrice{
		ID:    *d.WagonTypeID,
		Title: *d.WagonTypeTitle,
		Adult: *d.Adult,
		Child: child,
	}, nil
}

type journeyPriceDTO struct {
	journeyDTO
	Prices *[]wagonPriceDTO `json:"prices"`
}

func mapJourneyPrice(d journeyPriceDTO) (JourneyPrice, error) {
	journey, err := mapJourney(d.journeyDTO)
	if err != nil {
		return JourneyPrice{}, err
	}
	if d.Prices == nil {
		return JourneyPrice{}, missingField("journey price", "prices")
	}

	prices := make([]WagonPrice, 0, len(*d.Prices))
	for _, priceData := range *d.Prices {
		price, err := mapWagonPrice(priceData)
		if err != nil {
			return JourneyPrice{}, err
		}
		prices = append(prices, price)
	}

	return JourneyPrice{
		ID:               journey.ID,
		Source:           journey.Source,
		Destination:      journey.Destination,
		DepartureTime:    journey.DepartureTime,
		ArrivalTime:      journey.ArrivalTime,
		TravelTime:       journey.TravelTime,
		TrainRunNumber:   journey.TrainRunNumber,
		ServiceTypeID:    journey.ServiceTypeID,
		ServiceTypeTitle: journey.ServiceTypeTitle,
		Distance:         journey.Distance,
		Prices:           prices,
	}, nil
}

type tripPriceDTO struct {
	ID            *int64             `json:"id"`
	Source        *string            `json:"source"`
	Destination   *string            `json:"destination"`
	DepartureTime *string            `json:"departure_time"`
	ArrivalTime   *string            `json:"arrival_time"`
	TravelTime    *int               `json:"travel_time"`
	Distance      *int               `json:"distance"`
	Journeys      *[]journeyPriceDTO `json:"journeys"`
}

func mapTripPrice(d tripPriceDTO) (TripPrice, error) {
	if d.ID == nil {
		return TripPrice{}, missingField("trip price", "id")
	}
	if d.Source == nil {
		return TripPrice{}, missingField("trip price", "source")
	}
	if d.Destination == nil {
		return TripPrice{}, missingField("trip price", "destination")
	}
	if d.DepartureTime == nil {
		return TripPrice{}, missingField("trip price", "departure_time")
	}
	if d.ArrivalTime == nil {
		return TripPrice{}, missingField("trip price", "arrival_time")
	}
	if d.TravelTime == nil {
		return TripPrice{}, missingField("trip price", "travel_time")
	}
	if d.Distance == nil {
		return TripPrice{}, missingField("trip price", "distance")
	}
	if d.Journeys == nil {
		return TripPrice{}, missingField("trip price", "journeys")
	}

	departure, err := parseTimestamp("trip price", "departure_time", *d.DepartureTime)
	if err != nil {
		return TripPrice{}, err
	}
	arrival, err := parseTimestamp("trip price", "arrival_time", *d.ArrivalTime)
	if err != nil {
		return TripPrice{}, err
	}

	journeys := make([]JourneyPrice, 0, len(*d.Journeys))
	for _, journeyData := range *d.Journeys {
		journey, err := mapJourneyPrice(journeyData)
		if err != nil {
			return TripPrice{}, err
		}
		journeys = append(journeys, journey)
	}

	return TripPrice{
		ID:            *d.ID,
		Source:        *d.Source,
		Destination:   *d.Destination,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		TravelTime:    *d.TravelTime,
		Distance:      *d.Distance,
		Journeys:      journeys,
	}, nil
}

type priceDTO struct {
	ID     *int64   `json:"id"`
	Title  *string  `json:"title"`
	Amount *float64 `json:"amount"`
}

func mapPrice(d priceDTO) (Price, error) {
	if d.ID == nil {
		return Price{}, missingField("price", "id")
	}
	if d.Title == nil {
		return Price{}, missingField("price", "title")
	}
	if d.Amount == nil {
		return Price{}, missingField("price", "amount")
	}
	return Price{ID: *d.ID, Title: *d.Title, Amount: *d.Amount}, nil
}

type priceSummaryDTO struct {
	Outbound       *tripPriceDTO `json:"outbound"`
	Inbound        *tripPriceDTO `json:"inbound"`
	PriceFormation *[]priceDTO   `json:"price_formation"`
}

func mapPriceSummary(d priceSummaryDTO) (PriceSummary, error) {
	if d.Outbound == nil {
		return PriceSummary{}, missingField("price summary", "outbound")
	}
	if d.PriceFormation == nil {
		return PriceSummary{}, missingField("price summary", "price_formation")
	}

	outbound, err := mapTripPrice(*d.Outbound)
	if err != nil {
		return PriceSummary{}, err
	}

	// inbound присутствует только для поездки туда-обратно
	var inbound *TripPrice
	if d.Inbound != nil {
		mapped, err := mapTripPrice(*d.Inbound)
		if err != nil {
			return PriceSummary{}, err
		}
		inbound = &mapped
	}

	formation := make([]Price, 0, len(*d.PriceFormation))
	for _, priceData := range *d.PriceFormation {
		price, err := mapPrice(priceData)
		if err != nil {
			return PriceSummary{}, err
		}
		formation = append(formation, price)
	}

	return PriceSummary{
		Outbound:       outbound,
		Inbound:        inbound,
		PriceFormation: formation,
	}, nil
}

// --- места ---

type seatDTO struct {
	ID        *int64   `json:"id"`
	Available *bool    `json:"available"`
	Label     *string  `json:"label"`
	Level     *flexInt `json:"level"`
}

func mapSeat(d seatDTO) (Seat, error) {
	if d.ID == nil {
		return Seat{}, missingField("seat", "id")
	}
	if d.Available == nil {
		return Seat{}, missingField("seat", "available")
	}
	if d.Label == nil {
		return Seat{}, missingField("seat", "label")
	}
	if d.Level == nil {
		return Seat{}, missingField("seat", "level")
	}
	return Seat{
		ID:        *d.ID,
		Available: *d.Available,
		Label:     *d.Label,
		Level:     int(*d.Level),
	}, nil
}

type wagonSeatsDTO struct {
	ID             *int64     `json:"id"`
	LayoutMap      *string    `json:"layout_map"`
	Number         *flexInt   `json:"number"`
	Seats          *[]seatDTO `json:"seats"`
	WagonTypeID    *int64     `json:"wagon_type_id"`
	WagonTypeTitle *string    `json:"wagon_type_title"`
}

func mapWagonSeats(d wagonSeatsDTO) (WagonSeats, error) {
	if d.ID == nil {
		return WagonSeats{}, missingField("wagon seats", "id")
	}
	if d.LayoutMap == nil {
		return WagonSeats{}, missingField("wagon seats", "layout_map")
	}
	if d.Number == nil {
		return WagonSeats{}, missingField("wagon seats", "number")
	}
	if d.Seats == nil {
		return WagonSeats{}, missingField("wagon seats", "seats")
	}
	if d.WagonTypeID == nil {
		return WagonSeats{}, missingField("wagon seats", "wagon_type_id")
	}
	if d.WagonTypeTitle == nil {
		return WagonSeats{}, missingField("wagon seats", "wagon_type_title")
	}

	seats := make([]Seat, 0, len(*d.Seats))
	for _, seatData := range *d.Seats {
		seat, err := mapSeat(seatData)
		if err != nil {
			return WagonSeats{}, err
		}
		seats = append(seats, seat)
	}

	return WagonSeats{
		ID:             *d.ID,
		LayoutMap:      *d.LayoutMap,
		Number:         int(*d.Number),
		Seats:          seats,
		WagonTypeID:    *d.WagonTypeID,
		WagonTypeTitle: *d.WagonTypeTitle,
	}, nil
}

type journeySeatsDTO struct {
	journeyDTO
	TrainWagons *[]wagonSeatsDTO `json:"train_wagons"`
}

func mapJourneySeats(d journeySeatsDTO) (JourneySeats, error) {
	journey, err := mapJourney(d.journeyDTO)
	if err != nil {
		return JourneySeats{}, err
	}
	if d.TrainWagons == nil {
		return JourneySeats{}, missingField("journey seats", "train_wagons")
	}

	wagons := make([]WagonSeats, 0, len(*d.TrainWagons))
	for _, wagonData := range *d.TrainWagons {
		wagon, err := mapWagonSeats(wagonData)
		if err != nil {
			return JourneySeats{}, err
		}
		wagons = append(wagons, wagon)
	}

	return JourneySeats{
		ID:               journey.ID,
		Source:           journey.Source,
		Destination:      journey.Destination,
		DepartureTime:    journey.DepartureTime,
		ArrivalTime:      journey.ArrivalTime,
		TravelTime:       journey.TravelTime,
		TrainRunNumber:   journey.TrainRunNumber,
		ServiceTypeID:    journey.ServiceTypeID,
		ServiceTypeTitle: journey.ServiceTypeTitle,
		Distance:         journey.Distance,
		TrainWagons:      wagons,
	}, nil
}

type tripSeatsDTO struct {
	TripID   *int64             `json:"trip_id"`
	Journeys *[]journeySeatsDTO `json:"journeys"`
}

func mapTripSeats(d tripSeatsDTO) (TripSeats, error) {
	if d.TripID == nil {
		return TripSeats{}, missingField("trip seats", "trip_id")
	}
	if d.Journeys == nil {
		return TripSeats{}, missingField("trip seats", "journeys")
	}

	journeys := make([]JourneySeats, 0, len(*d.Journeys))
	for _, journeyData := range *d.Journeys {
		journey, err := mapJourneySeats(journeyData)
		if err != nil {
			return TripSeats{}, err
		}
		journeys = append(journeys, journey)
	}

	return TripSeats{ID: *d.TripID, Journeys: journeys}, nil
}

type seatsDTO struct {
	Outbound *tripSeatsDTO `json:"outbound"`
	Inbound  *tripSeatsDTO `json:"inbound"`
}

func mapSeats(d seatsDTO) (Seats, error) {
	if d.Outbound == nil {
		return Seats{}, missingField("seats", "outbound")
	}

	outbound, err := mapTripSeats(*d.Outbound)
	if err != nil {
		return Seats{}, err
	}

	var inbound *TripSeats
	if d.Inbound != nil {
		mapped, err := mapTripSeats(*d.Inbound)
		if err != nil {
			return Seats{}, err
		}
		inbound = &mapped
	}

	return Seats{Outbound: outbound, Inbound: inbound}, nil
}

// --- бронирование ---

type bookingDTO struct {
	BookingNumber *string `json:"booking_number"`
	ExpireTime    *string `json:"expire_time"`
	OrderNumber   *string `json:"order_number"`
	FormURL       *string `json:"form_url"`
}

func mapBooking(d bookingDTO) (Booking, error) {
	if d.BookingNumber == nil {
		return Booking{}, missingField("booking", "booking_number")
	}
	if d.ExpireTime == nil {
		return Booking{}, missingField("booking", "expire_time")
	}
	if d.OrderNumber == nil {
		return Booking{}, missingField("booking", "order_number")
	}
	if d.FormURL == nil {
		return Booking{}, missingField("booking", "form_url")
	}

	expire, err := parseTimestamp("booking", "expire_time", *d.ExpireTime)
	if err != nil {
		return Booking{}, err
	}

	return Booking{
		BookingNumber: *d.BookingNumber,
		ExpireTime:    expire,
		OrderNumber:   *d.OrderNumber,
		FormURL:       *d.FormURL,
	}, nil
}
