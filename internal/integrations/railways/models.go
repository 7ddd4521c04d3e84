package railways

import "time"

// Location станция/населенный пункт из справочника railway API
type Location struct {
	ID   int64
	Name string
}

// Wagon тип вагона, предлагаемый в рамках рейса
type Wagon struct {
	ID       int64
	Title    string
	Price    float64
	HasSeats bool
}

// Journey один сегмент рейса (конкретный поезд между двумя станциями)
type Journey struct {
	ID               int64
	Source           string
	Destination      string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	TravelTime       int
	TrainRunNumber   string
	ServiceTypeID    int64
	ServiceTypeTitle string
	Distance         int
}

// Trip рейс, возвращаемый поиском. Агрегат: типы вагонов + сегменты.
// WagonTypes может быть пустым, если на рейс ничего не предлагается.
type Trip struct {
	ID            int64
	Source        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	TravelTime    int
	Distance      int
	WagonTypes    []Wagon
	Journeys      []Journey
}

// WagonPrice цены на тип вагона (взрослый/детский тариф)
type WagonPrice struct {
	ID    int64
	Title string
	Adult float64
	// Child равен 0, если upstream не вернул детский тариф
	Child float64
}

// JourneyPrice цены по сегменту рейса
type JourneyPrice struct {
	ID               int64
	Source           string
	Destination      string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	TravelTime       int
	TrainRunNumber   string
	ServiceTypeID    int64
	ServiceTypeTitle string
	Distance         int
	Prices           []WagonPrice
}

// TripPrice цены по рейсу целиком
type TripPrice struct {
	ID            int64
	Source        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	TravelTime    int
	Distance      int
	Journeys      []JourneyPrice
}

// Price строка из price_formation (сбор/услуга и её стоимость)
type Price struct {
	ID     int64
	Title  string
	Amount float64
}

// PriceSummary результат запроса цен.
// Inbound заполнен только для поездки туда-обратно.
type PriceSummary struct {
	Outbound       TripPrice
	Inbound        *TripPrice
	PriceFormation []Price
}

// Seat место в вагоне
type Seat struct {
	ID        int64
	Available bool
	Label     string
	Level     int
}

// WagonSeats вагон со схемой размещения и списком мест
type WagonSeats struct {
	ID             int64
	LayoutMap      string
	Number         int
	Seats          []Seat
	WagonTypeID    int64
	WagonTypeTitle string
}

// JourneySeats сегмент рейса со списком вагонов и мест
type JourneySeats struct {
	ID               int64
	Source           string
	Destination      string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	TravelTime       int
	TrainRunNumber   string
	ServiceTypeID    int64
	ServiceTypeTitle string
	Distance         int
	TrainWagons      []WagonSeats
}

// TripSeats места по рейсу целиком
type TripSeats struct {
	ID       int64
	Journeys []JourneySeats
}

// Seats результат запроса мест.
// Inbound заполнен только для поездки туда-обратно.
type Seats struct {
	Outbound TripSeats
	Inbound  *TripSeats
}

// Contact контактные данные для бронирования
type Contact struct {
	Mobile      string
	Email       string
	MainContact string
}

// Passenger данные одного пассажира для бронирования
type Passenger struct {
	Name           string
	Surname        string
	DOB            time.Time
	Tariff         string // "adult" / "child"
	Gender         string // "male" / "female"
	IdentityType   string // "passport"
	IdentityNumber string // "I-AS XXXXXX"
}

// Booking подтверждение успешного бронирования
type Booking struct {
	BookingNumber string
	ExpireTime    time.Time
	OrderNumber   string
	FormURL       string
}
