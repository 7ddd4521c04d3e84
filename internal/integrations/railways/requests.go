package railways

import (
	"fmt"
	"time"
)

// Составление тел запросов к railway API.
//
// Upstream помечает отсутствующее обратное направление числовым
// sentinel-значением (-1). В публичном API клиента опциональность
// выражена указателями, sentinel наружу не выходит: nil значит
// "обратного направления нет".

const (
	pathStations = "/railway-api/stations"
	pathTrips    = "/railway-api/trips"
	pathBookings = "/railway-api/bookings"

	// wireDateFormat формат даты поиска рейсов
	wireDateFormat = "2006-01-02"
	// wireDOBFormat формат даты рождения пассажира в теле бронирования
	wireDOBFormat = "02-01-2006"

	defaultBeddingType = "default"
	apiClientName      = "web"
)

// searchRequest тело запроса поиска рейсов.
// Идентификаторы станций upstream принимает строками.
type searchRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Adult       int    `json:"adult"`
	Child       int    `json:"child"`
}

func newSearchRequest(srcID, destID int64, date time.Time, adults, children int) searchRequest {
	return searchRequest{
		Source:      fmt.Sprintf("%d", srcID),
		Destination: fmt.Sprintf("%d", destID),
		Date:        date.Format(wireDateFormat),
		Adult:       adults,
		Child:       children,
	}
}

// priceSummaryPath выбирает путь запроса цен: per-trip для одного
// направления, пара outbound/inbound для поездки туда-обратно.
func priceSummaryPath(outboundTripID int64, inboundTripID *int64) string {
	if inboundTripID == nil {
		return fmt.Sprintf("/railway-api/trips/%d/price_summary", outboundTripID)
	}
	return fmt.Sprintf(
		"/railway-api/roundtrips/outbound/%d/inbound/%d/price_summary",
		outboundTripID, *inboundTripID,
	)
}

// seatsPath выбирает путь запроса мест по той же схеме, что и priceSummaryPath
func seatsPath(outboundTripID int64, inboundTripID *int64) string {
	if inboundTripID == nil {
		return fmt.Sprintf("/railway-api/trips/%d", outboundTripID)
	}
	return fmt.Sprintf(
		"/railway-api/roundtrips/outbound/%d/inbound/%d",
		outboundTripID, *inboundTripID,
	)
}

// seatsRequest тело запроса мест. inbound_wagon_type_id добавляется
// только вместе с round-trip вариантом пути.
type seatsRequest struct {
	Adult               int    `json:"adult"`
	Child               int    `json:"child"`
	OutboundWagonTypeID int64  `json:"outbound_wagon_type_id"`
	InboundWagonTypeID  *int64 `json:"inbound_wagon_type_id,omitempty"`
}

func newSeatsRequest(adults, children int, outboundWagonID int64, inboundWagonID *int64) seatsRequest {
	return seatsRequest{
		Adult:               adults,
		Child:               children,
		OutboundWagonTypeID: outboundWagonID,
		InboundWagonTypeID:  inboundWagonID,
	}
}

// BookingRequest аргументы бронирования билетов.
// Обратное направление либо задано целиком (journey + wagon + seat),
// либо не задано вовсе.
type BookingRequest struct {
	Contact    Contact
	Passengers []Passenger

	OutboundJourney JourneySeats
	OutboundWagon   WagonSeats
	OutboundSeat    Seat

	InboundJourney *JourneySeats
	InboundWagon   *WagonSeats
	InboundSeat    *Seat

	HasMediaWifi bool
	HasLunchbox  bool
	// BeddingType пустая строка трактуется как "default"
	BeddingType string
}

// roundTrip сообщает, задано ли обратное направление.
// Вызывается только после validate.
func (r *BookingRequest) roundTrip() bool {
	return r.InboundJourney != nil
}

// validate проверяет контракт вызывающего до любого сетевого запроса
func (r *BookingRequest) validate() error {
	hasJourney := r.InboundJourney != nil
	hasWagon := r.InboundWagon != nil
	hasSeat := r.InboundSeat != nil

	if hasJourney != hasWagon || hasWagon != hasSeat {
		return fmt.Errorf(
			"%w: inbound journey/wagon/seat must be supplied together (journey=%t, wagon=%t, seat=%t)",
			ErrPartialInbound, hasJourney, hasWagon, hasSeat,
		)
	}

	return nil
}

// --- wire-формат тела бронирования ---

type contactBody struct {
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	MainContact string `json:"main_contact"`
}

type passengerBody struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	DOB            string `json:"dob"`
	Tariff         string `json:"tariff"`
	Gender         string `json:"gender"`
	IdentityType   string `json:"identity_type"`
	IdentityNumber string `json:"identity_number"`
}

type seatSelection struct {
	ID           int64 `json:"id"`
	TrainWagonID int64 `json:"train_wagon_id"`
}

type journeySelection struct {
	ID    int64           `json:"id"`
	Seats []seatSelection `json:"seats"`
}

type legSelection struct {
	SelectedJourneys []journeySelection `json:"selected_journeys"`
}

// bookingBody тело POST /railway-api/bookings. Ключ inbound по схеме
// upstream присутствует всегда: null для поездки в одну сторону.
type bookingBody struct {
	HasMediaWifi bool            `json:"has_media_wifi"`
	HasLunchbox  bool            `json:"has_lunchbox"`
	BeddingType  string          `json:"bedding_type"`
	APIClient    string          `json:"api_client"`
	Contact      contactBody     `json:"contact"`
	Passengers   []passengerBody `json:"passengers"`
	Outbound     legSelection    `json:"outbound"`
	Inbound      *legSelection   `json:"inbound"`
}

func newLegSelection(journeyID, wagonID, seatID int64) legSelection {
	return legSelection{
		SelectedJourneys: []journeySelection{
			{
				ID: journeyID,
				Seats: []seatSelection{
					{ID: seatID, TrainWagonID: wagonID},
				},
			},
		},
	}
}

// body собирает wire-представление запроса. Вызывается только после validate.
func (r *BookingRequest) body() bookingBody {
	beddingType := r.BeddingType
	if beddingType == "" {
		beddingType = defaultBeddingType
	}

	passengers := make([]passengerBody, 0, len(r.Passengers))
	for _, p := range r.Passengers {
		passengers = append(passengers, passengerBody{
			Name:           p.Name,
			Surname:        p.Surname,
			DOB:            p.DOB.Format(wireDOBFormat),
			Tariff:         p.Tariff,
			Gender:         p.Gender,
			IdentityType:   p.IdentityType,
			IdentityNumber: p.IdentityNumber,
		})
	}

	var inbound *legSelection
	if r.roundTrip() {
		leg := newLegSelection(r.InboundJourney.ID, r.InboundWagon.ID, r.InboundSeat.ID)
		inbound = &leg
	}

	return bookingBody{
		HasMediaWifi: r.HasMediaWifi,
		HasLunchbox:  r.HasLunchbox,
		BeddingType:  beddingType,
		APIClient:    apiClientName,
		Contact: contactBody{
			Mobile:      r.Contact.Mobile,
			Email:       r.Contact.Email,
			MainContact: r.Contact.MainContact,
		},
		Passengers: passengers,
		Outbound:   newLegSelection(r.OutboundJourney.ID, r.OutboundWagon.ID, r.OutboundSeat.ID),
		Inbound:    inbound,
	}
}
