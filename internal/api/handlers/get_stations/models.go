package get_stations

import "github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"

// StationResponse HTTP модель станции
type StationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StationsListResponse список станций
type StationsListResponse struct {
	Stations []StationResponse `json:"stations"`
	Total    int               `json:"total"`
}

// FromLocations конвертирует справочник станций в HTTP response
func FromLocations(locations []railways.Location) *StationsListResponse {
	stations := make([]StationResponse, 0, len(locations))
	for _, loc := range locations {
		stations = append(stations, StationResponse{
			ID:   loc.ID,
			Name: loc.Name,
		})
	}

	return &StationsListResponse{
		Stations: stations,
		Total:    len(stations),
	}
}
