package railways

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// locationCache кэш справочника станций на время жизни клиента.
// Первый вызов загружает список, конкурентные вызовы ждут на мьютексе.
type locationCache struct {
	mu        sync.Mutex
	locations []Location
	populated bool
}

// Locations возвращает справочник станций, загружая его при первом обращении
func (c *Client) Locations(ctx context.Context) ([]Location, error) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	if err := c.ensureLocationsLocked(ctx); err != nil {
		return nil, err
	}
	return c.cache.locations, nil
}

// LocationByID ищет станцию по идентификатору.
// Отсутствие совпадения — нормальный результат (nil, nil), не ошибка.
func (c *Client) LocationByID(ctx context.Context, id int64) (*Location, error) {
	locations, err := c.Locations(ctx)
	if err != nil {
		return nil, err
	}

	for i := range locations {
		if locations[i].ID == id {
			return &locations[i], nil
		}
	}
	return nil, nil
}

// LocationByName ищет станцию по точному названию.
// Отсутствие совпадения — нормальный результат (nil, nil), не ошибка.
func (c *Client) LocationByName(ctx context.Context, name string) (*Location, error) {
	locations, err := c.Locations(ctx)
	if err != nil {
		return nil, err
	}

	for i := range locations {
		if locations[i].Name == name {
			return &locations[i], nil
		}
	}
	return nil, nil
}

// RefreshLocations принудительно перечитывает справочник станций
func (c *Client) RefreshLocations(ctx context.Context) error {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	c.cache.populated = false
	c.cache.locations = nil
	return c.ensureLocationsLocked(ctx)
}

// InvalidateLocations сбрасывает кэш; следующий вызов загрузит справочник заново
func (c *Client) InvalidateLocations() {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	c.cache.populated = false
	c.cache.locations = nil
}

// ensureLocationsLocked загружает справочник, если он еще не загружен.
// Вызывается только под c.cache.mu.
func (c *Client) ensureLocationsLocked(ctx context.Context) error {
	if c.cache.populated {
		return nil
	}

	data, err := c.session.getJSON(ctx, "stations", pathStations)
	if err != nil {
		return err
	}

	var payload struct {
		Stations *[]locationDTO `json:"stations"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: failed to decode stations payload: %v", ErrMalformedResponse, err)
	}
	if payload.Stations == nil {
		return missingField("stations response", "stations")
	}

	locations := make([]Location, 0, len(*payload.Stations))
	for _, stationData := range *payload.Stations {
		location, err := mapLocation(stationData)
		if err != nil {
			return err
		}
		locations = append(locations, location)
	}

	c.cache.locations = locations
	c.cache.populated = true

	c.log.Info("locations: fetched %d stations", len(locations))
	return nil
}
