package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/cityscout/backend/internal/domain"
)

// DefaultWeatherBaseURL is the Dark Sky forecast API host.
const DefaultWeatherBaseURL = "https://api.darksky.net"

// forecastDateLayout renders an epoch-seconds forecast time as a fixed-width
// day prefix: "Mon Jan 02 2006". No year drift, no time of day.
const forecastDateLayout = "Mon Jan 02 2006"

// WeatherClient fetches daily forecasts from Dark Sky.
type WeatherClient struct {
	apiKey  string
	baseURL string
	client  *Client
	now     func() int64
}

// NewWeatherClient constructs a WeatherClient.
func NewWeatherClient(apiKey, baseURL string, client *Client) *WeatherClient {
	return &WeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		now:     domain.NowMillis,
	}
}

type weatherPayload struct {
	Daily struct {
		Data []weatherDay `json:"data"`
	} `json:"daily"`
}

type weatherDay struct {
	Summary string `json:"summary"`
	Time    int64  `json:"time"`
}

// Fetch returns one Forecast row per forecast day for the given coordinates,
// each stamped with locationID and the current write time.
func (w *WeatherClient) Fetch(ctx context.Context, locationID int64, p domain.FetchParams) ([]domain.Forecast, error) {
	u := fmt.Sprintf("%s/forecast/%s/%v,%v", w.baseURL, w.apiKey, p.Latitude, p.Longitude)

	var payload weatherPayload
	if err := w.client.getJSON(ctx, u, nil, &payload); err != nil {
		return nil, fmt.Errorf("provider.WeatherClient.Fetch: %w", err)
	}

	createdAt := w.now()
	forecasts := make([]domain.Forecast, len(payload.Daily.Data))
	for i, day := range payload.Daily.Data {
		forecasts[i] = mapForecast(day, locationID, createdAt)
	}
	return forecasts, nil
}

// mapForecast converts one provider forecast day into a Forecast row.
func mapForecast(day weatherDay, locationID, createdAt int64) domain.Forecast {
	return domain.Forecast{
		Forecast:   day.Summary,
		Time:       time.Unix(day.Time, 0).Format(forecastDateLayout),
		CreatedAt:  createdAt,
		LocationID: locationID,
	}
}
