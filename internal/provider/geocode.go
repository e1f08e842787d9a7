package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cityscout/backend/internal/domain"
)

// DefaultGeocodeBaseURL is the Google Maps geocoding API host.
const DefaultGeocodeBaseURL = "https://maps.googleapis.com"

// GeocodeClient resolves free-text place queries to coordinates via the
// Google geocoding API.
type GeocodeClient struct {
	apiKey  string
	baseURL string
	client  *Client
	now     func() int64
}

// NewGeocodeClient constructs a GeocodeClient. baseURL is overridable so
// tests can point it at an httptest server; pass DefaultGeocodeBaseURL in
// production.
func NewGeocodeClient(apiKey, baseURL string, client *Client) *GeocodeClient {
	return &GeocodeClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		now:     domain.NowMillis,
	}
}

type geocodePayload struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Locate geocodes the query and returns an unsaved Location built from the
// first result. An empty results array is an upstream failure: the caller
// gets no partial data.
func (g *GeocodeClient) Locate(ctx context.Context, query string) (domain.Location, error) {
	q := url.Values{}
	q.Set("address", query)
	q.Set("key", g.apiKey)
	u := g.baseURL + "/maps/api/geocode/json?" + q.Encode()

	var payload geocodePayload
	if err := g.client.getJSON(ctx, u, nil, &payload); err != nil {
		return domain.Location{}, fmt.Errorf("provider.GeocodeClient.Locate: %w", err)
	}

	if len(payload.Results) == 0 {
		return domain.Location{}, fmt.Errorf("provider.GeocodeClient.Locate: %w: empty results", domain.ErrUpstream)
	}

	return mapLocation(query, payload.Results[0], g.now()), nil
}

// mapLocation builds a Location row from the first geocoding result.
// The id stays zero until the repo persists the row.
func mapLocation(query string, res geocodeResult, createdAt int64) domain.Location {
	return domain.Location{
		SearchQuery:    query,
		FormattedQuery: res.FormattedAddress,
		Latitude:       res.Geometry.Location.Lat,
		Longitude:      res.Geometry.Location.Lng,
		CreatedAt:      createdAt,
	}
}
