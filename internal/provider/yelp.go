package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cityscout/backend/internal/domain"
)

// DefaultYelpBaseURL is the Yelp Fusion API host.
const DefaultYelpBaseURL = "https://api.yelp.com"

// priceUnavailable is stored when Yelp omits a business's price tier.
const priceUnavailable = "unavailable"

// YelpClient searches restaurants near a set of coordinates via the Yelp
// business search API. Authentication is a bearer token, unlike the
// key-in-query providers.
type YelpClient struct {
	apiKey  string
	baseURL string
	client  *Client
	now     func() int64
}

// NewYelpClient constructs a YelpClient.
func NewYelpClient(apiKey, baseURL string, client *Client) *YelpClient {
	return &YelpClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		now:     domain.NowMillis,
	}
}

type yelpPayload struct {
	Businesses []yelpBusiness `json:"businesses"`
}

type yelpBusiness struct {
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	Price    string  `json:"price"`
	Rating   float64 `json:"rating"`
	URL      string  `json:"url"`
}

// Fetch returns one Restaurant row per business near the given coordinates.
func (y *YelpClient) Fetch(ctx context.Context, locationID int64, p domain.FetchParams) ([]domain.Restaurant, error) {
	q := url.Values{}
	q.Set("term", "restaurants")
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	u := y.baseURL + "/v3/businesses/search?" + q.Encode()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+y.apiKey)

	var payload yelpPayload
	if err := y.client.getJSON(ctx, u, header, &payload); err != nil {
		return nil, fmt.Errorf("provider.YelpClient.Fetch: %w", err)
	}

	createdAt := y.now()
	restaurants := make([]domain.Restaurant, len(payload.Businesses))
	for i, b := range payload.Businesses {
		restaurants[i] = mapRestaurant(b, locationID, createdAt)
	}
	return restaurants, nil
}

// mapRestaurant converts one Yelp business into a Restaurant row.
// A missing price tier becomes the literal "unavailable".
func mapRestaurant(b yelpBusiness, locationID, createdAt int64) domain.Restaurant {
	price := b.Price
	if price == "" {
		price = priceUnavailable
	}
	return domain.Restaurant{
		Name:       b.Name,
		ImageURL:   b.ImageURL,
		Price:      price,
		Rating:     b.Rating,
		URL:        b.URL,
		CreatedAt:  createdAt,
		LocationID: locationID,
	}
}
