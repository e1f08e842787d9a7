// Package domain contains the core row types for the city data aggregator.
// This package has zero external dependencies and is imported by every other
// internal package (repo, provider, service, handler).
package domain

// Location is the geocoded result for a free-text search query.
// SearchQuery is the cache key: one row per distinct raw user input.
// Locations are immutable once created — they never expire and are never
// updated; every other domain row references a Location by ID.
type Location struct {
	ID             int64   `json:"id"`
	SearchQuery    string  `json:"search_query"`
	FormattedQuery string  `json:"formatted_query"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CreatedAt      int64   `json:"created_at"`
}

// FetchParams carries the upstream call parameters from the HTTP layer to a
// provider fetch. Latitude/Longitude drive the geo-scoped providers; Query is
// the original search string, used only by the movie search.
type FetchParams struct {
	Latitude  float64
	Longitude float64
	Query     string
}
