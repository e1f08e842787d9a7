package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/cityscout/backend/internal/domain"
)

// The frontend sends qs-extended query strings, so the nested params arrive
// as data[id], data[latitude], data[longitude], data[search_query].

var validate = validator.New()

// coordParams are the parameters for the geo-scoped cached routes
// (/weather, /yelp, /meetups).
type coordParams struct {
	ID        int64   `validate:"required,gt=0"`
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

func (p coordParams) fetchParams() domain.FetchParams {
	return domain.FetchParams{Latitude: p.Latitude, Longitude: p.Longitude}
}

// geoParams are the parameters for /trails, which takes no location id.
type geoParams struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

// movieParams are the parameters for /movies, which searches by the
// location's original query string instead of coordinates.
type movieParams struct {
	ID    int64  `validate:"required,gt=0"`
	Query string `validate:"required"`
}

func bindCoordParams(r *http.Request) (coordParams, error) {
	q := r.URL.Query()

	id, err := requireInt(q, "data[id]")
	if err != nil {
		return coordParams{}, err
	}
	lat, err := requireFloat(q, "data[latitude]")
	if err != nil {
		return coordParams{}, err
	}
	lng, err := requireFloat(q, "data[longitude]")
	if err != nil {
		return coordParams{}, err
	}

	p := coordParams{ID: id, Latitude: lat, Longitude: lng}
	if err := validate.Struct(p); err != nil {
		return coordParams{}, fmt.Errorf("invalid query parameters")
	}
	return p, nil
}

func bindGeoParams(r *http.Request) (geoParams, error) {
	q := r.URL.Query()

	lat, err := requireFloat(q, "data[latitude]")
	if err != nil {
		return geoParams{}, err
	}
	lng, err := requireFloat(q, "data[longitude]")
	if err != nil {
		return geoParams{}, err
	}

	p := geoParams{Latitude: lat, Longitude: lng}
	if err := validate.Struct(p); err != nil {
		return geoParams{}, fmt.Errorf("invalid query parameters")
	}
	return p, nil
}

func bindMovieParams(r *http.Request) (movieParams, error) {
	q := r.URL.Query()

	id, err := requireInt(q, "data[id]")
	if err != nil {
		return movieParams{}, err
	}
	query := q.Get("data[search_query]")

	p := movieParams{ID: id, Query: query}
	if err := validate.Struct(p); err != nil {
		return movieParams{}, fmt.Errorf("invalid query parameters")
	}
	return p, nil
}

func requireInt(q url.Values, key string) (int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", key)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func requireFloat(q url.Values, key string) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}
