// Package handler implements the HTTP handlers for the city data aggregator.
// All handlers are methods on Server. Each route reads its query parameters,
// delegates to a resolver, and writes the rows as JSON; every resolver
// failure becomes the same generic 500.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cityscout/backend/internal/domain"
)

// LocationResolver defines the location lookup the handler depends on.
// Defining the interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or provider layer.
type LocationResolver interface {
	Resolve(ctx context.Context, query string) (domain.Location, error)
}

// EntryResolver is the cache-or-fetch operation for one cached domain.
// Satisfied by *service.CachedResolver[T].
type EntryResolver[T domain.Entry] interface {
	Resolve(ctx context.Context, locationID int64, p domain.FetchParams) ([]T, error)
}

// TrailFinder is the pass-through trail lookup.
type TrailFinder interface {
	Find(ctx context.Context, p domain.FetchParams) ([]domain.Trail, error)
}

// Server holds the resolver dependencies for all routes.
type Server struct {
	locations   LocationResolver
	forecasts   EntryResolver[domain.Forecast]
	restaurants EntryResolver[domain.Restaurant]
	movies      EntryResolver[domain.Movie]
	meetups     EntryResolver[domain.Meetup]
	trails      TrailFinder
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	locations LocationResolver,
	forecasts EntryResolver[domain.Forecast],
	restaurants EntryResolver[domain.Restaurant],
	movies EntryResolver[domain.Movie],
	meetups EntryResolver[domain.Meetup],
	trails TrailFinder,
	log *slog.Logger,
) *Server {
	return &Server{
		locations:   locations,
		forecasts:   forecasts,
		restaurants: restaurants,
		movies:      movies,
		meetups:     meetups,
		trails:      trails,
		log:         log,
	}
}

// Routes returns the router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/location", s.GetLocation)
	r.Get("/weather", s.GetWeather)
	r.Get("/yelp", s.GetRestaurants)
	r.Get("/movies", s.GetMovies)
	r.Get("/meetups", s.GetMeetups)
	r.Get("/trails", s.GetTrails)
	r.Get("/healthz", s.GetHealth)
	return r
}

// GetLocation handles GET /location?data=<free-text query>.
func (s *Server) GetLocation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("data")
	if query == "" {
		badRequest(w, "data query parameter is required")
		return
	}

	loc, err := s.locations.Resolve(r.Context(), query)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, loc)
}

// GetWeather handles GET /weather?data[id]=&data[latitude]=&data[longitude]=.
func (s *Server) GetWeather(w http.ResponseWriter, r *http.Request) {
	p, err := bindCoordParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rows, err := s.forecasts.Resolve(r.Context(), p.ID, p.fetchParams())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

// GetRestaurants handles GET /yelp?data[id]=&data[latitude]=&data[longitude]=.
func (s *Server) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	p, err := bindCoordParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rows, err := s.restaurants.Resolve(r.Context(), p.ID, p.fetchParams())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

// GetMovies handles GET /movies?data[id]=&data[search_query]=.
func (s *Server) GetMovies(w http.ResponseWriter, r *http.Request) {
	p, err := bindMovieParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rows, err := s.movies.Resolve(r.Context(), p.ID, domain.FetchParams{Query: p.Query})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

// GetMeetups handles GET /meetups?data[id]=&data[latitude]=&data[longitude]=.
func (s *Server) GetMeetups(w http.ResponseWriter, r *http.Request) {
	p, err := bindCoordParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rows, err := s.meetups.Resolve(r.Context(), p.ID, p.fetchParams())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

// GetTrails handles GET /trails?data[latitude]=&data[longitude]=.
// No id: trails are never cached, so no location row is involved.
func (s *Server) GetTrails(w http.ResponseWriter, r *http.Request) {
	p, err := bindGeoParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rows, err := s.trails.Find(r.Context(), domain.FetchParams{Latitude: p.Latitude, Longitude: p.Longitude})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, rows)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
