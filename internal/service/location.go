package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cityscout/backend/internal/domain"
	"github.com/cityscout/backend/internal/repo"
)

// Geocoder resolves a free-text query to an unsaved Location.
// Implemented by provider.GeocodeClient.
type Geocoder interface {
	Locate(ctx context.Context, query string) (domain.Location, error)
}

// LocationService resolves free-text queries to persisted locations.
// Unlike the cached domains, the cache key is the raw query string and there
// is no staleness: once geocoded, a query serves from the store forever.
type LocationService struct {
	locations repo.LocationRepo
	geocoder  Geocoder
	log       *slog.Logger
}

// NewLocationService constructs a LocationService.
func NewLocationService(locations repo.LocationRepo, geocoder Geocoder, log *slog.Logger) *LocationService {
	return &LocationService{
		locations: locations,
		geocoder:  geocoder,
		log:       log,
	}
}

// Resolve returns the Location for the query, geocoding and persisting it on
// first sight. Resolving the same query twice yields the same id both times,
// even across concurrent first requests: the conflict-safe insert reads the
// winner's row back for the loser.
func (s *LocationService) Resolve(ctx context.Context, query string) (domain.Location, error) {
	loc, err := s.locations.GetBySearchQuery(ctx, query)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.ErrorContext(ctx, "location read failed", "query", query, "error", err)
		return domain.Location{}, fmt.Errorf("service.LocationService.Resolve: %w: %v", domain.ErrStore, err)
	}

	located, err := s.geocoder.Locate(ctx, query)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Resolve: %w", err)
	}

	saved, err := s.locations.Insert(ctx, located)
	if err != nil {
		s.log.ErrorContext(ctx, "location insert failed", "query", query, "error", err)
		return domain.Location{}, fmt.Errorf("service.LocationService.Resolve: %w: %v", domain.ErrStore, err)
	}
	return saved, nil
}
