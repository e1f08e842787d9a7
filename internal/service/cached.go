// Package service contains the cache-or-fetch logic for the city data
// aggregator. One generic resolver carries the miss/fresh/stale state machine
// for every cached domain; the per-domain differences (table, staleness
// window, fetch) are injected at construction.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cityscout/backend/internal/domain"
	"github.com/cityscout/backend/internal/repo"
)

// Fetcher fetches the full normalized row set for a location from an
// upstream provider. Implemented by the provider clients.
type Fetcher[T domain.Entry] func(ctx context.Context, locationID int64, p domain.FetchParams) ([]T, error)

// CachedResolver serves one cached domain (weather, restaurants, movies,
// meetups) from the store, refreshing from upstream when the cached set is
// absent or older than the staleness window.
//
// The per-request state machine: absent → fetch, insert, return;
// stale → delete all, fetch, insert, return; fresh → return stored rows
// untouched. A stale refresh always replaces the whole row set — there is
// no partial merge. Rows deleted by a stale refresh are not restored if the
// fetch then fails; the next request simply takes the miss path.
type CachedResolver[T domain.Entry] struct {
	entries repo.EntryRepo[T]
	fetch   Fetcher[T]
	window  time.Duration
	log     *slog.Logger
	now     func() time.Time
}

// NewCachedResolver constructs a resolver for one domain.
func NewCachedResolver[T domain.Entry](entries repo.EntryRepo[T], fetch Fetcher[T], window time.Duration, log *slog.Logger) *CachedResolver[T] {
	return &CachedResolver[T]{
		entries: entries,
		fetch:   fetch,
		window:  window,
		log:     log,
		now:     time.Now,
	}
}

// Resolve returns the domain's rows for the given location id, consulting
// the store first and the provider only on miss or staleness.
func (r *CachedResolver[T]) Resolve(ctx context.Context, locationID int64, p domain.FetchParams) ([]T, error) {
	stored, err := r.entries.ListByLocation(ctx, locationID)
	if err != nil {
		r.log.ErrorContext(ctx, "cache read failed", "location_id", locationID, "error", err)
		return nil, fmt.Errorf("service.CachedResolver.Resolve: %w: %v", domain.ErrStore, err)
	}

	// Miss: nothing cached for this location yet.
	if len(stored) == 0 {
		return r.refresh(ctx, locationID, p)
	}

	// All rows of a set share one write time, so the first row decides.
	if domain.Fresh(stored[0].Written(), r.window, r.now()) {
		return stored, nil
	}

	// Stale: drop the whole set before refetching. No partial merge.
	if err := r.entries.DeleteByLocation(ctx, locationID); err != nil {
		r.log.ErrorContext(ctx, "stale delete failed", "location_id", locationID, "error", err)
		return nil, fmt.Errorf("service.CachedResolver.Resolve: %w: %v", domain.ErrStore, err)
	}

	return r.refresh(ctx, locationID, p)
}

// refresh fetches from upstream, persists every mapped row, and returns the
// fetched set. Nothing is inserted when the fetch fails.
func (r *CachedResolver[T]) refresh(ctx context.Context, locationID int64, p domain.FetchParams) ([]T, error) {
	fetched, err := r.fetch(ctx, locationID, p)
	if err != nil {
		return nil, fmt.Errorf("service.CachedResolver.Resolve: %w", err)
	}

	for _, row := range fetched {
		if err := r.entries.Insert(ctx, row); err != nil {
			r.log.ErrorContext(ctx, "cache insert failed", "location_id", locationID, "error", err)
			return nil, fmt.Errorf("service.CachedResolver.Resolve: %w: %v", domain.ErrStore, err)
		}
	}

	return fetched, nil
}
