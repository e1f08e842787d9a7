// Package repo contains all database access for the city data aggregator.
// Each domain has its own file with the SQL and scanning for its table.
// No business logic lives here — cache decisions belong to the service layer.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cityscout/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing one scan
// function per domain to serve both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// LocationRepo defines the persistence operations for Locations.
// The location service depends on this interface, not the Postgres
// implementation, which allows it to be unit-tested with a mock.
type LocationRepo interface {
	// GetBySearchQuery retrieves the location cached for the exact raw query
	// string. Returns domain.ErrNotFound when the query has never been
	// geocoded.
	GetBySearchQuery(ctx context.Context, query string) (domain.Location, error)

	// Insert persists a newly geocoded location and returns it with its
	// DB-generated id. The insert is conflict-safe on search_query: if a
	// concurrent request won the race, the winner's row is read back and
	// returned instead, so callers always receive a row with an id.
	Insert(ctx context.Context, loc domain.Location) (domain.Location, error)
}

type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

func (r *pgLocationRepo) GetBySearchQuery(ctx context.Context, query string) (domain.Location, error) {
	const q = `
		SELECT id, search_query, formatted_query, latitude, longitude, created_at
		FROM locations
		WHERE search_query = @search_query`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"search_query": query})
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Location{}, err
		}
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetBySearchQuery: %w", err)
	}
	return loc, nil
}

func (r *pgLocationRepo) Insert(ctx context.Context, loc domain.Location) (domain.Location, error) {
	const q = `
		INSERT INTO locations (search_query, formatted_query, latitude, longitude, created_at)
		VALUES (@search_query, @formatted_query, @latitude, @longitude, @created_at)
		ON CONFLICT (search_query) DO NOTHING
		RETURNING id, search_query, formatted_query, latitude, longitude, created_at`

	args := pgx.NamedArgs{
		"search_query":    loc.SearchQuery,
		"formatted_query": loc.FormattedQuery,
		"latitude":        loc.Latitude,
		"longitude":       loc.Longitude,
		"created_at":      loc.CreatedAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	inserted, err := scanLocation(row)
	if err == nil {
		return inserted, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Insert: %w", err)
	}

	// DO NOTHING fired: a concurrent request inserted the same search_query
	// first. Read the winner's row back so the caller still gets an id.
	existing, err := r.GetBySearchQuery(ctx, loc.SearchQuery)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Insert: reread after conflict: %w", err)
	}
	return existing, nil
}

// scanLocation maps a single database row into a domain.Location.
func scanLocation(s scanner) (domain.Location, error) {
	var loc domain.Location
	err := s.Scan(&loc.ID, &loc.SearchQuery, &loc.FormattedQuery, &loc.Latitude, &loc.Longitude, &loc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, err
	}
	return loc, nil
}
