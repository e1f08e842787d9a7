package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cityscout/backend/internal/domain"
)

// EntryRepo defines the persistence operations shared by every cached domain
// table (forecasts, restaurants, movies, meetups). The cached resolver drives
// the delete-then-refill sequence through these three operations; the repo
// itself holds no cache policy.
type EntryRepo[T domain.Entry] interface {
	// ListByLocation returns every row for the given location id, oldest
	// first. An empty slice and nil error means cache miss.
	ListByLocation(ctx context.Context, locationID int64) ([]T, error)

	// Insert persists one row. Inserts are conflict-safe on the table's
	// (location_id, natural key) constraint: a duplicate written by a
	// concurrent request is silently dropped.
	Insert(ctx context.Context, row T) error

	// DeleteByLocation removes every row for the given location id.
	// Deleting zero rows is not an error.
	DeleteByLocation(ctx context.Context, locationID int64) error
}

// pgEntryRepo is the single Postgres implementation behind every cached
// domain. Each domain instantiates it with its table name, SQL, argument
// builder, and scan function; everything else is identical across tables.
type pgEntryRepo[T domain.Entry] struct {
	db         db
	table      string
	listSQL    string
	insertSQL  string
	insertArgs func(T) pgx.NamedArgs
	scan       func(scanner) (T, error)
}

func (r *pgEntryRepo[T]) ListByLocation(ctx context.Context, locationID int64) ([]T, error) {
	rows, err := r.db.Query(ctx, r.listSQL, pgx.NamedArgs{"location_id": locationID})
	if err != nil {
		return nil, fmt.Errorf("repo.EntryRepo(%s).ListByLocation: %w", r.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		row, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EntryRepo(%s).ListByLocation: scan: %w", r.table, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EntryRepo(%s).ListByLocation: rows: %w", r.table, err)
	}

	return out, nil
}

func (r *pgEntryRepo[T]) Insert(ctx context.Context, row T) error {
	if _, err := r.db.Exec(ctx, r.insertSQL, r.insertArgs(row)); err != nil {
		return fmt.Errorf("repo.EntryRepo(%s).Insert: %w", r.table, err)
	}
	return nil
}

func (r *pgEntryRepo[T]) DeleteByLocation(ctx context.Context, locationID int64) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE location_id = @location_id`, r.table)
	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"location_id": locationID}); err != nil {
		return fmt.Errorf("repo.EntryRepo(%s).DeleteByLocation: %w", r.table, err)
	}
	return nil
}
