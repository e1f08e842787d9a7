package repo

import (
	"github.com/jackc/pgx/v5"

	"github.com/cityscout/backend/internal/domain"
)

// NewForecastRepo constructs the EntryRepo for the forecasts table.
func NewForecastRepo(db db) EntryRepo[domain.Forecast] {
	return &pgEntryRepo[domain.Forecast]{
		db:    db,
		table: "forecasts",
		listSQL: `
			SELECT id, forecast, time, created_at, location_id
			FROM forecasts
			WHERE location_id = @location_id
			ORDER BY id`,
		insertSQL: `
			INSERT INTO forecasts (forecast, time, created_at, location_id)
			VALUES (@forecast, @time, @created_at, @location_id)
			ON CONFLICT (location_id, time) DO NOTHING`,
		insertArgs: func(f domain.Forecast) pgx.NamedArgs {
			return pgx.NamedArgs{
				"forecast":    f.Forecast,
				"time":        f.Time,
				"created_at":  f.CreatedAt,
				"location_id": f.LocationID,
			}
		},
		scan: func(s scanner) (domain.Forecast, error) {
			var f domain.Forecast
			err := s.Scan(&f.ID, &f.Forecast, &f.Time, &f.CreatedAt, &f.LocationID)
			return f, err
		},
	}
}
