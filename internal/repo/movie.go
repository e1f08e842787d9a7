package repo

import (
	"github.com/jackc/pgx/v5"

	"github.com/cityscout/backend/internal/domain"
)

// NewMovieRepo constructs the EntryRepo for the movies table.
func NewMovieRepo(db db) EntryRepo[domain.Movie] {
	return &pgEntryRepo[domain.Movie]{
		db:    db,
		table: "movies",
		listSQL: `
			SELECT id, title, overview, average_votes, total_votes, image_url,
			       popularity, released_on, created_at, location_id
			FROM movies
			WHERE location_id = @location_id
			ORDER BY id`,
		insertSQL: `
			INSERT INTO movies (title, overview, average_votes, total_votes, image_url,
			                    popularity, released_on, created_at, location_id)
			VALUES (@title, @overview, @average_votes, @total_votes, @image_url,
			        @popularity, @released_on, @created_at, @location_id)
			ON CONFLICT (location_id, title, released_on) DO NOTHING`,
		insertArgs: func(m domain.Movie) pgx.NamedArgs {
			return pgx.NamedArgs{
				"title":         m.Title,
				"overview":      m.Overview,
				"average_votes": m.AverageVotes,
				"total_votes":   m.TotalVotes,
				"image_url":     m.ImageURL,
				"popularity":    m.Popularity,
				"released_on":   m.ReleasedOn,
				"created_at":    m.CreatedAt,
				"location_id":   m.LocationID,
			}
		},
		scan: func(s scanner) (domain.Movie, error) {
			var m domain.Movie
			err := s.Scan(&m.ID, &m.Title, &m.Overview, &m.AverageVotes, &m.TotalVotes,
				&m.ImageURL, &m.Popularity, &m.ReleasedOn, &m.CreatedAt, &m.LocationID)
			return m, err
		},
	}
}
