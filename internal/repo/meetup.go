package repo

import (
	"github.com/jackc/pgx/v5"

	"github.com/cityscout/backend/internal/domain"
)

// NewMeetupRepo constructs the EntryRepo for the meetups table.
func NewMeetupRepo(db db) EntryRepo[domain.Meetup] {
	return &pgEntryRepo[domain.Meetup]{
		db:    db,
		table: "meetups",
		listSQL: `
			SELECT id, link, name, creation_date, host, created_at, location_id
			FROM meetups
			WHERE location_id = @location_id
			ORDER BY id`,
		insertSQL: `
			INSERT INTO meetups (link, name, creation_date, host, created_at, location_id)
			VALUES (@link, @name, @creation_date, @host, @created_at, @location_id)
			ON CONFLICT (location_id, link) DO NOTHING`,
		insertArgs: func(m domain.Meetup) pgx.NamedArgs {
			return pgx.NamedArgs{
				"link":          m.Link,
				"name":          m.Name,
				"creation_date": m.CreationDate,
				"host":          m.Host,
				"created_at":    m.CreatedAt,
				"location_id":   m.LocationID,
			}
		},
		scan: func(s scanner) (domain.Meetup, error) {
			var m domain.Meetup
			err := s.Scan(&m.ID, &m.Link, &m.Name, &m.CreationDate, &m.Host, &m.CreatedAt, &m.LocationID)
			return m, err
		},
	}
}
