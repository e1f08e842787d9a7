package repo

import (
	"github.com/jackc/pgx/v5"

	"github.com/cityscout/backend/internal/domain"
)

// NewRestaurantRepo constructs the EntryRepo for the restaurants table.
func NewRestaurantRepo(db db) EntryRepo[domain.Restaurant] {
	return &pgEntryRepo[domain.Restaurant]{
		db:    db,
		table: "restaurants",
		listSQL: `
			SELECT id, name, image_url, price, rating, url, created_at, location_id
			FROM restaurants
			WHERE location_id = @location_id
			ORDER BY id`,
		insertSQL: `
			INSERT INTO restaurants (name, image_url, price, rating, url, created_at, location_id)
			VALUES (@name, @image_url, @price, @rating, @url, @created_at, @location_id)
			ON CONFLICT (location_id, url) DO NOTHING`,
		insertArgs: func(r domain.Restaurant) pgx.NamedArgs {
			return pgx.NamedArgs{
				"name":        r.Name,
				"image_url":   r.ImageURL,
				"price":       r.Price,
				"rating":      r.Rating,
				"url":         r.URL,
				"created_at":  r.CreatedAt,
				"location_id": r.LocationID,
			}
		},
		scan: func(s scanner) (domain.Restaurant, error) {
			var r domain.Restaurant
			err := s.Scan(&r.ID, &r.Name, &r.ImageURL, &r.Price, &r.Rating, &r.URL, &r.CreatedAt, &r.LocationID)
			return r, err
		},
	}
}
