package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedUser inserts a user and returns its ID
func SeedUser(db *sql.DB, email, name, role string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"INSERT INTO users (email, name, role) VALUES ($1, $2, $3) RETURNING id",
		email, name, role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed user %s: %w", email, err)
	}
	return id, nil
}

// SeedCategory inserts a category and returns its ID
func SeedCategory(db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"INSERT INTO categories (name) VALUES ($1) RETURNING id",
		name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed category %s: %w", name, err)
	}
	return id, nil
}

// GetPlaceStatus returns the current status of a place
func GetPlaceStatus(db *sql.DB, placeID int64) (string, error) {
	var status string
	err := db.QueryRowContext(context.Background(),
		"SELECT status FROM places WHERE id = $1", placeID).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("get status for place %d: %w", placeID, err)
	}
	return status, nil
}
