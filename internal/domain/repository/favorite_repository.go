package repository

import (
	"context"

	"github.com/greencity/place-service/internal/domain"
)

// FavoriteRepository stores per-user place bookmarks.
type FavoriteRepository interface {
	// Save inserts the bookmark or renames an existing one for the same
	// user and place.
	Save(ctx context.Context, favorite *domain.FavoritePlace) (*domain.FavoritePlace, error)

	// GetByID returns the bookmark or ErrFavoritePlaceNotFound.
	GetByID(ctx context.Context, id int64) (*domain.FavoritePlace, error)

	// GetByUser returns the user's bookmarks ordered by name.
	GetByUser(ctx context.Context, userID int64) ([]*domain.FavoritePlace, error)

	// Delete removes the user's bookmark. Deleting someone else's
	// bookmark reports ErrFavoritePlaceNotFound.
	Delete(ctx context.Context, id, userID int64) error
}
