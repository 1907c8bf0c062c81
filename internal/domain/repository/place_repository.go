package repository

import (
	"context"

	"github.com/greencity/place-service/internal/domain"
)

// PlaceRepository owns the mapping between Place entities and durable rows.
type PlaceRepository interface {
	// Save persists a new place with its location and opening hours in
	// one transaction. The id must be unset; the stored entity is returned.
	Save(ctx context.Context, place *domain.Place) (*domain.Place, error)

	// Update atomically replaces name, location, category and opening
	// hours. Status, author and address are never touched.
	Update(ctx context.Context, place *domain.Place) (*domain.Place, error)

	// GetByID returns the place with its location and opening hours.
	GetByID(ctx context.Context, id int64) (*domain.Place, error)

	// GetInfoByID returns the read-optimised info projection.
	GetInfoByID(ctx context.Context, id int64) (*domain.PlaceInfo, error)

	// GetByAddress returns the unique non-deleted place with the given
	// address, or (nil, nil) when absent.
	GetByAddress(ctx context.Context, address string) (*domain.Place, error)

	// FindByMapBounds returns APPROVED places inside the rectangle,
	// ordered by id. A wrapping rectangle covers two longitude ranges.
	FindByMapBounds(ctx context.Context, bounds domain.MapBounds) ([]*domain.PlaceByBounds, error)

	// FindByStatus returns one page of places in the given status,
	// sorted by modified_at descending with id ascending tie-break,
	// together with the total match count.
	FindByStatus(ctx context.Context, status domain.PlaceStatus, page domain.PageRequest) ([]*domain.AdminPlace, int64, error)

	// FindByFilter evaluates the predicate conjunction. With a nil page
	// every match is returned; the total count always covers the whole
	// predicate set.
	FindByFilter(ctx context.Context, filter domain.FilterPlace, page *domain.PageRequest) ([]*domain.PlaceByBounds, int64, error)

	// UpdateStatus applies one moderation transition under a row lock.
	// The returned result classifies the transition; the place carries
	// the post-operation state. Illegal transitions surface an error
	// alongside TransitionIllegal.
	UpdateStatus(ctx context.Context, id int64, target domain.PlaceStatus) (*domain.Place, domain.TransitionResult, error)
}
