package repository

import (
	"context"
	"time"

	"github.com/greencity/place-service/internal/domain"
)

// CacheRepository fronts hot place reads. Misses return (nil, nil);
// failures are surfaced so callers can degrade to the database.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// GetPlaceInfo returns the cached info projection or nil on miss.
	GetPlaceInfo(ctx context.Context, id int64) (*domain.PlaceInfo, error)

	SetPlaceInfo(ctx context.Context, info *domain.PlaceInfo, ttl time.Duration) error

	// InvalidatePlace drops every cached entry derived from the place.
	InvalidatePlace(ctx context.Context, id int64) error

	// GetBounds returns a cached viewport result or nil on miss.
	GetBounds(ctx context.Context, bounds domain.MapBounds) ([]*domain.PlaceByBounds, error)

	SetBounds(ctx context.Context, bounds domain.MapBounds, places []*domain.PlaceByBounds, ttl time.Duration) error
}
