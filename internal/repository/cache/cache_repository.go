package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) GetPlaceInfo(ctx context.Context, id int64) (*domain.PlaceInfo, error) {
	data, err := r.Get(ctx, placeInfoKey(id))
	if err != nil || data == nil {
		return nil, err
	}

	var info domain.PlaceInfo
	if err := json.Unmarshal(data, &info); err != nil {
		r.logger.Warn("Failed to unmarshal cached place info", zap.Int64("id", id), zap.Error(err))
		return nil, nil
	}
	return &info, nil
}

func (r *cacheRepository) SetPlaceInfo(ctx context.Context, info *domain.PlaceInfo, ttl time.Duration) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return r.Set(ctx, placeInfoKey(info.ID), data, ttl)
}

// InvalidatePlace drops the info entry and bumps the bounds generation,
// orphaning every cached viewport until it expires.
func (r *cacheRepository) InvalidatePlace(ctx context.Context, id int64) error {
	if err := r.Delete(ctx, placeInfoKey(id)); err != nil {
		return err
	}

	if err := r.client.Incr(ctx, boundsGenKey).Err(); err != nil {
		r.logger.Error("Failed to bump bounds generation", zap.Error(err))
		return fmt.Errorf("cache incr error: %w", err)
	}
	return nil
}

func (r *cacheRepository) GetBounds(ctx context.Context, bounds domain.MapBounds) ([]*domain.PlaceByBounds, error) {
	gen, err := r.boundsGeneration(ctx)
	if err != nil {
		return nil, err
	}

	data, err := r.Get(ctx, boundsKey(gen, bounds))
	if err != nil || data == nil {
		return nil, err
	}

	var places []*domain.PlaceByBounds
	if err := json.Unmarshal(data, &places); err != nil {
		r.logger.Warn("Failed to unmarshal cached bounds result", zap.Error(err))
		return nil, nil
	}
	return places, nil
}

func (r *cacheRepository) SetBounds(ctx context.Context, bounds domain.MapBounds, places []*domain.PlaceByBounds, ttl time.Duration) error {
	gen, err := r.boundsGeneration(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return r.Set(ctx, boundsKey(gen, bounds), data, ttl)
}

// boundsGenKey counts place mutations; it namespaces viewport keys so a
// single INCR invalidates all of them at once.
const boundsGenKey = "place:bounds:gen"

func (r *cacheRepository) boundsGeneration(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, boundsGenKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		r.logger.Error("Failed to read bounds generation", zap.Error(err))
		return 0, fmt.Errorf("cache get error: %w", err)
	}
	return gen, nil
}

func placeInfoKey(id int64) string {
	return fmt.Sprintf("place:info:%d", id)
}

// boundsKey rounds coordinates to ~11m so nearby viewports share an entry.
func boundsKey(gen int64, b domain.MapBounds) string {
	return fmt.Sprintf("place:bounds:%d:%.4f:%.4f:%.4f:%.4f",
		gen, b.NorthEastLat, b.NorthEastLng, b.SouthWestLat, b.SouthWestLng)
}
