package cache_test

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/config"
	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/domain/repository"
	"github.com/greencity/place-service/internal/repository/cache"
)

func setupCache(t *testing.T) repository.CacheRepository {
	host := os.Getenv("TEST_REDIS_HOST")
	if host == "" {
		t.Skip("TEST_REDIS_HOST is not set, skipping cache tests")
	}

	port := 6379
	if p := os.Getenv("TEST_REDIS_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		require.NoError(t, err)
		port = parsed
	}

	redisClient, err := cache.NewRedis(&config.RedisConfig{
		Host: host,
		Port: port,
		DB:   1,
	}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, redisClient.Client().FlushDB(context.Background()).Err())
	t.Cleanup(func() {
		_ = redisClient.Client().FlushDB(context.Background()).Err()
		_ = redisClient.Close()
	})

	return cache.NewCacheRepository(redisClient)
}

func TestCacheRepository_PlaceInfoRoundTrip(t *testing.T) {
	repo := setupCache(t)
	ctx := context.Background()

	info := &domain.PlaceInfo{ID: 7, Name: "Vegan Cafe", Status: domain.StatusApproved}
	require.NoError(t, repo.SetPlaceInfo(ctx, info, time.Minute))

	got, err := repo.GetPlaceInfo(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Vegan Cafe", got.Name)

	require.NoError(t, repo.InvalidatePlace(ctx, 7))

	got, err = repo.GetPlaceInfo(ctx, 7)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCacheRepository_InvalidatePlaceDropsBounds(t *testing.T) {
	repo := setupCache(t)
	ctx := context.Background()

	bounds := domain.MapBounds{
		NorthEastLat: 50.5, NorthEastLng: 30.7,
		SouthWestLat: 50.3, SouthWestLng: 30.3,
	}
	places := []*domain.PlaceByBounds{
		{ID: 1, Name: "Vegan Cafe", Address: "1 Khreshchatyk St"},
	}
	require.NoError(t, repo.SetBounds(ctx, bounds, places, time.Minute))

	got, err := repo.GetBounds(ctx, bounds)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// Any place mutation must orphan every cached viewport, the
	// mutated place need not sit inside this one.
	require.NoError(t, repo.InvalidatePlace(ctx, 99))

	got, err = repo.GetBounds(ctx, bounds)
	require.NoError(t, err)
	require.Nil(t, got)

	// A fresh result written after the invalidation is served again.
	require.NoError(t, repo.SetBounds(ctx, bounds, places, time.Minute))
	got, err = repo.GetBounds(ctx, bounds)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
