package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/delivery/http/handler"
	"github.com/greencity/place-service/internal/domain"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
	"github.com/greencity/place-service/internal/usecase"
)

// stubPlaceRepo answers listing queries with canned data and applies
// any legal status transition. ID 404 does not exist.
type stubPlaceRepo struct{}

func (s *stubPlaceRepo) Save(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	return place, nil
}

func (s *stubPlaceRepo) Update(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	return place, nil
}

func (s *stubPlaceRepo) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	if id == 404 {
		return nil, apperrors.ErrPlaceNotFound
	}
	return &domain.Place{ID: id, Status: domain.StatusApproved}, nil
}

func (s *stubPlaceRepo) GetInfoByID(ctx context.Context, id int64) (*domain.PlaceInfo, error) {
	if id == 404 {
		return nil, apperrors.ErrPlaceNotFound
	}
	return &domain.PlaceInfo{ID: id, Name: "Vegan Cafe"}, nil
}

func (s *stubPlaceRepo) GetByAddress(ctx context.Context, address string) (*domain.Place, error) {
	return nil, nil
}

func (s *stubPlaceRepo) FindByMapBounds(ctx context.Context, bounds domain.MapBounds) ([]*domain.PlaceByBounds, error) {
	return []*domain.PlaceByBounds{}, nil
}

func (s *stubPlaceRepo) FindByStatus(ctx context.Context, status domain.PlaceStatus, page domain.PageRequest) ([]*domain.AdminPlace, int64, error) {
	return []*domain.AdminPlace{{ID: 1, Name: "Vegan Cafe", Status: status}}, 1, nil
}

func (s *stubPlaceRepo) FindByFilter(ctx context.Context, filter domain.FilterPlace, page *domain.PageRequest) ([]*domain.PlaceByBounds, int64, error) {
	return []*domain.PlaceByBounds{}, 0, nil
}

func (s *stubPlaceRepo) UpdateStatus(ctx context.Context, id int64, target domain.PlaceStatus) (*domain.Place, domain.TransitionResult, error) {
	if id == 404 {
		return nil, domain.TransitionAllowed, apperrors.ErrPlaceNotFound
	}
	return &domain.Place{ID: id, Status: target}, domain.TransitionAllowed, nil
}

// stubCacheRepo always misses.
type stubCacheRepo struct{}

func (s *stubCacheRepo) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }

func (s *stubCacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (s *stubCacheRepo) Delete(ctx context.Context, key string) error { return nil }

func (s *stubCacheRepo) GetPlaceInfo(ctx context.Context, id int64) (*domain.PlaceInfo, error) {
	return nil, nil
}

func (s *stubCacheRepo) SetPlaceInfo(ctx context.Context, info *domain.PlaceInfo, ttl time.Duration) error {
	return nil
}

func (s *stubCacheRepo) InvalidatePlace(ctx context.Context, id int64) error { return nil }

func (s *stubCacheRepo) GetBounds(ctx context.Context, bounds domain.MapBounds) ([]*domain.PlaceByBounds, error) {
	return nil, nil
}

func (s *stubCacheRepo) SetBounds(ctx context.Context, bounds domain.MapBounds, places []*domain.PlaceByBounds, ttl time.Duration) error {
	return nil
}

func setupApp() *fiber.App {
	log := zap.NewNop()
	placeRepo := &stubPlaceRepo{}
	cacheRepo := &stubCacheRepo{}

	placeUC := usecase.NewPlaceUseCase(placeRepo, nil, nil, cacheRepo, nil, log, time.Minute)
	filterUC := usecase.NewFilterUseCase(placeRepo, cacheRepo, log, time.Minute)
	h := handler.NewPlaceHandler(placeUC, filterUC, log)

	app := fiber.New()
	place := app.Group("/place")
	place.Get("/statuses", h.ListStatuses)
	place.Get("/info/:id", h.GetInfo)
	place.Patch("/status", h.UpdateStatus)
	place.Patch("/statuses", h.UpdateStatuses)
	place.Delete("/:id", h.Delete)
	place.Delete("/", h.BulkDelete)
	place.Get("/:status", h.GetByStatus)
	return app
}

func TestPlaceHandler_GetByStatus(t *testing.T) {
	app := setupApp()

	t.Run("status segment matches case-insensitively", func(t *testing.T) {
		for _, path := range []string{"/place/PROPOSED", "/place/proposed", "/place/Proposed"} {
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode, "path %s", path)
		}
	})

	t.Run("unknown status answers 400", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/place/ARCHIVED", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body struct {
			Error *apperrors.AppError `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, apperrors.ErrInvalidStatus.Code, body.Error.Code)
	})

	t.Run("fixed routes are not shadowed by the status segment", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/place/statuses", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Data []string `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, []string{"PROPOSED", "APPROVED", "DECLINED", "DELETED"}, body.Data)
	})
}

func TestPlaceHandler_UpdateStatuses(t *testing.T) {
	app := setupApp()

	t.Run("per-id failures still answer 200", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/place/statuses",
			strings.NewReader(`{"ids":[1,404,2],"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Data []struct {
				ID      int64  `json:"id"`
				Outcome string `json:"outcome"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Data, 3)
		assert.Equal(t, "applied", body.Data[0].Outcome)
		assert.Equal(t, "failed", body.Data[1].Outcome)
		assert.Equal(t, "applied", body.Data[2].Outcome)
	})

	t.Run("unknown target status answers 400", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/place/statuses",
			strings.NewReader(`{"ids":[1],"status":"ARCHIVED"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty id list answers 400", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/place/statuses",
			strings.NewReader(`{"ids":[],"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestPlaceHandler_BulkDelete(t *testing.T) {
	app := setupApp()

	t.Run("duplicates collapse to one result", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/place/?ids=5,5,6", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Data []struct {
				ID     int64  `json:"id"`
				Status string `json:"status"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Data, 2)
		assert.Equal(t, int64(5), body.Data[0].ID)
		assert.Equal(t, "DELETED", body.Data[0].Status)
		assert.Equal(t, int64(6), body.Data[1].ID)
	})

	t.Run("missing ids parameter answers 400", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/place/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed segment answers 400", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/place/?ids=1,,2", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestPlaceHandler_GetInfo(t *testing.T) {
	app := setupApp()

	t.Run("success", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/place/info/42", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "Vegan Cafe")
	})

	t.Run("missing place answers 404", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/place/info/404", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id answers 400", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/place/info/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
