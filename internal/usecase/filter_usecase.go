package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/domain/repository"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
	"github.com/greencity/place-service/internal/pkg/utils"
	"github.com/greencity/place-service/internal/usecase/dto"
)

// FilterUseCase is the query planner for viewport and predicate-driven
// listings. One predicate set feeds both the flat and the paged shape.
type FilterUseCase struct {
	placeRepo repository.PlaceRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	boundsTTL time.Duration
}

func NewFilterUseCase(
	placeRepo repository.PlaceRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	boundsTTL time.Duration,
) *FilterUseCase {
	return &FilterUseCase{
		placeRepo: placeRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		boundsTTL: boundsTTL,
	}
}

// FindByMapBounds returns approved places inside the viewport, cache
// first. A rectangle whose west edge is east of its east edge wraps the
// antimeridian and is split, not rejected.
func (uc *FilterUseCase) FindByMapBounds(ctx context.Context, req dto.MapBoundsRequest) ([]*domain.PlaceByBounds, error) {
	bounds := req.ToDomain()
	if !bounds.Valid() {
		return nil, apperrors.ErrInvalidFilter.WithDetails(map[string]interface{}{
			"reason": "malformed map bounds",
		})
	}

	if cached, err := uc.cacheRepo.GetBounds(ctx, bounds); err == nil && cached != nil {
		return cached, nil
	}

	places, err := uc.placeRepo.FindByMapBounds(ctx, bounds)
	if err != nil {
		uc.logger.Error("Failed to find places by map bounds", zap.Error(err))
		return nil, err
	}

	if err := uc.cacheRepo.SetBounds(ctx, bounds, places, uc.boundsTTL); err != nil {
		uc.logger.Warn("Failed to cache bounds result", zap.Error(err))
	}
	return places, nil
}

// FilterList evaluates the predicate set without paging, for map
// rendering. Equivalent to one page large enough to hold every match.
func (uc *FilterUseCase) FilterList(ctx context.Context, req dto.FilterPlaceRequest) ([]*domain.PlaceByBounds, error) {
	filter, err := uc.plan(req)
	if err != nil {
		return nil, err
	}

	places, _, err := uc.placeRepo.FindByFilter(ctx, filter, nil)
	if err != nil {
		uc.logger.Error("Failed to filter places", zap.Error(err))
		return nil, err
	}
	return places, nil
}

// FilterPage evaluates the same predicate set with paging, for the
// admin listing.
func (uc *FilterUseCase) FilterPage(ctx context.Context, req dto.FilterPlaceRequest, page dto.PageQuery) (*dto.PlaceByBoundsPage, error) {
	filter, err := uc.plan(req)
	if err != nil {
		return nil, err
	}

	pageReq := page.ToDomain().Normalize()
	places, total, err := uc.placeRepo.FindByFilter(ctx, filter, &pageReq)
	if err != nil {
		uc.logger.Error("Failed to filter places", zap.Error(err))
		return nil, err
	}

	return &dto.PlaceByBoundsPage{
		Places:        places,
		Page:          pageReq.Page,
		Size:          pageReq.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, pageReq.Size),
	}, nil
}

// FindByStatus serves the moderation listing for one status.
func (uc *FilterUseCase) FindByStatus(ctx context.Context, status domain.PlaceStatus, page dto.PageQuery) (*dto.AdminPlacePage, error) {
	pageReq := page.ToDomain().Normalize()
	places, total, err := uc.placeRepo.FindByStatus(ctx, status, pageReq)
	if err != nil {
		uc.logger.Error("Failed to find places by status",
			zap.String("status", string(status)),
			zap.Error(err))
		return nil, err
	}

	return &dto.AdminPlacePage{
		Places:        places,
		Page:          pageReq.Page,
		Size:          pageReq.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, pageReq.Size),
	}, nil
}

// plan validates the filter description and resolves defaults: an
// absent status means APPROVED.
func (uc *FilterUseCase) plan(req dto.FilterPlaceRequest) (domain.FilterPlace, error) {
	filter := domain.FilterPlace{
		Text:       req.Text,
		CategoryID: req.CategoryID,
	}

	status := domain.StatusApproved
	if req.Status != nil {
		parsed, ok := domain.ParsePlaceStatus(*req.Status)
		if !ok {
			return domain.FilterPlace{}, apperrors.ErrInvalidStatus.WithDetails(map[string]interface{}{
				"status": *req.Status,
			})
		}
		status = parsed
	}
	filter.Status = &status

	if req.Bounds != nil {
		bounds := req.Bounds.ToDomain()
		if !bounds.Valid() {
			return domain.FilterPlace{}, apperrors.ErrInvalidFilter.WithDetails(map[string]interface{}{
				"reason": "malformed map bounds",
			})
		}
		filter.Bounds = &bounds
	}

	if req.Distance != nil {
		if req.Distance.RadiusMeters <= 0 || !utils.ValidateCoordinates(req.Distance.Lat, req.Distance.Lng) {
			return domain.FilterPlace{}, apperrors.ErrInvalidFilter.WithDetails(map[string]interface{}{
				"reason": "malformed distance predicate",
			})
		}
		filter.Distance = &domain.DistanceFilter{
			Lat:          req.Distance.Lat,
			Lng:          req.Distance.Lng,
			RadiusMeters: req.Distance.RadiusMeters,
		}
	}

	return filter, nil
}

func totalPages(total int64, size int) int {
	if size < 1 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
