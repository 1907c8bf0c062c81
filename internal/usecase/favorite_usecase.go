package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/domain/repository"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
	"github.com/greencity/place-service/internal/usecase/dto"
)

// FavoriteUseCase manages per-user place bookmarks.
type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	placeRepo    repository.PlaceRepository
	userRepo     repository.UserRepository
	logger       *zap.Logger
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	placeRepo repository.PlaceRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		placeRepo:    placeRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Save bookmarks a place for the principal. Deleted places cannot be
// bookmarked.
func (uc *FavoriteUseCase) Save(ctx context.Context, req dto.FavoritePlaceRequest, principal string) (*dto.FavoritePlaceResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, principal)
	if err != nil {
		return nil, err
	}

	place, err := uc.placeRepo.GetByID(ctx, req.PlaceID)
	if err != nil {
		return nil, err
	}
	if place.Status == domain.StatusDeleted {
		return nil, apperrors.ErrPlaceDeleted
	}

	saved, err := uc.favoriteRepo.Save(ctx, &domain.FavoritePlace{
		Name:    req.Name,
		PlaceID: req.PlaceID,
		UserID:  user.ID,
	})
	if err != nil {
		uc.logger.Error("Failed to save favorite place",
			zap.Int64("place_id", req.PlaceID),
			zap.String("user", principal),
			zap.Error(err))
		return nil, err
	}
	return dto.NewFavoritePlaceResponse(saved), nil
}

// GetInfo serves place info under the favorite's custom name.
func (uc *FavoriteUseCase) GetInfo(ctx context.Context, favoriteID int64) (*domain.PlaceInfo, error) {
	favorite, err := uc.favoriteRepo.GetByID(ctx, favoriteID)
	if err != nil {
		return nil, err
	}

	info, err := uc.placeRepo.GetInfoByID(ctx, favorite.PlaceID)
	if err != nil {
		return nil, err
	}

	info.Name = favorite.Name
	return info, nil
}

// List returns the principal's bookmarks.
func (uc *FavoriteUseCase) List(ctx context.Context, principal string) ([]*dto.FavoritePlaceResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, principal)
	if err != nil {
		return nil, err
	}

	favorites, err := uc.favoriteRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewFavoritePlaceResponses(favorites), nil
}

// Delete removes one of the principal's bookmarks.
func (uc *FavoriteUseCase) Delete(ctx context.Context, favoriteID int64, principal string) error {
	user, err := uc.userRepo.GetByEmail(ctx, principal)
	if err != nil {
		return err
	}
	return uc.favoriteRepo.Delete(ctx, favoriteID, user.ID)
}
