package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
	"github.com/greencity/place-service/internal/usecase"
	"github.com/greencity/place-service/internal/usecase/dto"
)

func newFavoriteUseCase(
	favoriteRepo *MockFavoriteRepository,
	placeRepo *MockPlaceRepository,
	userRepo *MockUserRepository,
) *usecase.FavoriteUseCase {
	return usecase.NewFavoriteUseCase(favoriteRepo, placeRepo, userRepo, zap.NewNop())
}

func TestFavoriteUseCase_Save(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 7, Email: "user@example.com"}

	t.Run("success", func(t *testing.T) {
		favoriteRepo := &MockFavoriteRepository{}
		placeRepo := &MockPlaceRepository{}
		userRepo := &MockUserRepository{}

		userRepo.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
		placeRepo.On("GetByID", ctx, int64(42)).Return(&domain.Place{
			ID: 42, Status: domain.StatusApproved,
		}, nil)
		favoriteRepo.On("Save", ctx, mock.MatchedBy(func(f *domain.FavoritePlace) bool {
			return f.PlaceID == 42 && f.UserID == 7 && f.Name == "My cafe"
		})).Return(&domain.FavoritePlace{ID: 1, Name: "My cafe", PlaceID: 42, UserID: 7}, nil)

		uc := newFavoriteUseCase(favoriteRepo, placeRepo, userRepo)
		resp, err := uc.Save(ctx, dto.FavoritePlaceRequest{Name: "My cafe", PlaceID: 42}, "user@example.com")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		favoriteRepo.AssertExpectations(t)
	})

	t.Run("deleted place cannot be bookmarked", func(t *testing.T) {
		favoriteRepo := &MockFavoriteRepository{}
		placeRepo := &MockPlaceRepository{}
		userRepo := &MockUserRepository{}

		userRepo.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
		placeRepo.On("GetByID", ctx, int64(42)).Return(&domain.Place{
			ID: 42, Status: domain.StatusDeleted,
		}, nil)

		uc := newFavoriteUseCase(favoriteRepo, placeRepo, userRepo)
		_, err := uc.Save(ctx, dto.FavoritePlaceRequest{Name: "My cafe", PlaceID: 42}, "user@example.com")

		assert.ErrorIs(t, err, apperrors.ErrPlaceDeleted)
		favoriteRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing place", func(t *testing.T) {
		favoriteRepo := &MockFavoriteRepository{}
		placeRepo := &MockPlaceRepository{}
		userRepo := &MockUserRepository{}

		userRepo.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
		placeRepo.On("GetByID", ctx, int64(42)).Return(nil, apperrors.ErrPlaceNotFound)

		uc := newFavoriteUseCase(favoriteRepo, placeRepo, userRepo)
		_, err := uc.Save(ctx, dto.FavoritePlaceRequest{Name: "My cafe", PlaceID: 42}, "user@example.com")

		assert.ErrorIs(t, err, apperrors.ErrPlaceNotFound)
	})
}

func TestFavoriteUseCase_GetInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("custom name overrides the place name", func(t *testing.T) {
		favoriteRepo := &MockFavoriteRepository{}
		placeRepo := &MockPlaceRepository{}

		favoriteRepo.On("GetByID", ctx, int64(1)).Return(&domain.FavoritePlace{
			ID: 1, Name: "My cafe", PlaceID: 42, UserID: 7,
		}, nil)
		placeRepo.On("GetInfoByID", ctx, int64(42)).Return(&domain.PlaceInfo{
			ID: 42, Name: "Vegan Cafe",
		}, nil)

		uc := newFavoriteUseCase(favoriteRepo, placeRepo, &MockUserRepository{})
		info, err := uc.GetInfo(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, "My cafe", info.Name)
	})

	t.Run("missing favorite", func(t *testing.T) {
		favoriteRepo := &MockFavoriteRepository{}

		favoriteRepo.On("GetByID", ctx, int64(1)).Return(nil, apperrors.ErrFavoritePlaceNotFound)

		uc := newFavoriteUseCase(favoriteRepo, &MockPlaceRepository{}, &MockUserRepository{})
		_, err := uc.GetInfo(ctx, 1)

		assert.ErrorIs(t, err, apperrors.ErrFavoritePlaceNotFound)
	})
}

func TestFavoriteUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 7, Email: "user@example.com"}

	t.Run("deletes only the principal's bookmark", func(t *testing.T) {
		favoriteRepo := &MockFavoriteRepository{}
		userRepo := &MockUserRepository{}

		userRepo.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
		favoriteRepo.On("Delete", ctx, int64(1), int64(7)).Return(nil)

		uc := newFavoriteUseCase(favoriteRepo, &MockPlaceRepository{}, userRepo)
		assert.NoError(t, uc.Delete(ctx, 1, "user@example.com"))
		favoriteRepo.AssertExpectations(t)
	})

	t.Run("someone else's bookmark reads as missing", func(t *testing.T) {
		favoriteRepo := &MockFavoriteRepository{}
		userRepo := &MockUserRepository{}

		userRepo.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
		favoriteRepo.On("Delete", ctx, int64(9), int64(7)).Return(apperrors.ErrFavoritePlaceNotFound)

		uc := newFavoriteUseCase(favoriteRepo, &MockPlaceRepository{}, userRepo)
		err := uc.Delete(ctx, 9, "user@example.com")

		assert.ErrorIs(t, err, apperrors.ErrFavoritePlaceNotFound)
	})
}
