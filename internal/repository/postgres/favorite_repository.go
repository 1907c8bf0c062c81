package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain"
	"github.com/greencity/place-service/internal/domain/repository"
	apperrors "github.com/greencity/place-service/internal/pkg/errors"
)

type favoriteRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewFavoriteRepository(db *DB) repository.FavoriteRepository {
	return &favoriteRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *favoriteRepository) Save(ctx context.Context, favorite *domain.FavoritePlace) (*domain.FavoritePlace, error) {
	// Bookmarking the same place twice renames the existing bookmark.
	query := `
		INSERT INTO favorite_places (name, place_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (place_id, user_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, favorite.Name, favorite.PlaceID, favorite.UserID).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err, "favorite_places_place_id_fkey") {
			return nil, apperrors.ErrPlaceNotFound
		}
		if isForeignKeyViolation(err, "favorite_places_user_id_fkey") {
			return nil, apperrors.ErrUnknownUser
		}
		r.logger.Error("Failed to save favorite place",
			zap.Int64("place_id", favorite.PlaceID),
			zap.Int64("user_id", favorite.UserID),
			zap.Error(err))
		return nil, storeError(ctx, err)
	}

	saved := *favorite
	saved.ID = id
	return &saved, nil
}

func (r *favoriteRepository) GetByID(ctx context.Context, id int64) (*domain.FavoritePlace, error) {
	var favorite domain.FavoritePlace
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, place_id, user_id FROM favorite_places WHERE id = $1`, id,
	).Scan(&favorite.ID, &favorite.Name, &favorite.PlaceID, &favorite.UserID)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrFavoritePlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get favorite place", zap.Int64("id", id), zap.Error(err))
		return nil, storeError(ctx, err)
	}
	return &favorite, nil
}

func (r *favoriteRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.FavoritePlace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, place_id, user_id FROM favorite_places WHERE user_id = $1 ORDER BY name`,
		userID,
	)
	if err != nil {
		r.logger.Error("Failed to get favorite places", zap.Int64("user_id", userID), zap.Error(err))
		return nil, storeError(ctx, err)
	}
	defer rows.Close()

	var favorites []*domain.FavoritePlace
	for rows.Next() {
		var f domain.FavoritePlace
		if err := rows.Scan(&f.ID, &f.Name, &f.PlaceID, &f.UserID); err != nil {
			continue
		}
		favorites = append(favorites, &f)
	}
	return favorites, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorite_places WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		r.logger.Error("Failed to delete favorite place", zap.Int64("id", id), zap.Error(err))
		return storeError(ctx, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError(ctx, err)
	}
	if affected == 0 {
		return apperrors.ErrFavoritePlaceNotFound
	}
	return nil
}
