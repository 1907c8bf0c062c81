package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/domain/repository"
	"github.com/greencity/place-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPlaceRepositoryForTest creates a place repository with test database and logger
func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewPlaceRepository(pgDB)
}

// NewCategoryRepositoryForTest creates a category repository with test database and logger
func NewCategoryRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CategoryRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewCategoryRepository(pgDB)
}

// NewUserRepositoryForTest creates a user repository with test database and logger
func NewUserRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.UserRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewUserRepository(pgDB)
}

// NewFavoriteRepositoryForTest creates a favorite repository with test database and logger
func NewFavoriteRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.FavoriteRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewFavoriteRepository(pgDB)
}
