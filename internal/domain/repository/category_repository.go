package repository

import (
	"context"

	"github.com/greencity/place-service/internal/domain"
)

// CategoryRepository resolves place categories.
type CategoryRepository interface {
	// GetByID returns the category or ErrUnknownCategory.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// GetAll returns every category ordered by name.
	GetAll(ctx context.Context) ([]*domain.Category, error)
}
