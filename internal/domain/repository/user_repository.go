package repository

import (
	"context"

	"github.com/greencity/place-service/internal/domain"
)

// UserRepository resolves principals to user records.
type UserRepository interface {
	// GetByEmail returns the user identified by the principal name or
	// ErrUnknownUser.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID returns the user or ErrUnknownUser.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
