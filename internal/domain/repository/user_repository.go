package repository

import (
	"context"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines user account persistence.
type UserRepository interface {
	// Create persists a new user. Returns ErrUserAlreadyExists on a duplicate username.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by exact username. Returns ErrUserNotFound if absent.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// UpdatePasswordHash replaces the stored credential hash.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}
