package usecase

import (
	"context"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string `name:"username" validate:"notblank,maxrunes=100"`
	Password string `name:"password" validate:"notblank"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string `name:"username" validate:"notblank"`
	Password string `name:"password" validate:"notblank"`
	// Remember persists the session so Restore can resume it later.
	Remember bool
}

// SessionUsecase manages accounts and the explicit session handle.
type SessionUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input LoginInput) (*entity.Session, error)
	Logout(ctx context.Context, session *entity.Session) error
	Restore(ctx context.Context) (*entity.Session, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) (bool, error)
}
