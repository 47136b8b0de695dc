package repository

import (
	"context"

	"journal/internal/domain/entity"
)

// TagRepository defines tag persistence. Tag names are unique regardless of case.
type TagRepository interface {
	// Create persists a new tag and fills in its ID.
	// Returns ErrTagAlreadyExists when the name collides case-insensitively.
	Create(ctx context.Context, tag *entity.Tag) error

	// FindByID retrieves a tag by ID. Returns ErrTagNotFound if absent.
	FindByID(ctx context.Context, id uint) (*entity.Tag, error)

	// FindByName retrieves a tag by trimmed, case-folded name. Returns ErrTagNotFound if absent.
	FindByName(ctx context.Context, name string) (*entity.Tag, error)

	// FindAll returns predefined tags first, then custom tags, each alphabetical.
	FindAll(ctx context.Context) ([]*entity.Tag, error)

	// FindPredefined returns the predefined tags alphabetically.
	FindPredefined(ctx context.Context) ([]*entity.Tag, error)

	// Delete removes a tag. Returns ErrTagNotFound if absent and
	// ErrReferenceInUse while any entry still carries the tag.
	Delete(ctx context.Context, id uint) error
}
