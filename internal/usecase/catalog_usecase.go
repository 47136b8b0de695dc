package usecase

import (
	"context"

	"journal/internal/domain/entity"
)

// CatalogUsecase exposes the mood catalog and manages tags.
type CatalogUsecase interface {
	ListMoods(ctx context.Context) ([]*entity.Mood, error)
	GetMood(ctx context.Context, id uint) (*entity.Mood, error)
	// ListMoodsByCategory returns every mood when category is blank.
	ListMoodsByCategory(ctx context.Context, category string) ([]*entity.Mood, error)

	GetTag(ctx context.Context, id uint) (*entity.Tag, error)
	FindTagByName(ctx context.Context, name string) (*entity.Tag, error)
	ListPredefinedTags(ctx context.Context) ([]*entity.Tag, error)
	ListTags(ctx context.Context) ([]*entity.Tag, error)
	// CreateOrGetTag returns the existing tag matching name case-insensitively,
	// or creates a custom tag with the trimmed name.
	CreateOrGetTag(ctx context.Context, name string) (*entity.Tag, error)
	// DeleteTag removes a custom tag that no entry references.
	DeleteTag(ctx context.Context, id uint) error
}
