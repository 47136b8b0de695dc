package repository

import (
	"context"

	"journal/internal/domain/entity"
)

// MoodRepository provides read access to the seeded mood catalog.
type MoodRepository interface {
	// FindAll returns every mood ordered by category then name.
	FindAll(ctx context.Context) ([]*entity.Mood, error)

	// FindByCategory returns the moods of one category ordered by name.
	FindByCategory(ctx context.Context, category entity.MoodCategory) ([]*entity.Mood, error)

	// FindByID retrieves a mood by ID. Returns ErrMoodNotFound if absent.
	FindByID(ctx context.Context, id uint) (*entity.Mood, error)

	// Count returns the number of moods in the catalog.
	Count(ctx context.Context) (int64, error)
}
