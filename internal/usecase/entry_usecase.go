// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// EntryInput carries the caller-supplied fields of an entry.
// Date is only read on create; an entry's date never changes afterwards.
type EntryInput struct {
	Date             time.Time
	Title            string `name:"title" validate:"notblank"`
	Content          string `name:"content"`
	PrimaryMoodID    uint   `name:"primary mood" validate:"required"`
	SecondaryMoodIDs []uint `name:"secondary moods" validate:"max=2,unique,dive,gt=0"`
	TagIDs           []uint `name:"tags" validate:"unique,dive,gt=0"`
}

// EntryFilterInput composes the optional criteria of Filter.
// Nil bounds and empty slices are not applied.
type EntryFilterInput struct {
	Start   *time.Time
	End     *time.Time
	MoodIDs []uint
	TagIDs  []uint
	Term    string
}

// --- Output DTOs ---

// EntryPage is one page of a user's entries, newest first.
type EntryPage struct {
	Entries  []*entity.Entry
	Page     int
	PageSize int
	Total    int64
}

// EntryUsecase defines the journal entry lifecycle.
type EntryUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input EntryInput) (*entity.Entry, error)
	Update(ctx context.Context, entryID uuid.UUID, input EntryInput) (*entity.Entry, error)
	Delete(ctx context.Context, entryID uuid.UUID) (bool, error)
	Get(ctx context.Context, entryID uuid.UUID) (*entity.Entry, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.Entry, error)
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*EntryPage, error)
	Search(ctx context.Context, userID uuid.UUID, term string) ([]*entity.Entry, error)
	Filter(ctx context.Context, userID uuid.UUID, input EntryFilterInput) ([]*entity.Entry, error)
	ExistsForDate(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
