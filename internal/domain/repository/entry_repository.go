// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	// DefaultListLimit is used when a listing is requested with a limit below one.
	DefaultListLimit = 10
)

// EntryFilter composes the optional predicates of an entry query.
// Zero-valued fields are not applied.
type EntryFilter struct {
	// DateRange bounds are inclusive and normalized to calendar days.
	DateRange entity.DateRange
	// MoodIDs matches entries whose primary mood or any secondary mood is in the set.
	MoodIDs []uint
	// TagIDs matches entries carrying any tag in the set.
	TagIDs []uint
	// Term matches title or content by case-insensitive substring.
	Term string
	// Limit caps the number of rows returned; zero means no cap.
	Limit int
}

// EntryRepository defines the interface for journal entry persistence.
// Every returned entry is hydrated with its primary mood, secondary moods and tags.
type EntryRepository interface {
	// Put inserts the entry, or fully replaces its stored fields when an entry
	// with the same ID exists. Both association sets are deleted and re-inserted
	// in the same atomic unit; there is no incremental diff.
	// A zero ID is replaced by a newly generated one.
	Put(ctx context.Context, entry *entity.Entry, secondaryMoodIDs, tagIDs []uint) error

	// FindByID retrieves an entry by ID. Returns ErrEntryNotFound if absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)

	// FindByUserAndDate retrieves the entry of a user for the calendar day of date.
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.Entry, error)

	// Delete removes an entry and its association rows.
	// Returns ErrEntryNotFound when nothing was removed.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser returns entries ordered by date descending. Negative offsets are
	// treated as zero and limits below one as DefaultListLimit.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.Entry, error)

	// QueryByUser returns entries matching filter ordered by date descending.
	QueryByUser(ctx context.Context, userID uuid.UUID, filter EntryFilter) ([]*entity.Entry, error)

	// ExistsForDate reports whether the user has an entry for the calendar day of date.
	ExistsForDate(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error)

	// CountByUser returns the total number of entries of a user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// ListEntryDates returns the distinct entry dates of a user in ascending order.
	ListEntryDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}
