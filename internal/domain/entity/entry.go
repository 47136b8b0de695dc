package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSecondaryMoods is the number of secondary moods an entry may carry besides its primary mood.
const MaxSecondaryMoods = 2

// Entry is a single day's journal record.
//
// The ID slices are the source of truth for associations. PrimaryMood,
// SecondaryMoods and Tags are value copies filled in by the store when an entry
// is read back, so callers can render an entry without further lookups.
type Entry struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	EntryDate        time.Time // Calendar day, always UTC midnight.
	Title            string
	Content          string
	PrimaryMoodID    uint
	SecondaryMoodIDs []uint
	TagIDs           []uint
	CreatedAt        time.Time
	UpdatedAt        time.Time

	PrimaryMood    Mood
	SecondaryMoods []Mood
	Tags           []Tag
}

// WordCount returns the number of words in the entry's content.
func (e *Entry) WordCount() int {
	return WordCount(e.Content)
}

// WordCount splits content on runs of spaces, tabs, carriage returns and line
// feeds and counts the non-empty tokens.
func WordCount(content string) int {
	return len(strings.FieldsFunc(content, isWordSeparator))
}

func isWordSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// NormalizeDate truncates t to its calendar day and expresses the result as
// midnight UTC. The calendar day is read in t's own location, so a local
// 2024-03-01 23:30 still maps to 2024-03-01.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an optional inclusive window of calendar days.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Normalized returns a copy of the range with both bounds truncated to their calendar day.
func (r DateRange) Normalized() DateRange {
	var out DateRange
	if r.Start != nil {
		start := NormalizeDate(*r.Start)
		out.Start = &start
	}
	if r.End != nil {
		end := NormalizeDate(*r.End)
		out.End = &end
	}

	return out
}

// Contains reports whether the calendar day of t lies inside the range.
func (r DateRange) Contains(t time.Time) bool {
	day := NormalizeDate(t)
	n := r.Normalized()
	if n.Start != nil && day.Before(*n.Start) {
		return false
	}
	if n.End != nil && day.After(*n.End) {
		return false
	}

	return true
}
