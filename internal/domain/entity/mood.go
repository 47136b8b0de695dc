package entity

import "slices"

// MoodCategory groups moods for distribution analytics.
type MoodCategory string

const (
	// MoodCategoryPositive groups pleasant moods.
	MoodCategoryPositive MoodCategory = "Positive"
	// MoodCategoryNeutral groups neither pleasant nor unpleasant moods.
	MoodCategoryNeutral MoodCategory = "Neutral"
	// MoodCategoryNegative groups unpleasant moods.
	MoodCategoryNegative MoodCategory = "Negative"
)

// MoodCategories lists every valid category in display order.
var MoodCategories = []MoodCategory{
	MoodCategoryPositive,
	MoodCategoryNeutral,
	MoodCategoryNegative,
}

// String returns the string representation of the MoodCategory.
func (c MoodCategory) String() string {
	return string(c)
}

// IsValid checks if the MoodCategory is a valid value.
func (c MoodCategory) IsValid() bool {
	return slices.Contains(MoodCategories, c)
}

// Mood is immutable reference data. Entries reference moods by ID and never own them.
type Mood struct {
	ID       uint
	Name     string
	Category MoodCategory
	Glyph    string // Optional emoji shown next to the name.
}
