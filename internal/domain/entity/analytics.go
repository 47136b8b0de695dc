package entity

import "time"

// MoodDistribution is the share of entries whose primary mood falls in a category.
type MoodDistribution struct {
	Category   MoodCategory
	Count      int
	Percentage float64
}

// TagUsage is the share of all (entry, tag) associations that use a tag.
type TagUsage struct {
	TagName    string
	Count      int
	Percentage float64
}

// WordCountTrend summarises the words written on one calendar day.
type WordCountTrend struct {
	Date         time.Time
	WordCount    int
	AverageWords float64
}

// StreakInfo describes journaling consistency up to today.
type StreakInfo struct {
	CurrentStreak int
	LongestStreak int
	MissedDays    []time.Time
}

// DashboardAnalytics aggregates every analytics view for a user.
// FirstEntryDate and LastEntryDate always span the whole history, even when the
// other figures are restricted to a date window.
type DashboardAnalytics struct {
	MoodDistributionByCategory []MoodDistribution
	MostFrequentMood           string
	StreakInfo                 StreakInfo
	MostUsedTags               []TagUsage
	TagBreakdown               []TagUsage
	WordCountTrends            []WordCountTrend
	TotalEntries               int
	FirstEntryDate             *time.Time
	LastEntryDate              *time.Time
}
