package analytics

import (
	"time"

	"journal/internal/domain/entity"
)

// Dashboard composes every analytics view.
//
// window holds the entries inside the requested date window and drives the mood,
// tag and word-count figures as well as TotalEntries. history holds the distinct
// entry dates of the user's whole history and drives the streak and the
// first/last entry dates, which therefore ignore the window.
func Dashboard(window []*entity.Entry, history []time.Time, today time.Time) entity.DashboardAnalytics {
	dashboard := entity.DashboardAnalytics{
		MoodDistributionByCategory: MoodDistribution(window),
		MostUsedTags:               TagUsage(window, DefaultTopTags),
		TagBreakdown:               TagUsage(window, BreakdownTags),
		WordCountTrends:            WordCountTrend(window),
		StreakInfo:                 Streak(history, today),
		TotalEntries:               len(window),
	}

	if mood, ok := MostFrequentMood(window); ok {
		dashboard.MostFrequentMood = mood
	}

	for _, d := range history {
		day := entity.NormalizeDate(d)
		if dashboard.FirstEntryDate == nil || day.Before(*dashboard.FirstEntryDate) {
			first := day
			dashboard.FirstEntryDate = &first
		}
		if dashboard.LastEntryDate == nil || day.After(*dashboard.LastEntryDate) {
			last := day
			dashboard.LastEntryDate = &last
		}
	}

	return dashboard
}
