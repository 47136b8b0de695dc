package analytics

import (
	"testing"
	"time"

	"journal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_FirstAndLastIgnoreWindow(t *testing.T) {
	today := day(2024, 6, 10)
	window := []*entity.Entry{
		newEntry(day(2024, 6, 9), happy, "a b", work),
		newEntry(day(2024, 6, 10), sad, "c", work, family),
	}
	history := []time.Time{day(2024, 1, 1), day(2024, 6, 9), day(2024, 6, 10)}

	dashboard := Dashboard(window, history, today)

	assert.Equal(t, 2, dashboard.TotalEntries)
	require.NotNil(t, dashboard.FirstEntryDate)
	require.NotNil(t, dashboard.LastEntryDate)
	assert.Equal(t, day(2024, 1, 1), *dashboard.FirstEntryDate)
	assert.Equal(t, day(2024, 6, 10), *dashboard.LastEntryDate)

	assert.Equal(t, "Happy", dashboard.MostFrequentMood)
	assert.Equal(t, 2, dashboard.StreakInfo.CurrentStreak)
	assert.Len(t, dashboard.MoodDistributionByCategory, 2)
	assert.Len(t, dashboard.MostUsedTags, 2)
	assert.Len(t, dashboard.TagBreakdown, 2)
	assert.Len(t, dashboard.WordCountTrends, 2)
}

func TestDashboard_Empty(t *testing.T) {
	dashboard := Dashboard(nil, nil, day(2024, 6, 10))

	assert.Equal(t, 0, dashboard.TotalEntries)
	assert.Empty(t, dashboard.MostFrequentMood)
	assert.Nil(t, dashboard.FirstEntryDate)
	assert.Nil(t, dashboard.LastEntryDate)
	assert.Empty(t, dashboard.MoodDistributionByCategory)
	assert.Empty(t, dashboard.MostUsedTags)
	assert.Empty(t, dashboard.WordCountTrends)
	assert.Equal(t, 0, dashboard.StreakInfo.LongestStreak)
}
