package analytics

import (
	"time"

	"journal/internal/domain/entity"
)

// Streak computes journaling streaks from the distinct entry dates of a user.
//
// The current streak counts consecutive days with an entry walking back from
// today; it is zero when today has no entry. The longest streak and the missed
// days come from a walk over every day between the earliest entry and today
// inclusive. Today is never reported as missed, since the day is not over yet.
// Dates after today do not contribute to the longest streak.
func Streak(dates []time.Time, today time.Time) entity.StreakInfo {
	info := entity.StreakInfo{MissedDays: []time.Time{}}
	if len(dates) == 0 {
		return info
	}

	today = entity.NormalizeDate(today)
	days := make(map[time.Time]struct{}, len(dates))
	earliest := entity.NormalizeDate(dates[0])
	for _, d := range dates {
		day := entity.NormalizeDate(d)
		days[day] = struct{}{}
		if day.Before(earliest) {
			earliest = day
		}
	}

	for day := today; ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			break
		}
		info.CurrentStreak++
	}

	run := 0
	for day := earliest; !day.After(today); day = day.AddDate(0, 0, 1) {
		if _, ok := days[day]; ok {
			run++
			info.LongestStreak = max(info.LongestStreak, run)

			continue
		}

		if day.Before(today) {
			info.MissedDays = append(info.MissedDays, day)
		}
		run = 0
	}

	return info
}
