// Package analytics derives aggregate views from a snapshot of journal entries.
// Every function is pure: it reads the entries it is given and nothing else,
// and returns empty results for an empty snapshot.
package analytics

import (
	"cmp"
	"slices"
	"time"

	"journal/internal/domain/entity"
)

const (
	// DefaultTopTags is the number of tags returned when no count is requested.
	DefaultTopTags = 10
	// BreakdownTags is the number of tags in the dashboard tag breakdown.
	BreakdownTags = 20
)

// MoodDistribution groups entries by the category of their primary mood.
// Percentages are relative to the number of entries in the snapshot and the
// result is ordered by count descending, ties by category name.
func MoodDistribution(entries []*entity.Entry) []entity.MoodDistribution {
	total := len(entries)
	if total == 0 {
		return []entity.MoodDistribution{}
	}

	counts := make(map[entity.MoodCategory]int)
	for _, e := range entries {
		if e.PrimaryMood.Category == "" {
			continue
		}
		counts[e.PrimaryMood.Category]++
	}

	out := make([]entity.MoodDistribution, 0, len(counts))
	for category, count := range counts {
		out = append(out, entity.MoodDistribution{
			Category:   category,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}

	slices.SortStableFunc(out, func(a, b entity.MoodDistribution) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return out
}

// MostFrequentMood returns the primary mood name used most often.
// Equal counts are resolved alphabetically so the answer never depends on
// iteration order. The boolean is false for an empty snapshot.
func MostFrequentMood(entries []*entity.Entry) (string, bool) {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.PrimaryMood.Name == "" {
			continue
		}
		counts[e.PrimaryMood.Name]++
	}

	best, bestCount := "", 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && name < best) {
			best, bestCount = name, count
		}
	}

	return best, bestCount > 0
}

// TagUsage ranks tags over the flattened (entry, tag) associations of the
// snapshot: an entry with three tags contributes three usages. Percentages are
// relative to the total number of usages. At most count tags are returned; a
// count below one means DefaultTopTags.
func TagUsage(entries []*entity.Entry, count int) []entity.TagUsage {
	if count < 1 {
		count = DefaultTopTags
	}

	total := 0
	counts := make(map[string]int)
	for _, e := range entries {
		for _, t := range e.Tags {
			counts[t.Name]++
			total++
		}
	}
	if total == 0 {
		return []entity.TagUsage{}
	}

	out := make([]entity.TagUsage, 0, len(counts))
	for name, c := range counts {
		out = append(out, entity.TagUsage{
			TagName:    name,
			Count:      c,
			Percentage: percentage(c, total),
		})
	}

	slices.SortStableFunc(out, func(a, b entity.TagUsage) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.TagName, b.TagName)
	})

	if len(out) > count {
		out = out[:count]
	}

	return out
}

// WordCountTrend groups entries by calendar day, oldest first. For each day it
// reports the total words written and the mean words per entry of that day.
func WordCountTrend(entries []*entity.Entry) []entity.WordCountTrend {
	type bucket struct {
		words   int
		entries int
	}

	buckets := make(map[time.Time]*bucket)
	for _, e := range entries {
		day := entity.NormalizeDate(e.EntryDate)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.words += entity.WordCount(e.Content)
		b.entries++
	}

	out := make([]entity.WordCountTrend, 0, len(buckets))
	for day, b := range buckets {
		out = append(out, entity.WordCountTrend{
			Date:         day,
			WordCount:    b.words,
			AverageWords: float64(b.words) / float64(b.entries),
		})
	}

	slices.SortFunc(out, func(a, b entity.WordCountTrend) int {
		return a.Date.Compare(b.Date)
	})

	return out
}

func percentage(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
