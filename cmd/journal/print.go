package main

import (
	"fmt"
	"strings"
	"time"

	"journal/internal/domain/entity"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
)

func categoryColor(category entity.MoodCategory) *color.Color {
	switch category {
	case entity.MoodCategoryPositive:
		return color.New(color.FgGreen)
	case entity.MoodCategoryNegative:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func moodLabel(m entity.Mood) string {
	return categoryColor(m.Category).Sprintf("%s %s", m.Glyph, m.Name)
}

func tagLabels(tags []entity.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, "#"+t.Name)
	}

	return strings.Join(names, " ")
}

func printEntries(entries []*entity.Entry) {
	if len(entries) == 0 {
		_, _ = faint.Fprintln(color.Output, "No entries.")

		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Title"), bold.Sprint("Mood"), bold.Sprint("Tags"), bold.Sprint("Words"))
	for _, e := range entries {
		tbl.AddRow(e.EntryDate.Format(time.DateOnly), e.Title, moodLabel(e.PrimaryMood), tagLabels(e.Tags), e.WordCount())
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printEntry(e *entity.Entry) {
	_, _ = bold.Fprintf(color.Output, "%s  %s\n", e.EntryDate.Format("Monday, January 2, 2006"), e.Title)
	_, _ = faint.Fprintf(color.Output, "%s\n\n", e.ID)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Mood:", moodLabel(e.PrimaryMood))
	if len(e.SecondaryMoods) > 0 {
		labels := make([]string, 0, len(e.SecondaryMoods))
		for _, m := range e.SecondaryMoods {
			labels = append(labels, moodLabel(m))
		}
		tbl.AddRow("Also:", strings.Join(labels, ", "))
	}
	if len(e.Tags) > 0 {
		tbl.AddRow("Tags:", tagLabels(e.Tags))
	}
	tbl.AddRow("Words:", e.WordCount())
	tbl.AddRow("Updated:", e.UpdatedAt.Local().Format(time.DateTime))
	_, _ = fmt.Fprintln(color.Output, tbl)

	if strings.TrimSpace(e.Content) != "" {
		_, _ = fmt.Fprintf(color.Output, "\n%s\n", e.Content)
	}
}

func printMoods(moods []*entity.Mood) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Mood"), bold.Sprint("Category"))
	for _, m := range moods {
		tbl.AddRow(m.ID, moodLabel(*m), categoryColor(m.Category).Sprint(m.Category))
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printTags(tags []*entity.Tag) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Tag"), bold.Sprint("Kind"))
	for _, t := range tags {
		kind := "custom"
		if t.IsPredefined {
			kind = faint.Sprint("predefined")
		}
		tbl.AddRow(t.ID, t.Name, kind)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printDashboard(d *entity.DashboardAnalytics) {
	_, _ = bold.Fprintln(color.Output, "Overview")
	overview := uitable.New()
	overview.Separator = "  "
	overview.AddRow("Entries:", d.TotalEntries)
	if d.FirstEntryDate != nil {
		overview.AddRow("Journaling since:", d.FirstEntryDate.Format(time.DateOnly))
	}
	if d.LastEntryDate != nil {
		overview.AddRow("Last entry:", d.LastEntryDate.Format(time.DateOnly))
	}
	overview.AddRow("Current streak:", pluralDays(d.StreakInfo.CurrentStreak))
	overview.AddRow("Longest streak:", pluralDays(d.StreakInfo.LongestStreak))
	overview.AddRow("Missed days:", len(d.StreakInfo.MissedDays))
	if d.MostFrequentMood != "" {
		overview.AddRow("Most frequent mood:", d.MostFrequentMood)
	}
	_, _ = fmt.Fprintln(color.Output, overview)

	if len(d.MoodDistributionByCategory) > 0 {
		_, _ = bold.Fprintln(color.Output, "\nMoods")
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, m := range d.MoodDistributionByCategory {
			tbl.AddRow(categoryColor(m.Category).Sprint(m.Category), m.Count, fmt.Sprintf("%5.1f%%", m.Percentage), bar(m.Percentage))
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
	}

	if len(d.MostUsedTags) > 0 {
		_, _ = bold.Fprintln(color.Output, "\nTop tags")
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, t := range d.MostUsedTags {
			tbl.AddRow("#"+t.TagName, t.Count, fmt.Sprintf("%5.1f%%", t.Percentage))
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
	}

	if len(d.WordCountTrends) > 0 {
		_, _ = bold.Fprintln(color.Output, "\nWords per day")
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, w := range d.WordCountTrends {
			tbl.AddRow(w.Date.Format(time.DateOnly), w.WordCount, fmt.Sprintf("avg %.1f", w.AverageWords))
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}

	return fmt.Sprintf("%d days", n)
}

// bar draws a 20 cell gauge for a percentage.
func bar(percentage float64) string {
	cells := int(percentage/5 + 0.5)

	return strings.Repeat("█", cells) + faint.Sprint(strings.Repeat("·", 20-cells))
}
