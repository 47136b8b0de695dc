package main

import (
	"context"
	"strings"
	"time"

	"journal/internal/domain/entity"
	"journal/internal/validation"

	"github.com/google/uuid"
)

// parseDay reads a YYYY-MM-DD calendar day. "today" and "yesterday" are
// resolved against now in the local time zone.
func parseDay(value string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return entity.NormalizeDate(now.Local()), nil
	case "yesterday":
		return entity.NormalizeDate(now.Local().AddDate(0, 0, -1)), nil
	}

	day, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, validation.Failed("date " + value + " is not in YYYY-MM-DD form")
	}

	return entity.NormalizeDate(day), nil
}

// parseWindow builds an optional inclusive window from --from/--to values.
func parseWindow(from, to string, now time.Time) (entity.DateRange, error) {
	var window entity.DateRange
	if strings.TrimSpace(from) != "" {
		start, err := parseDay(from, now)
		if err != nil {
			return window, err
		}
		window.Start = &start
	}
	if strings.TrimSpace(to) != "" {
		end, err := parseDay(to, now)
		if err != nil {
			return window, err
		}
		window.End = &end
	}
	if window.Start != nil && window.End != nil && window.End.Before(*window.Start) {
		return window, validation.Failed("--to must not be before --from")
	}

	return window, nil
}

// entryRef is either an entry ID or a calendar day.
type entryRef struct {
	id  uuid.UUID
	day time.Time
}

func parseEntryRef(value string, now time.Time) (entryRef, error) {
	if id, err := uuid.Parse(strings.TrimSpace(value)); err == nil {
		return entryRef{id: id}, nil
	}

	day, err := parseDay(value, now)
	if err != nil {
		return entryRef{}, validation.Failed(value + " is neither an entry ID nor a YYYY-MM-DD date")
	}

	return entryRef{day: day}, nil
}

func (r entryRef) resolve(ctx context.Context, svc services, userID uuid.UUID) (*entity.Entry, error) {
	if r.id != uuid.Nil {
		return svc.Entries.Get(ctx, r.id)
	}

	return svc.Entries.GetByDate(ctx, userID, r.day)
}

// moodIDs resolves mood names case-insensitively against the catalog.
func moodIDs(moods []*entity.Mood, names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		found := false
		for _, m := range moods {
			if strings.EqualFold(m.Name, name) {
				ids = append(ids, m.ID)
				found = true

				break
			}
		}
		if !found {
			return nil, validation.Failed("unknown mood " + name + "; see `journal moods`")
		}
	}

	return ids, nil
}
