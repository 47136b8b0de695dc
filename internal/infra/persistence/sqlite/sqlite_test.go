package sqlite

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"journal/internal/domain/entity"
	"journal/internal/domain/repository"
	"journal/internal/infra/persistence/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	user   *entity.User
	moods  map[string]uint
	tags   map[string]uint
	now    time.Time
	entryR repository.EntryRepository
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenMemory(context.Background(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	db := newTestDB(t)

	user := &entity.User{Username: "alice", PasswordHash: "hash", CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))

	f := &fixture{
		db:     db,
		user:   user,
		moods:  map[string]uint{},
		tags:   map[string]uint{},
		now:    time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
		entryR: NewEntryRepository(db),
	}

	var moods []model.MoodModel
	require.NoError(t, db.Find(&moods).Error)
	for _, m := range moods {
		f.moods[m.Name] = m.ID
	}

	var tags []model.TagModel
	require.NoError(t, db.Find(&tags).Error)
	for _, tag := range tags {
		f.tags[tag.Name] = tag.ID
	}

	return f
}

func (f *fixture) newEntry(date time.Time, title, content, primary string) *entity.Entry {
	return &entity.Entry{
		UserID:        f.user.ID,
		EntryDate:     date,
		Title:         title,
		Content:       content,
		PrimaryMoodID: f.moods[primary],
		CreatedAt:     f.now,
		UpdatedAt:     f.now,
	}
}

func (f *fixture) put(t *testing.T, e *entity.Entry, secondary []string, tags []string) *entity.Entry {
	t.Helper()

	moodIDs := make([]uint, 0, len(secondary))
	for _, name := range secondary {
		moodIDs = append(moodIDs, f.moods[name])
	}
	tagIDs := make([]uint, 0, len(tags))
	for _, name := range tags {
		tagIDs = append(tagIDs, f.tags[name])
	}

	require.NoError(t, f.entryR.Put(context.Background(), e, moodIDs, tagIDs))

	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
