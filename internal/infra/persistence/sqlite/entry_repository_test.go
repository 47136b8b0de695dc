package sqlite

import (
	"context"
	"testing"
	"time"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRepository_PutInsertsAndHydrates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e := f.newEntry(time.Date(2024, 6, 9, 21, 45, 0, 0, time.UTC), "Long day", "shipped the release", "Happy")
	f.put(t, e, []string{"Grateful", "Relaxed"}, []string{"Work", "Family"})

	require.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, day(2024, 6, 9), e.EntryDate)

	got, err := f.entryR.FindByID(ctx, e.ID)
	require.NoError(t, err)

	assert.Equal(t, f.user.ID, got.UserID)
	assert.Equal(t, day(2024, 6, 9), got.EntryDate)
	assert.Equal(t, "Long day", got.Title)
	assert.Equal(t, "Happy", got.PrimaryMood.Name)
	assert.Equal(t, entity.MoodCategoryPositive, got.PrimaryMood.Category)
	assert.Equal(t, []uint{f.moods["Grateful"], f.moods["Relaxed"]}, got.SecondaryMoodIDs)
	require.Len(t, got.SecondaryMoods, 2)
	assert.Equal(t, "Grateful", got.SecondaryMoods[0].Name)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, "Work", got.Tags[0].Name)
	assert.Equal(t, "Family", got.Tags[1].Name)
	assert.True(t, got.CreatedAt.Equal(f.now))
}

func TestEntryRepository_PutReplacesAssociations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e := f.put(t, f.newEntry(day(2024, 6, 9), "v1", "first", "Happy"), []string{"Grateful"}, []string{"Work", "Family"})

	e.Title = "v2"
	e.PrimaryMoodID = f.moods["Sad"]
	e.UpdatedAt = f.now.Add(time.Hour)
	f.put(t, e, []string{"Lonely", "Anxious"}, []string{"Health"})

	got, err := f.entryR.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Title)
	assert.Equal(t, "Sad", got.PrimaryMood.Name)
	assert.Equal(t, []uint{f.moods["Lonely"], f.moods["Anxious"]}, got.SecondaryMoodIDs)
	assert.Equal(t, []uint{f.tags["Health"]}, got.TagIDs)
	assert.True(t, got.UpdatedAt.Equal(f.now.Add(time.Hour)))

	var links int64
	require.NoError(t, f.db.Model(&model.EntryTagModel{}).Where("entry_id = ?", e.ID).Count(&links).Error)
	assert.EqualValues(t, 1, links)
}

func TestEntryRepository_PutDuplicateDate(t *testing.T) {
	f := newFixture(t)

	f.put(t, f.newEntry(day(2024, 6, 9), "first", "", "Happy"), nil, nil)

	err := f.entryR.Put(context.Background(), f.newEntry(time.Date(2024, 6, 9, 18, 0, 0, 0, time.UTC), "second", "", "Calm"), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEntryDate)
	assert.Equal(t, domainerrors.KindConstraint, domainerrors.KindOf(err))
}

func TestEntryRepository_PutInvalidReferenceIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e := f.newEntry(day(2024, 6, 9), "t", "", "Happy")
	err := f.entryR.Put(ctx, e, []uint{f.moods["Calm"]}, []uint{9999})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidReference)

	exists, err := f.entryR.ExistsForDate(ctx, f.user.ID, day(2024, 6, 9))
	require.NoError(t, err)
	assert.False(t, exists)

	var moodLinks int64
	require.NoError(t, f.db.Model(&model.EntryMoodModel{}).Count(&moodLinks).Error)
	assert.Zero(t, moodLinks)
}

func TestEntryRepository_PutUnknownPrimaryMood(t *testing.T) {
	f := newFixture(t)

	e := f.newEntry(day(2024, 6, 9), "t", "", "Happy")
	e.PrimaryMoodID = 4242

	err := f.entryR.Put(context.Background(), e, nil, nil)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidReference)
}

func TestEntryRepository_PutInsideTransactionRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tm := NewTransactionManager(f.db)

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		e := f.newEntry(day(2024, 6, 9), "t", "", "Happy")
		if err := factory.NewEntryRepository().Put(ctx, e, nil, []uint{f.tags["Work"]}); err != nil {
			return err
		}

		return domainerrors.ErrValidationFailed
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	count, err := f.entryR.CountByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEntryRepository_FindByUserAndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e := f.put(t, f.newEntry(day(2024, 6, 9), "t", "", "Happy"), nil, nil)

	got, err := f.entryR.FindByUserAndDate(ctx, f.user.ID, time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	_, err = f.entryR.FindByUserAndDate(ctx, f.user.ID, day(2024, 6, 10))
	assert.ErrorIs(t, err, domainerrors.ErrEntryNotFound)

	_, err = f.entryR.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrEntryNotFound)
}

func TestEntryRepository_DeleteRemovesLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e := f.put(t, f.newEntry(day(2024, 6, 9), "t", "", "Happy"), []string{"Calm"}, []string{"Work"})

	require.NoError(t, f.entryR.Delete(ctx, e.ID))

	var moodLinks, tagLinks int64
	require.NoError(t, f.db.Model(&model.EntryMoodModel{}).Count(&moodLinks).Error)
	require.NoError(t, f.db.Model(&model.EntryTagModel{}).Count(&tagLinks).Error)
	assert.Zero(t, moodLinks)
	assert.Zero(t, tagLinks)

	assert.ErrorIs(t, f.entryR.Delete(ctx, e.ID), domainerrors.ErrEntryNotFound)
}

func TestEntryRepository_ListByUserPagesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for d := 1; d <= 12; d++ {
		f.put(t, f.newEntry(day(2024, 6, d), "t", "", "Happy"), nil, nil)
	}

	page, err := f.entryR.ListByUser(ctx, f.user.ID, 0, 5)
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, day(2024, 6, 12), page[0].EntryDate)
	assert.Equal(t, day(2024, 6, 8), page[4].EntryDate)

	page, err = f.entryR.ListByUser(ctx, f.user.ID, 10, 5)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, day(2024, 6, 1), page[1].EntryDate)

	page, err = f.entryR.ListByUser(ctx, f.user.ID, -3, 0)
	require.NoError(t, err)
	assert.Len(t, page, repository.DefaultListLimit)
	assert.Equal(t, day(2024, 6, 12), page[0].EntryDate)
}

func TestEntryRepository_QueryByUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.put(t, f.newEntry(day(2024, 6, 1), "Morning run", "Felt GREAT after the run", "Happy"), nil, []string{"Fitness"})
	second := f.put(t, f.newEntry(day(2024, 6, 2), "Deadline", "work piled up", "Stressed"), []string{"Anxious"}, []string{"Work"})
	third := f.put(t, f.newEntry(day(2024, 6, 3), "Quiet evening", "Über ruhig", "Calm"), []string{"Happy"}, []string{"Work", "Family"})

	ids := func(entries []*entity.Entry) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.ID)
		}

		return out
	}

	start, end := day(2024, 6, 2), time.Date(2024, 6, 3, 6, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		filter repository.EntryFilter
		want   []uuid.UUID
	}{
		{name: "no predicates", filter: repository.EntryFilter{}, want: []uuid.UUID{third.ID, second.ID, first.ID}},
		{name: "inclusive date range", filter: repository.EntryFilter{DateRange: entity.DateRange{Start: &start, End: &end}}, want: []uuid.UUID{third.ID, second.ID}},
		{name: "mood matches primary or secondary", filter: repository.EntryFilter{MoodIDs: []uint{f.moods["Happy"]}}, want: []uuid.UUID{third.ID, first.ID}},
		{name: "tag matches any", filter: repository.EntryFilter{TagIDs: []uint{f.tags["Work"], f.tags["Fitness"]}}, want: []uuid.UUID{third.ID, second.ID, first.ID}},
		{name: "term is case-insensitive", filter: repository.EntryFilter{Term: "great"}, want: []uuid.UUID{first.ID}},
		{name: "term folds non-ascii", filter: repository.EntryFilter{Term: "ÜBER"}, want: []uuid.UUID{third.ID}},
		{name: "term matches title", filter: repository.EntryFilter{Term: "deadline"}, want: []uuid.UUID{second.ID}},
		{name: "predicates combine", filter: repository.EntryFilter{TagIDs: []uint{f.tags["Work"]}, MoodIDs: []uint{f.moods["Anxious"]}}, want: []uuid.UUID{second.ID}},
		{name: "limit", filter: repository.EntryFilter{Limit: 1}, want: []uuid.UUID{third.ID}},
		{name: "no match", filter: repository.EntryFilter{Term: "zebra"}, want: []uuid.UUID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.entryR.QueryByUser(ctx, f.user.ID, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestEntryRepository_QueryByUserIsScopedToUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &entity.User{Username: "bob", PasswordHash: "hash", CreatedAt: f.now}
	require.NoError(t, NewUserRepository(f.db).Create(ctx, other))

	f.put(t, f.newEntry(day(2024, 6, 1), "mine", "", "Happy"), nil, nil)
	theirs := f.newEntry(day(2024, 6, 1), "theirs", "", "Happy")
	theirs.UserID = other.ID
	f.put(t, theirs, nil, nil)

	got, err := f.entryR.QueryByUser(ctx, f.user.ID, repository.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].Title)

	count, err := f.entryR.CountByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEntryRepository_ListEntryDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.put(t, f.newEntry(day(2024, 6, 5), "t", "", "Happy"), nil, nil)
	f.put(t, f.newEntry(day(2024, 6, 1), "t", "", "Happy"), nil, nil)
	f.put(t, f.newEntry(day(2024, 6, 3), "t", "", "Happy"), nil, nil)

	dates, err := f.entryR.ListEntryDates(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 6, 1), day(2024, 6, 3), day(2024, 6, 5)}, dates)
}
