package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/errors"
	"journal/internal/infra/clock"
	"journal/internal/infra/auth"
	"journal/internal/infra/export"
	"journal/internal/infra/preference"
	"journal/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEntryRepository struct {
	mock.Mock
}

func (m *mockEntryRepository) Put(ctx context.Context, entry *entity.Entry, secondaryMoodIDs, tagIDs []uint) error {
	return m.Called(ctx, entry, secondaryMoodIDs, tagIDs).Error(0)
}

func (m *mockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	args := m.Called(ctx, id)
	entry, _ := args.Get(0).(*entity.Entry)

	return entry, args.Error(1)
}

func (m *mockEntryRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.Entry, error) {
	args := m.Called(ctx, userID, date)
	entry, _ := args.Get(0).(*entity.Entry)

	return entry, args.Error(1)
}

func (m *mockEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEntryRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.Entry, error) {
	args := m.Called(ctx, userID, offset, limit)
	entries, _ := args.Get(0).([]*entity.Entry)

	return entries, args.Error(1)
}

func (m *mockEntryRepository) QueryByUser(ctx context.Context, userID uuid.UUID, filter repository.EntryFilter) ([]*entity.Entry, error) {
	args := m.Called(ctx, userID, filter)
	entries, _ := args.Get(0).([]*entity.Entry)

	return entries, args.Error(1)
}

func (m *mockEntryRepository) ExistsForDate(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, userID, date)

	return args.Bool(0), args.Error(1)
}

func (m *mockEntryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	count, _ := args.Get(0).(int64)

	return count, args.Error(1)
}

func (m *mockEntryRepository) ListEntryDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	dates, _ := args.Get(0).([]time.Time)

	return dates, args.Error(1)
}

type mockExportStorage struct {
	mock.Mock
}

func (m *mockExportStorage) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)

	return args.String(0), args.Error(1)
}

func (m *mockExportStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	r, _ := args.Get(0).(io.ReadCloser)

	return r, args.Error(1)
}

func TestEntryService_StoreFaultsPassThrough(t *testing.T) {
	fault := domainerrors.NewDatabaseExecuteError(errors.New("disk I/O error"), "failed to query entries")
	userID := uuid.New()

	repo := new(mockEntryRepository)
	repo.On("QueryByUser", mock.Anything, userID, repository.EntryFilter{Term: "walk"}).Return(nil, fault).Once()
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, fault).Once()
	repo.On("CountByUser", mock.Anything, userID).Return(int64(0), fault).Once()

	srv := NewEntryService(EntryServiceParams{
		EntryRepo: repo,
		Clock:     &clock.Fixed{At: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		Logger:    newDiscardLogger(),
	})
	ctx := context.Background()

	_, err := srv.Search(ctx, userID, " walk ")
	require.Error(t, err)
	assert.Same(t, fault, err)
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindStore))

	_, err = srv.Get(ctx, uuid.New())
	assert.Same(t, fault, err)

	_, err = srv.CountForUser(ctx, userID)
	assert.Same(t, fault, err)

	repo.AssertExpectations(t)
}

func TestExportService_StorageFailure(t *testing.T) {
	userID := uuid.New()
	entries := []*entity.Entry{{
		UserID:      userID,
		EntryDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Title:       "t",
		PrimaryMood: entity.Mood{Name: "Happy", Category: entity.MoodCategoryPositive},
	}}

	repo := new(mockEntryRepository)
	repo.On("QueryByUser", mock.Anything, userID, repository.EntryFilter{}).Return(entries, nil).Once()

	storage := new(mockExportStorage)
	storage.On("Save", mock.Anything, mock.AnythingOfType("string"), "text/markdown; charset=utf-8", mock.Anything).
		Return("", errors.New("bucket unavailable")).Once()

	srv := NewExportService(ExportServiceParams{
		EntryRepo: repo,
		Exporter:  export.NewMarkdownExporter(),
		Storage:   storage,
		Clock:     &clock.Fixed{At: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		Logger:    newDiscardLogger(),
	})

	_, err := srv.ExportToStorage(context.Background(), userID, entity.DateRange{})
	require.EqualError(t, err, "bucket unavailable")

	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestServices_LogStoreFaultsWithOperation(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	catalog := NewCatalogService(CatalogServiceParams{
		TxManager: env.txManager,
		MoodRepo:  env.moodRepo,
		TagRepo:   env.tagRepo,
		Logger:    logger,
	})
	analytics := NewAnalyticsService(AnalyticsServiceParams{
		TxManager: env.txManager,
		Clock:     env.clock,
		Logger:    logger,
	})
	sessions := NewSessionService(SessionServiceParams{
		TxManager:   env.txManager,
		UserRepo:    env.userRepo,
		Hasher:      auth.NewBcryptHasher(env.cfg),
		Preferences: preference.NewDiskvStoreAt(t.TempDir()),
		Clock:       env.clock,
		Config:      env.cfg,
		Logger:      logger,
	})
	exports := NewExportService(ExportServiceParams{
		EntryRepo: env.entryRepo,
		Exporter:  export.NewMarkdownExporter(),
		Storage:   new(mockExportStorage),
		Clock:     env.clock,
		Logger:    logger,
	})

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	ctx := context.Background()
	tests := []struct {
		name      string
		operation string
		call      func() error
	}{
		{
			name:      "list moods",
			operation: "list moods",
			call: func() error {
				_, err := catalog.ListMoods(ctx)
				return err
			},
		},
		{
			name:      "list tags",
			operation: "list tags",
			call: func() error {
				_, err := catalog.ListTags(ctx)
				return err
			},
		},
		{
			name:      "create or get tag",
			operation: "create or get tag",
			call: func() error {
				_, err := catalog.CreateOrGetTag(ctx, "Hiking")
				return err
			},
		},
		{
			name:      "streak",
			operation: "compute streak",
			call: func() error {
				_, err := analytics.Streak(ctx, env.user.ID)
				return err
			},
		},
		{
			name:      "login",
			operation: "find user for login",
			call: func() error {
				_, err := sessions.Login(ctx, usecase.LoginInput{Username: "alice", Password: "whatever1"})
				return err
			},
		},
		{
			name:      "export",
			operation: "query export entries",
			call: func() error {
				_, err := exports.Export(ctx, env.user.ID, entity.DateRange{})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			err := tt.call()
			require.Error(t, err)
			assert.True(t, domainerrors.IsKind(err, domainerrors.KindStore))

			logged := buf.String()
			assert.Contains(t, logged, "level=ERROR")
			assert.Contains(t, logged, `operation="`+tt.operation+`"`)
		})
	}
}

func TestCatalogService_NotFoundIsNotLogged(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	catalog := NewCatalogService(CatalogServiceParams{
		TxManager: env.txManager,
		MoodRepo:  env.moodRepo,
		TagRepo:   env.tagRepo,
		Logger:    slog.New(slog.NewTextHandler(&buf, nil)),
	})

	_, err := catalog.GetTag(context.Background(), 9999)
	require.ErrorIs(t, err, domainerrors.ErrTagNotFound)
	assert.Empty(t, buf.String())
}
