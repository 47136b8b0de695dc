package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"journal/config"
	"journal/internal/domain/entity"
	"journal/internal/domain/repository"
	"journal/internal/infra/auth"
	"journal/internal/infra/clock"
	"journal/internal/infra/persistence/sqlite"
	"journal/internal/infra/preference"
	"journal/internal/usecase"
	"journal/internal/validation"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Auth.BcryptCost = bcrypt.MinCost

	return cfg
}

// testEnv wires every service against one in-memory store.
type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	clock     *clock.Fixed
	txManager repository.TransactionManager
	entryRepo repository.EntryRepository
	moodRepo  repository.MoodRepository
	tagRepo   repository.TagRepository
	userRepo  repository.UserRepository
	user      *entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.OpenMemory(context.Background(), newDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		db:        db,
		cfg:       newTestConfig(),
		clock:     &clock.Fixed{At: time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)},
		txManager: sqlite.NewTransactionManager(db),
		entryRepo: sqlite.NewEntryRepository(db),
		moodRepo:  sqlite.NewMoodRepository(db),
		tagRepo:   sqlite.NewTagRepository(db),
		userRepo:  sqlite.NewUserRepository(db),
	}

	env.user = &entity.User{Username: "alice", PasswordHash: "unused", CreatedAt: env.clock.Now()}
	require.NoError(t, env.userRepo.Create(context.Background(), env.user))

	return env
}

func (env *testEnv) entryService() usecase.EntryUsecase {
	return NewEntryService(EntryServiceParams{
		TxManager: env.txManager,
		EntryRepo: env.entryRepo,
		Clock:     env.clock,
		Validator: validation.New(),
		Config:    env.cfg,
		Logger:    newDiscardLogger(),
	})
}

func (env *testEnv) analyticsService() usecase.AnalyticsUsecase {
	return NewAnalyticsService(AnalyticsServiceParams{
		TxManager: env.txManager,
		Clock:     env.clock,
		Logger:    newDiscardLogger(),
	})
}

func (env *testEnv) catalogService() usecase.CatalogUsecase {
	return NewCatalogService(CatalogServiceParams{
		TxManager: env.txManager,
		MoodRepo:  env.moodRepo,
		TagRepo:   env.tagRepo,
		Logger:    newDiscardLogger(),
	})
}

func (env *testEnv) sessionService(t *testing.T) usecase.SessionUsecase {
	t.Helper()

	return NewSessionService(SessionServiceParams{
		TxManager:   env.txManager,
		UserRepo:    env.userRepo,
		Hasher:      auth.NewBcryptHasher(env.cfg),
		Preferences: preference.NewDiskvStoreAt(t.TempDir()),
		Clock:       env.clock,
		Validator:   validation.New(),
		Config:      env.cfg,
		Logger:      newDiscardLogger(),
	})
}

func (env *testEnv) mood(t *testing.T, name string) uint {
	t.Helper()

	moods, err := env.moodRepo.FindAll(context.Background())
	require.NoError(t, err)
	for _, m := range moods {
		if m.Name == name {
			return m.ID
		}
	}
	require.FailNow(t, "unknown mood", name)

	return 0
}

func (env *testEnv) tag(t *testing.T, name string) uint {
	t.Helper()

	tag, err := env.tagRepo.FindByName(context.Background(), name)
	require.NoError(t, err)

	return tag.ID
}

// create stores an entry with the given primary mood and tags through the service.
func (env *testEnv) create(t *testing.T, srv usecase.EntryUsecase, date time.Time, title, content, mood string, tags ...string) *entity.Entry {
	t.Helper()

	input := usecase.EntryInput{
		Date:          date,
		Title:         title,
		Content:       content,
		PrimaryMoodID: env.mood(t, mood),
	}
	for _, name := range tags {
		input.TagIDs = append(input.TagIDs, env.tag(t, name))
	}

	entry, err := srv.Create(context.Background(), env.user.ID, input)
	require.NoError(t, err)

	return entry
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
