// Package sqlite contains the concrete implementation of the persistence layer using GORM and SQLite.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"journal/config"
	"journal/internal/errors"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"

	startTimeout = 10 * time.Second
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the SQLite store and registers lifecycle hooks that migrate and
// seed the schema on start and close the connection on stop.
func New(params Params) (*gorm.DB, error) {
	db, err := Open(params.Config.Database, params.Logger, params.Config.Env.Debug)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, startTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping SQLite")
			}
			if err := Migrate(ctx, db); err != nil {
				return err
			}

			return Seed(ctx, db, params.Logger)
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to the database at cfg.Path with foreign keys enforced and a
// single connection, so writers are serialized.
func Open(cfg *config.DatabaseConfig, logger *slog.Logger, debug bool) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &config.DatabaseConfig{Path: MemoryPath}
	}

	db, err := gorm.Open(sqlite.Open(buildDSN(cfg)), &gorm.Config{
		// Explicit transactions go through txManager.Execute or Put.
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormSlogLogger(logger, cfg.SlowThreshold, debug),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open SQLite database %s", cfg.Path)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)
	// An in-memory database lives only as long as its connection.
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}

// OpenMemory opens a migrated and seeded private in-memory store.
func OpenMemory(ctx context.Context, logger *slog.Logger) (*gorm.DB, error) {
	db, err := Open(&config.DatabaseConfig{Path: MemoryPath}, logger, false)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	if err := Seed(ctx, db, logger); err != nil {
		return nil, err
	}

	return db, nil
}

func buildDSN(cfg *config.DatabaseConfig) string {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = MemoryPath
	}

	params := []string{"_foreign_keys=on"}
	if cfg.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", cfg.BusyTimeout.Milliseconds()))
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return path + sep + strings.Join(params, "&")
}
