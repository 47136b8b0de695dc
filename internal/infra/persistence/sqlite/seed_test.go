package sqlite

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"journal/config"
	"journal/internal/infra/persistence/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_InsertsCatalogOnce(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	var moods, tags, predefined int64
	require.NoError(t, db.Model(&model.MoodModel{}).Count(&moods).Error)
	require.NoError(t, db.Model(&model.TagModel{}).Count(&tags).Error)
	require.NoError(t, db.Model(&model.TagModel{}).Where("is_predefined = ?", true).Count(&predefined).Error)
	assert.EqualValues(t, 15, moods)
	assert.EqualValues(t, 31, tags)
	assert.EqualValues(t, 31, predefined)

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Seed(ctx, db, slog.New(slog.DiscardHandler)))

	require.NoError(t, db.Model(&model.MoodModel{}).Count(&moods).Error)
	assert.EqualValues(t, 15, moods)
}

func TestBuildDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=on", buildDSN(&config.DatabaseConfig{}))
	assert.Equal(t, "journal.db?_foreign_keys=on&_busy_timeout=1500",
		buildDSN(&config.DatabaseConfig{Path: "journal.db", BusyTimeout: 1500 * time.Millisecond}))
	assert.Equal(t, "file:j.db?cache=shared&_foreign_keys=on",
		buildDSN(&config.DatabaseConfig{Path: "file:j.db?cache=shared"}))
}
