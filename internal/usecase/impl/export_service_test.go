package impl

import (
	"context"
	"io"
	"strings"
	"testing"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/service"
	"journal/internal/infra/export"
	"journal/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) exportService(storage service.ExportStorage) usecase.ExportUsecase {
	return NewExportService(ExportServiceParams{
		EntryRepo: env.entryRepo,
		Exporter:  export.NewMarkdownExporter(),
		Storage:   storage,
		Clock:     env.clock,
		Logger:    newDiscardLogger(),
	})
}

func TestExportService_Export(t *testing.T) {
	env := newTestEnv(t)
	entries := env.entryService()
	ctx := context.Background()

	env.create(t, entries, day(2024, 6, 3), "Third", "last one", "Calm", "Reading")
	env.create(t, entries, day(2024, 6, 1), "First", "hello there", "Happy", "Work")
	env.create(t, entries, day(2024, 5, 20), "Outside", "not exported", "Sad")

	start := day(2024, 6, 1)
	doc, err := env.exportService(export.NewBlobStorageAt("mem://")).Export(ctx, env.user.ID, entity.DateRange{Start: &start})
	require.NoError(t, err)

	text := string(doc)
	assert.Contains(t, text, "# Journal Entries")
	assert.Contains(t, text, "Entries: 2")
	assert.NotContains(t, text, "Outside")

	first := strings.Index(text, "First")
	third := strings.Index(text, "Third")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, third)
}

func TestExportService_ExportEmpty(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.exportService(export.NewBlobStorageAt("mem://")).Export(context.Background(), env.user.ID, entity.DateRange{})
	assert.ErrorIs(t, err, domainerrors.ErrNoEntriesToExport)
}

func TestExportService_ExportToStorage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.create(t, env.entryService(), day(2024, 6, 1), "Stored", "kept in a bucket", "Grateful")

	storage := export.NewBlobStorageAt("mem://")
	t.Cleanup(func() { _ = storage.Close() })

	out, err := env.exportService(storage).ExportToStorage(ctx, env.user.ID, entity.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Entries)
	assert.True(t, strings.HasPrefix(out.Key, "journal-20240610-093000-"))
	assert.True(t, strings.HasSuffix(out.Key, ".md"))
	assert.True(t, strings.HasSuffix(out.Location, out.Key))

	r, err := storage.Open(ctx, out.Key)
	require.NoError(t, err)
	defer r.Close()

	stored, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(stored), "Stored")
}
