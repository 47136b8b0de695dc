package service

import (
	"context"
	"io"

	"journal/internal/domain/entity"
)

// DocumentExporter renders hydrated entries into an exportable document.
type DocumentExporter interface {
	// Render produces the document for entries, which are already hydrated with
	// their primary mood, secondary moods and tags.
	Render(entries []*entity.Entry, window entity.DateRange) ([]byte, error)

	// ContentType is the media type of the rendered document.
	ContentType() string

	// Extension is the file extension, including the dot, used for stored documents.
	Extension() string
}

// ExportStorage persists rendered documents.
type ExportStorage interface {
	// Save writes data under key and returns the location it was written to.
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Open returns a reader for a previously saved document.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
