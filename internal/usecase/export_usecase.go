package usecase

import (
	"context"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
)

// ExportOutput describes a document written to export storage.
type ExportOutput struct {
	Key      string
	Location string
	Entries  int
}

// ExportUsecase renders a user's entries into a shareable document.
type ExportUsecase interface {
	Export(ctx context.Context, userID uuid.UUID, window entity.DateRange) ([]byte, error)
	ExportToStorage(ctx context.Context, userID uuid.UUID, window entity.DateRange) (*ExportOutput, error)
}
