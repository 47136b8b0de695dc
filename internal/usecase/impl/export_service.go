package impl

import (
	"context"
	"log/slog"
	"slices"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/domain/service"
	"journal/internal/errors"
	logs "journal/internal/infra/log"
	"journal/internal/usecase"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/fx"
)

// exportService implements the ExportUsecase interface.
type exportService struct {
	entryRepo repository.EntryRepository
	exporter  service.DocumentExporter
	storage   service.ExportStorage
	clock     service.Clock
	logger    *slog.Logger
}

// ExportServiceParams holds dependencies for ExportService, injected by Fx.
type ExportServiceParams struct {
	fx.In

	EntryRepo repository.EntryRepository
	Exporter  service.DocumentExporter
	Storage   service.ExportStorage
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewExportService is the constructor for exportService.
func NewExportService(params ExportServiceParams) usecase.ExportUsecase {
	return &exportService{
		entryRepo: params.EntryRepo,
		exporter:  params.Exporter,
		storage:   params.Storage,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *exportService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// Export renders the entries inside window, oldest first.
func (srv *exportService) Export(ctx context.Context, userID uuid.UUID, window entity.DateRange) ([]byte, error) {
	doc, _, err := srv.render(ctx, userID, window)

	return doc, err
}

// ExportToStorage renders the entries inside window and saves the document
// under a freshly generated key.
func (srv *exportService) ExportToStorage(ctx context.Context, userID uuid.UUID, window entity.DateRange) (*usecase.ExportOutput, error) {
	doc, count, err := srv.render(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	suffix, err := gonanoid.New()
	if err != nil {
		return nil, errors.Wrap(err, "generate export key")
	}
	key := "journal-" + srv.clock.Now().UTC().Format("20060102-150405") + "-" + suffix + srv.exporter.Extension()

	location, err := srv.storage.Save(ctx, key, srv.exporter.ContentType(), doc)
	if err != nil {
		srv.log(ctx).Error("Failed to store export", slog.String("key", key), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Journal exported",
		slog.Any("user_id", userID),
		slog.String("location", location),
		slog.Int("entries", count),
		slog.Int("bytes", len(doc)),
	)

	return &usecase.ExportOutput{Key: key, Location: location, Entries: count}, nil
}

func (srv *exportService) render(ctx context.Context, userID uuid.UUID, window entity.DateRange) ([]byte, int, error) {
	window = window.Normalized()

	entries, err := srv.entryRepo.QueryByUser(ctx, userID, repository.EntryFilter{DateRange: window})
	if err != nil {
		return nil, 0, logStoreFault(ctx, srv.logger, err, "query export entries")
	}
	if len(entries) == 0 {
		return nil, 0, domainerrors.ErrNoEntriesToExport
	}

	slices.SortFunc(entries, func(a, b *entity.Entry) int {
		return a.EntryDate.Compare(b.EntryDate)
	})

	doc, err := srv.exporter.Render(entries, window)
	if err != nil {
		return nil, 0, errors.Wrap(err, "render export")
	}

	return doc, len(entries), nil
}
