// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"journal/config"
	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/domain/service"
	"journal/internal/errors"
	logs "journal/internal/infra/log"
	"journal/internal/usecase"
	"journal/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultTitleMaxLength      = 500
	defaultSearchFallbackLimit = 100
)

// entryService implements the EntryUsecase interface.
type entryService struct {
	txManager      repository.TransactionManager
	entryRepo      repository.EntryRepository
	clock          service.Clock
	validator      *validation.Validator
	titleMaxLength int
	searchFallback int
	pageSize       int
	logger         *slog.Logger
}

// EntryServiceParams holds dependencies for EntryService, injected by Fx.
type EntryServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	EntryRepo repository.EntryRepository
	Clock     service.Clock
	Validator *validation.Validator
	Config    *config.Config
	Logger    *slog.Logger
}

// NewEntryService is the constructor for entryService.
func NewEntryService(params EntryServiceParams) usecase.EntryUsecase {
	srv := &entryService{
		txManager:      params.TxManager,
		entryRepo:      params.EntryRepo,
		clock:          params.Clock,
		validator:      params.Validator,
		titleMaxLength: defaultTitleMaxLength,
		searchFallback: defaultSearchFallbackLimit,
		pageSize:       repository.DefaultListLimit,
		logger:         params.Logger,
	}

	if params.Config != nil && params.Config.Journal != nil {
		if n := params.Config.Journal.TitleMaxLength; n > 0 {
			srv.titleMaxLength = n
		}
		if n := params.Config.Journal.SearchFallbackLimit; n > 0 {
			srv.searchFallback = n
		}
		if n := params.Config.Journal.DefaultPageSize; n > 0 {
			srv.pageSize = n
		}
	}

	if srv.validator == nil {
		srv.validator = validation.New()
	}

	return srv
}

// log returns an invocation-scoped logger if available, otherwise falls back to the service's logger.
func (srv *entryService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// Create stores a new entry for the calendar day of input.Date.
func (srv *entryService) Create(ctx context.Context, userID uuid.UUID, input usecase.EntryInput) (*entity.Entry, error) {
	if input.Date.IsZero() {
		return nil, validation.Failed("date is required")
	}
	if err := srv.validateInput(&input); err != nil {
		return nil, err
	}

	date := entity.NormalizeDate(input.Date)
	now := srv.clock.Now().UTC()
	entry := &entity.Entry{
		UserID:        userID,
		EntryDate:     date,
		Title:         strings.TrimSpace(input.Title),
		Content:       input.Content,
		PrimaryMoodID: input.PrimaryMoodID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	srv.log(ctx).Debug("Creating entry", slog.Any("user_id", userID), slog.Time("date", date))

	var created *entity.Entry
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		entryRepo := repoFactory.NewEntryRepository()

		exists, err := entryRepo.ExistsForDate(ctx, userID, date)
		if err != nil {
			return errors.Wrap(err, "failed to check entry date")
		}
		if exists {
			return dateConflict(date)
		}

		if err := entryRepo.Put(ctx, entry, input.SecondaryMoodIDs, input.TagIDs); err != nil {
			if errors.Is(err, domainerrors.ErrDuplicateEntryDate) {
				return dateConflict(date)
			}

			return err
		}

		created, err = entryRepo.FindByID(ctx, entry.ID)

		return err
	})
	if err != nil {
		return nil, srv.fail(ctx, err, "create entry")
	}

	srv.log(ctx).Info("Entry created", slog.Any("entry_id", created.ID), slog.Time("date", date))

	return created, nil
}

// Update replaces the editable fields and both association sets of an entry.
// The entry's date and owner never change.
func (srv *entryService) Update(ctx context.Context, entryID uuid.UUID, input usecase.EntryInput) (*entity.Entry, error) {
	if err := srv.validateInput(&input); err != nil {
		return nil, err
	}

	var updated *entity.Entry
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		entryRepo := repoFactory.NewEntryRepository()

		existing, err := entryRepo.FindByID(ctx, entryID)
		if err != nil {
			return err
		}

		next := &entity.Entry{
			ID:            existing.ID,
			UserID:        existing.UserID,
			EntryDate:     existing.EntryDate,
			Title:         strings.TrimSpace(input.Title),
			Content:       input.Content,
			PrimaryMoodID: input.PrimaryMoodID,
			CreatedAt:     existing.CreatedAt,
			UpdatedAt:     srv.clock.Now().UTC(),
		}
		if err := entryRepo.Put(ctx, next, input.SecondaryMoodIDs, input.TagIDs); err != nil {
			return err
		}

		updated, err = entryRepo.FindByID(ctx, entryID)

		return err
	})
	if err != nil {
		return nil, srv.fail(ctx, err, "update entry")
	}

	srv.log(ctx).Info("Entry updated", slog.Any("entry_id", entryID))

	return updated, nil
}

// Delete removes an entry. It reports false without an error when the entry does not exist.
func (srv *entryService) Delete(ctx context.Context, entryID uuid.UUID) (bool, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewEntryRepository().Delete(ctx, entryID)
	})
	if errors.Is(err, domainerrors.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, srv.fail(ctx, err, "delete entry")
	}

	srv.log(ctx).Info("Entry deleted", slog.Any("entry_id", entryID))

	return true, nil
}

func (srv *entryService) Get(ctx context.Context, entryID uuid.UUID) (*entity.Entry, error) {
	entry, err := srv.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, srv.fail(ctx, err, "get entry")
	}

	return entry, nil
}

func (srv *entryService) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.Entry, error) {
	entry, err := srv.entryRepo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, srv.fail(ctx, err, "get entry by date")
	}

	return entry, nil
}

// List returns one page of entries, newest first. Pages start at 1.
func (srv *entryService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*usecase.EntryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = srv.pageSize
	}

	out := &usecase.EntryPage{Page: page, PageSize: pageSize}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		entryRepo := repoFactory.NewEntryRepository()

		total, err := entryRepo.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		out.Total = total

		out.Entries, err = entryRepo.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)

		return err
	})
	if err != nil {
		return nil, srv.fail(ctx, err, "list entries")
	}

	return out, nil
}

// Search matches term against title or content ignoring case. A blank term
// returns the most recent entries instead.
func (srv *entryService) Search(ctx context.Context, userID uuid.UUID, term string) ([]*entity.Entry, error) {
	filter := repository.EntryFilter{Term: strings.TrimSpace(term)}
	if filter.Term == "" {
		filter.Limit = srv.searchFallback
	}

	entries, err := srv.entryRepo.QueryByUser(ctx, userID, filter)
	if err != nil {
		return nil, srv.fail(ctx, err, "search entries")
	}

	return entries, nil
}

// Filter applies every supplied criterion. Date bounds are inclusive calendar days.
func (srv *entryService) Filter(ctx context.Context, userID uuid.UUID, input usecase.EntryFilterInput) ([]*entity.Entry, error) {
	filter := repository.EntryFilter{
		DateRange: entity.DateRange{Start: input.Start, End: input.End}.Normalized(),
		MoodIDs:   input.MoodIDs,
		TagIDs:    input.TagIDs,
		Term:      strings.TrimSpace(input.Term),
	}

	entries, err := srv.entryRepo.QueryByUser(ctx, userID, filter)
	if err != nil {
		return nil, srv.fail(ctx, err, "filter entries")
	}

	return entries, nil
}

func (srv *entryService) ExistsForDate(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	exists, err := srv.entryRepo.ExistsForDate(ctx, userID, date)
	if err != nil {
		return false, srv.fail(ctx, err, "check entry date")
	}

	return exists, nil
}

func (srv *entryService) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := srv.entryRepo.CountByUser(ctx, userID)
	if err != nil {
		return 0, srv.fail(ctx, err, "count entries")
	}

	return count, nil
}

// validateInput trims the title in place so limits apply to the stored value.
func (srv *entryService) validateInput(input *usecase.EntryInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if err := srv.validator.Validate(input); err != nil {
		return err
	}
	if err := srv.validator.Var("title", input.Title, fmt.Sprintf("maxrunes=%d", srv.titleMaxLength)); err != nil {
		return err
	}
	if slices.Contains(input.SecondaryMoodIDs, input.PrimaryMoodID) {
		return validation.Failed("secondary moods must not repeat the primary mood")
	}

	return nil
}

func (srv *entryService) fail(ctx context.Context, err error, op string) error {
	return logStoreFault(ctx, srv.logger, err, op)
}

func dateConflict(date time.Time) error {
	return domainerrors.ErrEntryDateConflict.WithDetails(date.Format(time.DateOnly))
}
