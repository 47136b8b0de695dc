package impl

import (
	"context"
	"log/slog"
	"strings"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/errors"
	logs "journal/internal/infra/log"
	"journal/internal/usecase"
	"journal/internal/validation"

	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	moodRepo  repository.MoodRepository
	tagRepo   repository.TagRepository
	logger    *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	MoodRepo  repository.MoodRepository
	TagRepo   repository.TagRepository
	Logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager: params.TxManager,
		moodRepo:  params.MoodRepo,
		tagRepo:   params.TagRepo,
		logger:    params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

func (srv *catalogService) ListMoods(ctx context.Context) ([]*entity.Mood, error) {
	moods, err := srv.moodRepo.FindAll(ctx)

	return moods, srv.fail(ctx, err, "list moods")
}

func (srv *catalogService) GetMood(ctx context.Context, id uint) (*entity.Mood, error) {
	mood, err := srv.moodRepo.FindByID(ctx, id)

	return mood, srv.fail(ctx, err, "get mood")
}

func (srv *catalogService) ListMoodsByCategory(ctx context.Context, category string) ([]*entity.Mood, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return srv.ListMoods(ctx)
	}

	for _, c := range entity.MoodCategories {
		if strings.EqualFold(string(c), category) {
			moods, err := srv.moodRepo.FindByCategory(ctx, c)

			return moods, srv.fail(ctx, err, "list moods by category")
		}
	}

	return nil, validation.Failed("unknown mood category " + category)
}

func (srv *catalogService) GetTag(ctx context.Context, id uint) (*entity.Tag, error) {
	tag, err := srv.tagRepo.FindByID(ctx, id)

	return tag, srv.fail(ctx, err, "get tag")
}

func (srv *catalogService) FindTagByName(ctx context.Context, name string) (*entity.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validation.Failed("tag name is required")
	}

	tag, err := srv.tagRepo.FindByName(ctx, name)

	return tag, srv.fail(ctx, err, "find tag")
}

func (srv *catalogService) ListPredefinedTags(ctx context.Context) ([]*entity.Tag, error) {
	tags, err := srv.tagRepo.FindPredefined(ctx)

	return tags, srv.fail(ctx, err, "list predefined tags")
}

func (srv *catalogService) ListTags(ctx context.Context) ([]*entity.Tag, error) {
	tags, err := srv.tagRepo.FindAll(ctx)

	return tags, srv.fail(ctx, err, "list tags")
}

// CreateOrGetTag never creates a second tag whose name differs only in case or surrounding whitespace.
func (srv *catalogService) CreateOrGetTag(ctx context.Context, name string) (*entity.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation.Failed("tag name is required")
	}

	var tag *entity.Tag
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tagRepo := repoFactory.NewTagRepository()

		existing, err := tagRepo.FindByName(ctx, name)
		if err == nil {
			tag = existing

			return nil
		}
		if !errors.Is(err, domainerrors.ErrTagNotFound) {
			return err
		}

		created := &entity.Tag{Name: name}
		if err := tagRepo.Create(ctx, created); err != nil {
			if errors.Is(err, domainerrors.ErrTagAlreadyExists) {
				tag, err = tagRepo.FindByName(ctx, name)
			}

			return err
		}
		tag = created
		srv.log(ctx).Info("Custom tag created", slog.Uint64("tag_id", uint64(created.ID)), slog.String("name", created.Name))

		return nil
	})
	if err != nil {
		return nil, srv.fail(ctx, err, "create or get tag")
	}

	return tag, nil
}

// DeleteTag refuses predefined tags and tags still attached to an entry.
func (srv *catalogService) DeleteTag(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tagRepo := repoFactory.NewTagRepository()

		tag, err := tagRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if tag.IsPredefined {
			return validation.Failed("predefined tag " + tag.Name + " cannot be deleted")
		}

		return tagRepo.Delete(ctx, id)
	})
	if err != nil {
		return srv.fail(ctx, err, "delete tag")
	}

	srv.log(ctx).Info("Custom tag deleted", slog.Uint64("tag_id", uint64(id)))

	return nil
}

func (srv *catalogService) fail(ctx context.Context, err error, op string) error {
	return logStoreFault(ctx, srv.logger, err, op)
}
