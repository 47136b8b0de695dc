package sqlite

import (
	"context"
	"strings"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/errors"
	"journal/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository is the constructor for tagRepository.
func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

// Create stores the tag under its trimmed name; the unique name_key index
// rejects names that differ only in case.
func (repo *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	row := &model.TagModel{
		Name:         strings.TrimSpace(tag.Name),
		NameKey:      entity.TagNameKey(tag.Name),
		IsPredefined: tag.IsPredefined,
	}

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrTagAlreadyExists.WithDetails(row.Name)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create tag")
	}

	tag.ID = row.ID
	tag.Name = row.Name

	return nil
}

func (repo *tagRepository) FindByID(ctx context.Context, id uint) (*entity.Tag, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *tagRepository) FindByName(ctx context.Context, name string) (*entity.Tag, error) {
	return repo.findOne(ctx, "name_key = ?", entity.TagNameKey(name))
}

func (repo *tagRepository) findOne(ctx context.Context, cond string, arg any) (*entity.Tag, error) {
	var row model.TagModel
	if err := repo.db.WithContext(ctx).Where(cond, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTagNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find tag")
	}

	tag := toTagDomain(&row)

	return &tag, nil
}

func (repo *tagRepository) FindAll(ctx context.Context) ([]*entity.Tag, error) {
	var rows []model.TagModel
	err := repo.db.WithContext(ctx).
		Order("is_predefined DESC").
		Order("name_key").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list tags")
	}

	return toTagDomains(rows), nil
}

func (repo *tagRepository) FindPredefined(ctx context.Context) ([]*entity.Tag, error) {
	var rows []model.TagModel
	err := repo.db.WithContext(ctx).
		Where("is_predefined = ?", true).
		Order("name_key").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list predefined tags")
	}

	return toTagDomains(rows), nil
}

// Delete removes a tag. Tags still referenced by an entry are kept and
// reported as ErrReferenceInUse.
func (repo *tagRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TagModel{})
	if result.Error != nil {
		return translateDeleteError(result.Error, "tag is attached to journal entries")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTagNotFound
	}

	return nil
}

func toTagDomain(data *model.TagModel) entity.Tag {
	return entity.Tag{
		ID:           data.ID,
		Name:         data.Name,
		IsPredefined: data.IsPredefined,
	}
}

func toTagDomains(rows []model.TagModel) []*entity.Tag {
	tags := make([]*entity.Tag, 0, len(rows))
	for i := range rows {
		tag := toTagDomain(&rows[i])
		tags = append(tags, &tag)
	}

	return tags
}
