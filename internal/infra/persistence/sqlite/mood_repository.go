package sqlite

import (
	"context"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/errors"
	"journal/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type moodRepository struct {
	db *gorm.DB
}

// NewMoodRepository is the constructor for moodRepository.
func NewMoodRepository(db *gorm.DB) repository.MoodRepository {
	return &moodRepository{db: db}
}

func (repo *moodRepository) FindAll(ctx context.Context) ([]*entity.Mood, error) {
	var rows []model.MoodModel
	if err := repo.db.WithContext(ctx).Order("category").Order("name").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list moods")
	}

	return toMoodDomains(rows), nil
}

func (repo *moodRepository) FindByCategory(ctx context.Context, category entity.MoodCategory) ([]*entity.Mood, error) {
	var rows []model.MoodModel
	err := repo.db.WithContext(ctx).
		Where("category = ?", string(category)).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list moods by category")
	}

	return toMoodDomains(rows), nil
}

func (repo *moodRepository) FindByID(ctx context.Context, id uint) (*entity.Mood, error) {
	var row model.MoodModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrMoodNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find mood by id")
	}

	mood := toMoodDomain(&row)

	return &mood, nil
}

func (repo *moodRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.MoodModel{}).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count moods")
	}

	return count, nil
}

func toMoodDomain(data *model.MoodModel) entity.Mood {
	return entity.Mood{
		ID:       data.ID,
		Name:     data.Name,
		Category: entity.MoodCategory(data.Category),
		Glyph:    data.Glyph,
	}
}

func toMoodDomains(rows []model.MoodModel) []*entity.Mood {
	moods := make([]*entity.Mood, 0, len(rows))
	for i := range rows {
		mood := toMoodDomain(&rows[i])
		moods = append(moods, &mood)
	}

	return moods
}
