package sqlite

import (
	"context"
	"log/slog"

	"journal/internal/domain/entity"
	"journal/internal/errors"
	"journal/internal/infra/persistence/model"

	"gorm.io/gorm"
)

var seedMoods = []model.MoodModel{
	{Name: "Happy", Category: string(entity.MoodCategoryPositive), Glyph: "😊"},
	{Name: "Excited", Category: string(entity.MoodCategoryPositive), Glyph: "🤩"},
	{Name: "Relaxed", Category: string(entity.MoodCategoryPositive), Glyph: "😌"},
	{Name: "Grateful", Category: string(entity.MoodCategoryPositive), Glyph: "🙏"},
	{Name: "Confident", Category: string(entity.MoodCategoryPositive), Glyph: "💪"},

	{Name: "Calm", Category: string(entity.MoodCategoryNeutral), Glyph: "😐"},
	{Name: "Thoughtful", Category: string(entity.MoodCategoryNeutral), Glyph: "🤔"},
	{Name: "Curious", Category: string(entity.MoodCategoryNeutral), Glyph: "🧐"},
	{Name: "Nostalgic", Category: string(entity.MoodCategoryNeutral), Glyph: "🥲"},
	{Name: "Bored", Category: string(entity.MoodCategoryNeutral), Glyph: "😑"},

	{Name: "Sad", Category: string(entity.MoodCategoryNegative), Glyph: "😔"},
	{Name: "Angry", Category: string(entity.MoodCategoryNegative), Glyph: "😠"},
	{Name: "Stressed", Category: string(entity.MoodCategoryNegative), Glyph: "😰"},
	{Name: "Lonely", Category: string(entity.MoodCategoryNegative), Glyph: "😞"},
	{Name: "Anxious", Category: string(entity.MoodCategoryNegative), Glyph: "😟"},
}

var seedTags = []string{
	"Work", "Career", "Studies", "Family", "Friends", "Relationships",
	"Health", "Fitness", "Personal Growth", "Self-care", "Hobbies", "Travel",
	"Nature", "Finance", "Spirituality", "Birthday", "Holiday", "Vacation",
	"Celebration", "Exercise", "Reading", "Writing", "Cooking", "Meditation",
	"Yoga", "Music", "Shopping", "Parenting", "Projects", "Planning", "Reflection",
}

// Seed inserts the mood catalog and the predefined tags on first run.
// A store that already holds moods is left untouched.
func Seed(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.MoodModel{}).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to count moods")
		}
		if count > 0 {
			return nil
		}

		moods := make([]model.MoodModel, len(seedMoods))
		copy(moods, seedMoods)
		if err := tx.Create(&moods).Error; err != nil {
			return errors.Wrap(err, "failed to seed moods")
		}

		tags := make([]model.TagModel, 0, len(seedTags))
		for _, name := range seedTags {
			tags = append(tags, model.TagModel{
				Name:         name,
				NameKey:      entity.TagNameKey(name),
				IsPredefined: true,
			})
		}
		if err := tx.Create(&tags).Error; err != nil {
			return errors.Wrap(err, "failed to seed tags")
		}

		if logger != nil {
			logger.InfoContext(ctx, "Seeded catalog",
				slog.Int("moods", len(moods)),
				slog.Int("tags", len(tags)),
			)
		}

		return nil
	})
}
