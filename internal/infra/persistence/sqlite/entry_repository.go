package sqlite

import (
	"context"
	"slices"
	"strings"
	"time"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/errors"
	"journal/internal/infra/persistence/model"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// hydrateChunkSize bounds the number of IDs bound into one IN clause.
const hydrateChunkSize = 500

// entryRepository implements the domain.EntryRepository interface using GORM.
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository is the constructor for entryRepository.
func NewEntryRepository(db *gorm.DB) repository.EntryRepository {
	return &entryRepository{db: db}
}

// Put writes the entry row and replaces both association sets in one
// transaction, or in a savepoint when db is already a transaction.
func (repo *entryRepository) Put(ctx context.Context, entry *entity.Entry, secondaryMoodIDs, tagIDs []uint) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.EntryDate = entity.NormalizeDate(entry.EntryDate)
	row := fromEntryDomain(entry)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.EntryModel{}).Where("id = ?", row.ID).Count(&existing).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check entry existence")
		}

		if existing == 0 {
			if err := tx.Create(row).Error; err != nil {
				return translateEntryWriteError(err, "failed to insert entry")
			}
		} else {
			err := tx.Model(&model.EntryModel{}).Where("id = ?", row.ID).Updates(map[string]any{
				"user_id":         row.UserID,
				"entry_date":      row.EntryDate,
				"title":           row.Title,
				"content":         row.Content,
				"primary_mood_id": row.PrimaryMoodID,
				"updated_at":      row.UpdatedAt,
			}).Error
			if err != nil {
				return translateEntryWriteError(err, "failed to update entry")
			}
		}

		return replaceLinks(tx, row.ID, secondaryMoodIDs, tagIDs)
	})
	if err != nil {
		return err
	}

	entry.SecondaryMoodIDs = slices.Clone(secondaryMoodIDs)
	entry.TagIDs = slices.Clone(tagIDs)

	return nil
}

func replaceLinks(tx *gorm.DB, entryID uuid.UUID, moodIDs, tagIDs []uint) error {
	if err := tx.Where("entry_id = ?", entryID).Delete(&model.EntryMoodModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear entry moods")
	}
	if err := tx.Where("entry_id = ?", entryID).Delete(&model.EntryTagModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear entry tags")
	}

	if len(moodIDs) > 0 {
		links := make([]model.EntryMoodModel, 0, len(moodIDs))
		for _, id := range moodIDs {
			links = append(links, model.EntryMoodModel{EntryID: entryID, MoodID: id})
		}
		if err := tx.Create(&links).Error; err != nil {
			return translateLinkWriteError(err, "failed to link secondary moods")
		}
	}

	if len(tagIDs) > 0 {
		links := make([]model.EntryTagModel, 0, len(tagIDs))
		for _, id := range tagIDs {
			links = append(links, model.EntryTagModel{EntryID: entryID, TagID: id})
		}
		if err := tx.Create(&links).Error; err != nil {
			return translateLinkWriteError(err, "failed to link tags")
		}
	}

	return nil
}

// FindByID retrieves a single hydrated entry by its ID.
func (repo *entryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	db := repo.db.WithContext(ctx)

	var row model.EntryModel
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrEntryNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find entry by id")
	}

	entries, err := hydrate(db, []model.EntryModel{row})
	if err != nil {
		return nil, err
	}

	return entries[0], nil
}

// FindByUserAndDate retrieves the entry a user wrote for the calendar day of date.
func (repo *entryRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.Entry, error) {
	db := repo.db.WithContext(ctx)

	var row model.EntryModel
	err := db.Where("user_id = ? AND entry_date = ?", userID, entity.NormalizeDate(date)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrEntryNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find entry by date")
	}

	entries, err := hydrate(db, []model.EntryModel{row})
	if err != nil {
		return nil, err
	}

	return entries[0], nil
}

// Delete removes the entry together with its link rows.
func (repo *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", id).Delete(&model.EntryMoodModel{}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to delete entry moods")
		}
		if err := tx.Where("entry_id = ?", id).Delete(&model.EntryTagModel{}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to delete entry tags")
		}

		result := tx.Where("id = ?", id).Delete(&model.EntryModel{})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete entry")
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrEntryNotFound
		}

		return nil
	})
}

// ListByUser returns one page of a user's entries, newest first.
func (repo *entryRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.Entry, error) {
	offset = max(offset, 0)
	if limit < 1 {
		limit = repository.DefaultListLimit
	}

	db := repo.db.WithContext(ctx)

	var rows []model.EntryModel
	err := db.Where("user_id = ?", userID).
		Order("entry_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list entries")
	}

	return hydrate(db, rows)
}

// QueryByUser applies every predicate set in filter and returns the matches
// newest first. Date, mood and tag predicates are bound SQL parameters. The
// term is matched in Go with Unicode case folding, since SQLite's lower()
// only folds ASCII.
func (repo *entryRepository) QueryByUser(ctx context.Context, userID uuid.UUID, filter repository.EntryFilter) ([]*entity.Entry, error) {
	db := repo.db.WithContext(ctx)

	query := db.Model(&model.EntryModel{}).Where("user_id = ?", userID)

	window := filter.DateRange.Normalized()
	if window.Start != nil {
		query = query.Where("entry_date >= ?", *window.Start)
	}
	if window.End != nil {
		query = query.Where("entry_date <= ?", *window.End)
	}
	if len(filter.MoodIDs) > 0 {
		query = query.Where(
			"(primary_mood_id IN ? OR id IN (SELECT entry_id FROM entry_moods WHERE mood_id IN ?))",
			filter.MoodIDs, filter.MoodIDs,
		)
	}
	if len(filter.TagIDs) > 0 {
		query = query.Where("id IN (SELECT entry_id FROM entry_tags WHERE tag_id IN ?)", filter.TagIDs)
	}

	term := strings.TrimSpace(filter.Term)
	query = query.Order("entry_date DESC")
	if term == "" && filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []model.EntryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query entries")
	}

	if term != "" {
		rows = matchTerm(rows, term)
		if filter.Limit > 0 && len(rows) > filter.Limit {
			rows = rows[:filter.Limit]
		}
	}

	return hydrate(db, rows)
}

func matchTerm(rows []model.EntryModel, term string) []model.EntryModel {
	folder := cases.Fold()
	needle := folder.String(term)

	matched := rows[:0]
	for _, row := range rows {
		if strings.Contains(folder.String(row.Title), needle) || strings.Contains(folder.String(row.Content), needle) {
			matched = append(matched, row)
		}
	}

	return matched
}

// ExistsForDate reports whether the user already has an entry for the calendar day of date.
func (repo *entryRepository) ExistsForDate(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.EntryModel{}).
		Where("user_id = ? AND entry_date = ?", userID, entity.NormalizeDate(date)).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check entry for date")
	}

	return count > 0, nil
}

// CountByUser returns the number of entries a user has written.
func (repo *entryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.EntryModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count entries")
	}

	return count, nil
}

// ListEntryDates returns the user's entry dates oldest first. The unique
// (user, date) index makes them distinct.
func (repo *entryRepository) ListEntryDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	err := repo.db.WithContext(ctx).Model(&model.EntryModel{}).
		Where("user_id = ?", userID).
		Order("entry_date ASC").
		Pluck("entry_date", &dates).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list entry dates")
	}

	for i := range dates {
		dates[i] = dates[i].UTC()
	}

	return dates, nil
}

// hydrate loads the link rows and catalog rows referenced by rows and maps
// everything to domain entries, preserving the order of rows.
func hydrate(db *gorm.DB, rows []model.EntryModel) ([]*entity.Entry, error) {
	entries := make([]*entity.Entry, 0, len(rows))
	if len(rows) == 0 {
		return entries, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}

	var moodLinks []model.EntryMoodModel
	var tagLinks []model.EntryTagModel
	for chunk := range slices.Chunk(ids, hydrateChunkSize) {
		var ml []model.EntryMoodModel
		if err := db.Where("entry_id IN ?", chunk).Order("id").Find(&ml).Error; err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load entry moods")
		}
		moodLinks = append(moodLinks, ml...)

		var tl []model.EntryTagModel
		if err := db.Where("entry_id IN ?", chunk).Order("id").Find(&tl).Error; err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load entry tags")
		}
		tagLinks = append(tagLinks, tl...)
	}

	moodIDs := make([]uint, 0, len(rows)+len(moodLinks))
	for i := range rows {
		moodIDs = append(moodIDs, rows[i].PrimaryMoodID)
	}
	for _, l := range moodLinks {
		moodIDs = append(moodIDs, l.MoodID)
	}
	tagIDs := make([]uint, 0, len(tagLinks))
	for _, l := range tagLinks {
		tagIDs = append(tagIDs, l.TagID)
	}

	moods, err := loadByIDs[model.MoodModel](db, moodIDs)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load moods")
	}
	tags, err := loadByIDs[model.TagModel](db, tagIDs)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load tags")
	}

	moodByID := make(map[uint]entity.Mood, len(moods))
	for i := range moods {
		moodByID[moods[i].ID] = toMoodDomain(&moods[i])
	}
	tagByID := make(map[uint]entity.Tag, len(tags))
	for i := range tags {
		tagByID[tags[i].ID] = toTagDomain(&tags[i])
	}

	secondary := make(map[uuid.UUID][]uint, len(rows))
	for _, l := range moodLinks {
		secondary[l.EntryID] = append(secondary[l.EntryID], l.MoodID)
	}
	tagged := make(map[uuid.UUID][]uint, len(rows))
	for _, l := range tagLinks {
		tagged[l.EntryID] = append(tagged[l.EntryID], l.TagID)
	}

	for i := range rows {
		e := toEntryDomain(&rows[i])
		e.PrimaryMood = moodByID[e.PrimaryMoodID]
		e.SecondaryMoodIDs = nonNil(secondary[e.ID])
		e.TagIDs = nonNil(tagged[e.ID])

		e.SecondaryMoods = make([]entity.Mood, 0, len(e.SecondaryMoodIDs))
		for _, id := range e.SecondaryMoodIDs {
			e.SecondaryMoods = append(e.SecondaryMoods, moodByID[id])
		}
		e.Tags = make([]entity.Tag, 0, len(e.TagIDs))
		for _, id := range e.TagIDs {
			e.Tags = append(e.Tags, tagByID[id])
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// loadByIDs fetches the distinct rows of T whose primary key is in ids.
func loadByIDs[T any](db *gorm.DB, ids []uint) ([]T, error) {
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var out []T
	for chunk := range slices.Chunk(ids, hydrateChunkSize) {
		var rows []T
		if err := db.Where("id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}

	return out, nil
}

func nonNil(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}

	return ids
}

func translateEntryWriteError(err error, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrDuplicateEntryDate.WithDetails(details)
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrInvalidReference.WithDetails("unknown user or primary mood")
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

func translateLinkWriteError(err error, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WithDetails("duplicate association: " + details)
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrInvalidReference.WithDetails(details)
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

// --- Mapper Functions ---

func toEntryDomain(data *model.EntryModel) *entity.Entry {
	return &entity.Entry{
		ID:            data.ID,
		UserID:        data.UserID,
		EntryDate:     data.EntryDate.UTC(),
		Title:         data.Title,
		Content:       data.Content,
		PrimaryMoodID: data.PrimaryMoodID,
		CreatedAt:     data.CreatedAt.UTC(),
		UpdatedAt:     data.UpdatedAt.UTC(),
	}
}

func fromEntryDomain(data *entity.Entry) *model.EntryModel {
	return &model.EntryModel{
		ID:            data.ID,
		UserID:        data.UserID,
		EntryDate:     entity.NormalizeDate(data.EntryDate),
		Title:         data.Title,
		Content:       data.Content,
		PrimaryMoodID: data.PrimaryMoodID,
		CreatedAt:     data.CreatedAt.UTC(),
		UpdatedAt:     data.UpdatedAt.UTC(),
	}
}
