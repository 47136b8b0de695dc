package model

import (
	"time"

	"github.com/google/uuid"
)

// EntryModel mirrors the 'entries' table. Associations are stored in the link
// tables and loaded explicitly by the repository; the row carries no relation fields.
type EntryModel struct {
	ID            uuid.UUID `gorm:"type:text;primaryKey"`
	UserID        uuid.UUID `gorm:"type:text;not null"`
	EntryDate     time.Time `gorm:"not null"`
	Title         string    `gorm:"type:text;not null"`
	Content       string    `gorm:"type:text;not null"`
	PrimaryMoodID uint      `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (EntryModel) TableName() string {
	return "entries"
}

// EntryMoodModel mirrors the 'entry_moods' link table holding secondary moods.
type EntryMoodModel struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	EntryID uuid.UUID `gorm:"type:text;not null"`
	MoodID  uint      `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (EntryMoodModel) TableName() string {
	return "entry_moods"
}

// EntryTagModel mirrors the 'entry_tags' link table.
type EntryTagModel struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	EntryID uuid.UUID `gorm:"type:text;not null"`
	TagID   uint      `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (EntryTagModel) TableName() string {
	return "entry_tags"
}
