package model

// MoodModel mirrors the 'moods' table.
type MoodModel struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"type:text;not null"`
	Category string `gorm:"type:text;not null"`
	Glyph    string `gorm:"type:text;not null;default:''"`
}

// TableName explicitly sets the table name for GORM.
func (MoodModel) TableName() string {
	return "moods"
}
