package model

// TagModel mirrors the 'tags' table. NameKey is the case-folded name and
// carries the uniqueness constraint.
type TagModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:text;not null"`
	NameKey      string `gorm:"type:text;not null"`
	IsPredefined bool   `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (TagModel) TableName() string {
	return "tags"
}
