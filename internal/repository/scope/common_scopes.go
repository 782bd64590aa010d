package scope

import "gorm.io/gorm"

func OrderByIdAsc(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// WithNoteTags eager-loads a note's live tags.
func WithNoteTags(db *gorm.DB) *gorm.DB {
	return db.Preload("NoteTags.Tag", "is_deleted = ?", false)
}

// WithTagNotes eager-loads a tag's live notes.
func WithTagNotes(db *gorm.DB) *gorm.DB {
	return db.Preload("NoteTags.Note", "is_deleted = ?", false)
}
