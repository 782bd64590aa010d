package model

import "time"

type Note struct {
	Id             uint      `gorm:"primaryKey"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Slug           string    `gorm:"type:varchar(255);not null;index"`
	Body           string    `gorm:"type:text"`
	Version        int       `gorm:"not null"`
	CreatedOn      time.Time `gorm:"not null"`
	LastModifiedOn time.Time `gorm:"not null"`
	IsDeleted      bool      `gorm:"not null;index"`
	NoteTags       []NoteTag `gorm:"foreignKey:NoteId"`
}

func (Note) TableName() string {
	return "notes"
}

// NoteTag is the join row between notes and tags. There is deliberately no
// foreign-key constraint; read paths drop links to soft-deleted rows.
type NoteTag struct {
	TagId  uint  `gorm:"primaryKey;autoIncrement:false"`
	NoteId uint  `gorm:"primaryKey;autoIncrement:false;index"`
	Tag    *Tag  `gorm:"foreignKey:TagId"`
	Note   *Note `gorm:"foreignKey:NoteId"`
}

func (NoteTag) TableName() string {
	return "note_tags"
}
