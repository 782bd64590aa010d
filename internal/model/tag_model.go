package model

import "time"

type Tag struct {
	Id             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Slug           string    `gorm:"type:varchar(255);not null;index"`
	CreatedOn      time.Time `gorm:"not null"`
	LastModifiedOn time.Time `gorm:"not null"`
	IsDeleted      bool      `gorm:"not null;index"`
	NoteTags       []NoteTag `gorm:"foreignKey:TagId"`
}

func (Tag) TableName() string {
	return "tags"
}
