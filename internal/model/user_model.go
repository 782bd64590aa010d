package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uint      `gorm:"primaryKey"`
	Username       string    `gorm:"type:varchar(255);not null;index"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	CreatedOn      time.Time `gorm:"not null"`
	LastModifiedOn time.Time `gorm:"not null"`
	IsDeleted      bool      `gorm:"not null;index"`
}

func (User) TableName() string {
	return "users"
}

type Session struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uint      `gorm:"not null;index"`
	Username       string    `gorm:"type:varchar(255);not null"`
	AccessToken    string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(50);not null"`
	CreatedOn      time.Time `gorm:"not null"`
	LastModifiedOn time.Time `gorm:"not null"`
	IsDeleted      bool      `gorm:"not null;index"`
}

func (Session) TableName() string {
	return "sessions"
}
