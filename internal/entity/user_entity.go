// FILE: internal/entity/user_entity.go
package entity

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	Entity
	Id           uint
	Username     string
	PasswordHash string
}

// SetPassword stores a bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusInactive SessionStatus = "inactive"
)

type Session struct {
	Entity
	Id          uuid.UUID
	UserId      uint
	Username    string
	AccessToken string
	Status      SessionStatus
}

func (s *Session) IsActive() bool {
	return s.Status == SessionStatusActive && !s.IsDeleted
}
