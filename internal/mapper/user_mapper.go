package mapper

import (
	"notetaking-be/internal/entity"
	"notetaking-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Entity: entity.Entity{
			CreatedOn:      u.CreatedOn,
			LastModifiedOn: u.LastModifiedOn,
			IsDeleted:      u.IsDeleted,
		},
		Id:           u.Id,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:             u.Id,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		CreatedOn:      u.CreatedOn,
		LastModifiedOn: u.LastModifiedOn,
		IsDeleted:      u.IsDeleted,
	}
}

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Entity: entity.Entity{
			CreatedOn:      s.CreatedOn,
			LastModifiedOn: s.LastModifiedOn,
			IsDeleted:      s.IsDeleted,
		},
		Id:          s.Id,
		UserId:      s.UserId,
		Username:    s.Username,
		AccessToken: s.AccessToken,
		Status:      entity.SessionStatus(s.Status),
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:             s.Id,
		UserId:         s.UserId,
		Username:       s.Username,
		AccessToken:    s.AccessToken,
		Status:         string(s.Status),
		CreatedOn:      s.CreatedOn,
		LastModifiedOn: s.LastModifiedOn,
		IsDeleted:      s.IsDeleted,
	}
}
