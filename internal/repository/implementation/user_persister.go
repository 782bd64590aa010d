package implementation

import (
	"fmt"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/mapper"
	"notetaking-be/internal/model"
	"notetaking-be/internal/repository/tracking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userPersister struct {
	mapper *mapper.UserMapper
}

func NewUserPersister() tracking.Persister {
	return &userPersister{mapper: mapper.NewUserMapper()}
}

func (p *userPersister) Table() string {
	return model.User{}.TableName()
}

func (p *userPersister) Key(e tracking.Trackable) (interface{}, bool) {
	user := e.(*entity.User)
	return user.Id, user.Id != 0
}

func (p *userPersister) Snapshot(e tracking.Trackable) interface{} {
	return p.mapper.ToModel(e.(*entity.User))
}

func (p *userPersister) Insert(tx *gorm.DB, e tracking.Trackable) (int64, func(), error) {
	user := e.(*entity.User)
	m := p.mapper.ToModel(user)

	res := tx.Create(m)
	if res.Error != nil {
		return 0, nil, fmt.Errorf("insert user: %w", res.Error)
	}
	return res.RowsAffected, func() { user.Id = m.Id }, nil
}

func (p *userPersister) Update(tx *gorm.DB, e tracking.Trackable, _ interface{}) (int64, error) {
	m := p.mapper.ToModel(e.(*entity.User))

	res := tx.Model(&model.User{}).
		Where("id = ?", m.Id).
		Updates(map[string]interface{}{
			"username":         m.Username,
			"password_hash":    m.PasswordHash,
			"created_on":       m.CreatedOn,
			"last_modified_on": m.LastModifiedOn,
			"is_deleted":       m.IsDeleted,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update user %d: %w", m.Id, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("user %d vanished: %w", m.Id, apperror.ErrConcurrency)
	}
	return res.RowsAffected, nil
}

type sessionPersister struct {
	mapper *mapper.SessionMapper
}

func NewSessionPersister() tracking.Persister {
	return &sessionPersister{mapper: mapper.NewSessionMapper()}
}

func (p *sessionPersister) Table() string {
	return model.Session{}.TableName()
}

func (p *sessionPersister) Key(e tracking.Trackable) (interface{}, bool) {
	session := e.(*entity.Session)
	return session.Id, session.Id != uuid.Nil
}

func (p *sessionPersister) Snapshot(e tracking.Trackable) interface{} {
	return p.mapper.ToModel(e.(*entity.Session))
}

// Insert assigns the id client-side when the caller did not.
func (p *sessionPersister) Insert(tx *gorm.DB, e tracking.Trackable) (int64, func(), error) {
	session := e.(*entity.Session)
	m := p.mapper.ToModel(session)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}

	res := tx.Create(m)
	if res.Error != nil {
		return 0, nil, fmt.Errorf("insert session: %w", res.Error)
	}
	return res.RowsAffected, func() { session.Id = m.Id }, nil
}

func (p *sessionPersister) Update(tx *gorm.DB, e tracking.Trackable, _ interface{}) (int64, error) {
	m := p.mapper.ToModel(e.(*entity.Session))

	res := tx.Model(&model.Session{}).
		Where("id = ?", m.Id).
		Updates(map[string]interface{}{
			"access_token":     m.AccessToken,
			"status":           m.Status,
			"created_on":       m.CreatedOn,
			"last_modified_on": m.LastModifiedOn,
			"is_deleted":       m.IsDeleted,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update session %s: %w", m.Id, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("session %s vanished: %w", m.Id, apperror.ErrConcurrency)
	}
	return res.RowsAffected, nil
}
