package implementation

import (
	"context"
	"errors"

	"notetaking-be/internal/entity"
	"notetaking-be/internal/mapper"
	"notetaking-be/internal/model"
	"notetaking-be/internal/repository/contract"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/tracking"

	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db        *gorm.DB
	tracker   *tracking.ChangeTracker
	persister tracking.Persister
	mapper    *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB, tracker *tracking.ChangeTracker) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:        db,
		tracker:   tracker,
		persister: NewSessionPersister(),
		mapper:    mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) Add(session *entity.Session) {
	r.tracker.Add(session, r.persister)
}

func (r *SessionRepositoryImpl) Remove(session *entity.Session) {
	r.tracker.Remove(session, r.persister)
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	var m model.Session
	query := applySpecifications(r.db.WithContext(ctx), model.Session{}.TableName(), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.tracker.Attach(r.mapper.ToEntity(&m), r.persister).(*entity.Session), nil
}

func (r *SessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	var models []*model.Session
	query := applySpecifications(r.db.WithContext(ctx), model.Session{}.TableName(), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	sessions := make([]*entity.Session, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, r.tracker.Attach(r.mapper.ToEntity(m), r.persister).(*entity.Session))
	}
	return sessions, nil
}
