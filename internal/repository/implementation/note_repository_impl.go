package implementation

import (
	"context"
	"errors"
	"fmt"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/mapper"
	"notetaking-be/internal/model"
	"notetaking-be/internal/repository/contract"
	"notetaking-be/internal/repository/scope"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/tracking"

	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db        *gorm.DB
	tracker   *tracking.ChangeTracker
	persister tracking.Persister
	mapper    *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB, tracker *tracking.ChangeTracker) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:        db,
		tracker:   tracker,
		persister: NewNotePersister(),
		mapper:    mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) query(ctx context.Context, specs ...specification.Specification) *gorm.DB {
	db := r.db.WithContext(ctx).Scopes(scope.WithNoteTags)
	return applySpecifications(db, model.Note{}.TableName(), specs...)
}

func (r *NoteRepositoryImpl) track(m *model.Note) *entity.Note {
	return r.tracker.Attach(r.mapper.ToEntity(m), r.persister).(*entity.Note)
}

func (r *NoteRepositoryImpl) Add(note *entity.Note) {
	r.tracker.Add(note, r.persister)
}

func (r *NoteRepositoryImpl) Remove(note *entity.Note) {
	r.tracker.Remove(note, r.persister)
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	if err := r.query(ctx, specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.track(&m), nil
}

func (r *NoteRepositoryImpl) FindSingle(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var models []*model.Note
	if err := r.query(ctx, specs...).Limit(2).Find(&models).Error; err != nil {
		return nil, err
	}
	if len(models) != 1 {
		return nil, fmt.Errorf("note: %d matching rows: %w", len(models), apperror.ErrNotFound)
	}
	return r.track(models[0]), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	if err := r.query(ctx, specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	notes := make([]*entity.Note, 0, len(models))
	for _, m := range models {
		notes = append(notes, r.track(m))
	}
	return notes, nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), model.Note{}.TableName(), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
