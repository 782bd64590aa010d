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

type TagRepositoryImpl struct {
	db        *gorm.DB
	tracker   *tracking.ChangeTracker
	persister tracking.Persister
	mapper    *mapper.TagMapper
}

func NewTagRepository(db *gorm.DB, tracker *tracking.ChangeTracker) contract.TagRepository {
	return &TagRepositoryImpl{
		db:        db,
		tracker:   tracker,
		persister: NewTagPersister(),
		mapper:    mapper.NewTagMapper(),
	}
}

func (r *TagRepositoryImpl) query(ctx context.Context, specs ...specification.Specification) *gorm.DB {
	db := r.db.WithContext(ctx).Scopes(scope.WithTagNotes)
	return applySpecifications(db, model.Tag{}.TableName(), specs...)
}

func (r *TagRepositoryImpl) track(m *model.Tag) *entity.Tag {
	return r.tracker.Attach(r.mapper.ToEntity(m), r.persister).(*entity.Tag)
}

func (r *TagRepositoryImpl) Add(tag *entity.Tag) {
	r.tracker.Add(tag, r.persister)
}

func (r *TagRepositoryImpl) Remove(tag *entity.Tag) {
	r.tracker.Remove(tag, r.persister)
}

func (r *TagRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error) {
	var m model.Tag
	if err := r.query(ctx, specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.track(&m), nil
}

func (r *TagRepositoryImpl) FindSingle(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error) {
	var models []*model.Tag
	if err := r.query(ctx, specs...).Limit(2).Find(&models).Error; err != nil {
		return nil, err
	}
	if len(models) != 1 {
		return nil, fmt.Errorf("tag: %d matching rows: %w", len(models), apperror.ErrNotFound)
	}
	return r.track(models[0]), nil
}

func (r *TagRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error) {
	var models []*model.Tag
	if err := r.query(ctx, specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	tags := make([]*entity.Tag, 0, len(models))
	for _, m := range models {
		tags = append(tags, r.track(m))
	}
	return tags, nil
}

func (r *TagRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Tag{}), model.Tag{}.TableName(), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
