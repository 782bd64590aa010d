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

type UserRepositoryImpl struct {
	db        *gorm.DB
	tracker   *tracking.ChangeTracker
	persister tracking.Persister
	mapper    *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB, tracker *tracking.ChangeTracker) contract.UserRepository {
	return &UserRepositoryImpl{
		db:        db,
		tracker:   tracker,
		persister: NewUserPersister(),
		mapper:    mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Add(user *entity.User) {
	r.tracker.Add(user, r.persister)
}

func (r *UserRepositoryImpl) Remove(user *entity.User) {
	r.tracker.Remove(user, r.persister)
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := applySpecifications(r.db.WithContext(ctx), model.User{}.TableName(), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.tracker.Attach(r.mapper.ToEntity(&m), r.persister).(*entity.User), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var models []*model.User
	query := applySpecifications(r.db.WithContext(ctx), model.User{}.TableName(), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]*entity.User, 0, len(models))
	for _, m := range models {
		users = append(users, r.tracker.Attach(r.mapper.ToEntity(m), r.persister).(*entity.User))
	}
	return users, nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), model.User{}.TableName(), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
