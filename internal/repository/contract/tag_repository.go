package contract

import (
	"context"

	"notetaking-be/internal/entity"
	"notetaking-be/internal/repository/specification"
)

type TagRepository interface {
	Add(tag *entity.Tag)
	Remove(tag *entity.Tag)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindSingle(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
