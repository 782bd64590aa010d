package contract

import (
	"context"

	"notetaking-be/internal/entity"
	"notetaking-be/internal/repository/specification"
)

// NoteRepository is the unit of work's tracked note collection. Loaded notes
// come with their live tags. Writes happen on SaveChanges.
type NoteRepository interface {
	Add(note *entity.Note)
	Remove(note *entity.Note)
	// FindOne returns nil, nil when nothing matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	// FindSingle fails with apperror.ErrNotFound unless exactly one row matches.
	FindSingle(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
