package unitofwork

import (
	"context"

	"notetaking-be/internal/repository/contract"
)

// UnitOfWork tracks the entities loaded or added through its repositories
// and writes them in one transaction on SaveChanges. It is not safe for
// concurrent use; create one per request.
type UnitOfWork interface {
	Notes() contract.NoteRepository
	Tags() contract.TagRepository
	Users() contract.UserRepository
	Sessions() contract.SessionRepository

	// SaveChanges flushes tracked changes and, once the transaction has
	// committed, publishes the domain events raised since the last commit.
	// It returns the number of rows written.
	SaveChanges(ctx context.Context) (int64, error)
}
