package unitofwork

import (
	"context"

	"notetaking-be/internal/pkg/logger"
	"notetaking-be/pkg/events"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db        *gorm.DB
	publisher events.Publisher
	logger    logger.ILogger
}

func NewRepositoryFactory(db *gorm.DB, publisher events.Publisher, logger logger.ILogger) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

// NewUnitOfWork returns a fresh, short lived unit of work bound to the
// shared connection pool.
func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db.WithContext(ctx), f.publisher, f.logger)
}
