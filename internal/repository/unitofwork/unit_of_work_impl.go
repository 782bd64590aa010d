package unitofwork

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/repository/contract"
	"notetaking-be/internal/repository/implementation"
	"notetaking-be/internal/repository/tracking"
	"notetaking-be/pkg/events"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

const module = "UNIT_OF_WORK"

type UnitOfWorkImpl struct {
	db        *gorm.DB
	tracker   *tracking.ChangeTracker
	publisher events.Publisher
	logger    logger.ILogger
	now       func() time.Time

	notes    contract.NoteRepository
	tags     contract.TagRepository
	users    contract.UserRepository
	sessions contract.SessionRepository
}

func NewUnitOfWork(db *gorm.DB, publisher events.Publisher, log logger.ILogger) UnitOfWork {
	tracker := tracking.NewChangeTracker()
	return &UnitOfWorkImpl{
		db:        db,
		tracker:   tracker,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
		notes:     implementation.NewNoteRepository(db, tracker),
		tags:      implementation.NewTagRepository(db, tracker),
		users:     implementation.NewUserRepository(db, tracker),
		sessions:  implementation.NewSessionRepository(db, tracker),
	}
}

// Repository Accessors

func (u *UnitOfWorkImpl) Notes() contract.NoteRepository {
	return u.notes
}

func (u *UnitOfWorkImpl) Tags() contract.TagRepository {
	return u.tags
}

func (u *UnitOfWorkImpl) Users() contract.UserRepository {
	return u.users
}

func (u *UnitOfWorkImpl) Sessions() contract.SessionRepository {
	return u.sessions
}

func (u *UnitOfWorkImpl) SaveChanges(ctx context.Context) (int64, error) {
	ctx, span := otel.Tracer("notetaking-be/unitofwork").Start(ctx, "UnitOfWork.SaveChanges")
	defer span.End()

	u.tracker.DetectChanges()

	// Holders are captured before the flush; ids assigned by the insert are
	// visible to their events once published.
	holders := u.tracker.EntriesWithEvents()

	now := u.now().UTC()
	entries := u.tracker.Entries()
	for _, entry := range entries {
		if entry.State == tracking.Added || entry.State == tracking.Modified {
			base := entry.Entity.Base()
			if base.CreatedOn.IsZero() {
				base.CreatedOn = now
			}
			base.LastModifiedOn = now
		}
	}
	for _, entry := range entries {
		if entry.State == tracking.Deleted {
			entry.State = tracking.Modified
			entry.Entity.Base().IsDeleted = true
		}
	}

	affected, err := u.flush(ctx, entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		u.logger.Warn(module, "SaveChanges rolled back", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, err
	}
	u.tracker.AcceptChanges()
	span.SetAttributes(attribute.Int64("db.rows_affected", affected))

	if err := u.publish(ctx, holders); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return affected, err
	}

	u.logger.Debug(module, "SaveChanges committed", map[string]interface{}{
		"affected": affected,
		"events":   len(holders),
	})
	return affected, nil
}

// flush writes every Added and Modified entry in one transaction. Keys
// generated by the store are copied onto entities only after commit.
func (u *UnitOfWorkImpl) flush(ctx context.Context, entries []*tracking.Entry) (int64, error) {
	if !u.tracker.HasChanges() {
		return 0, nil
	}

	var affected int64
	var assigns []func()
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			switch entry.State {
			case tracking.Added:
				rows, assign, err := entry.Persister.Insert(tx, entry.Entity)
				if err != nil {
					return err
				}
				affected += rows
				assigns = append(assigns, assign)
			case tracking.Modified:
				rows, err := entry.Persister.Update(tx, entry.Entity, entry.Original())
				if err != nil {
					return err
				}
				affected += rows
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, assign := range assigns {
		assign()
	}
	return affected, nil
}

// publish drains the captured holders before delivering anything, so a
// failing subscriber leaves no event queued for a later commit.
func (u *UnitOfWorkImpl) publish(ctx context.Context, holders []*tracking.Entry) error {
	var pending []events.Event
	for _, entry := range holders {
		base := entry.Entity.Base()
		pending = append(pending, base.DomainEvents()...)
		base.ClearEvents()
	}

	for _, evt := range pending {
		if err := u.publisher.Publish(ctx, evt); err != nil {
			var subErr *events.SubscriberError
			if !errors.As(err, &subErr) {
				err = &events.SubscriberError{EventType: evt.EventType(), Err: err}
			}
			u.logger.Error(module, "Domain event subscriber failed", map[string]interface{}{
				"event": evt.EventType(),
				"error": err.Error(),
			})
			return fmt.Errorf("publish %s: %w", evt.EventType(), err)
		}
	}
	return nil
}
