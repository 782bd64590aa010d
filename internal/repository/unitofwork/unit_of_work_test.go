package unitofwork_test

import (
	"context"
	"errors"
	"testing"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/domainevent"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/model"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/testdb"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recorder struct {
	dispatcher *events.Dispatcher
	published  []events.BaseEvent
}

func newRecorder() *recorder {
	r := &recorder{dispatcher: events.NewDispatcher()}
	for _, eventType := range domainevent.Types() {
		r.dispatcher.Subscribe(eventType, func(ctx context.Context, evt events.Event) error {
			r.published = append(r.published, events.Envelope(evt))
			return nil
		})
	}
	return r
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, evt events.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func newUnitOfWork(db *gorm.DB, publisher events.Publisher) unitofwork.UnitOfWork {
	return unitofwork.NewUnitOfWork(db, publisher, logger.NewNopLogger())
}

func seedTag(t *testing.T, db *gorm.DB, name string) *entity.Tag {
	t.Helper()
	uow := newUnitOfWork(db, events.NewDispatcher())
	tag := &entity.Tag{}
	tag.Update(name)
	uow.Tags().Add(tag)
	_, err := uow.SaveChanges(context.Background())
	require.NoError(t, err)
	return tag
}

func seedNote(t *testing.T, db *gorm.DB, title string, tags ...*entity.Tag) *entity.Note {
	t.Helper()
	uow := newUnitOfWork(db, events.NewDispatcher())
	note := &entity.Note{}
	require.NoError(t, note.Update(title, "body", tags, 0))
	uow.Notes().Add(note)
	_, err := uow.SaveChanges(context.Background())
	require.NoError(t, err)
	return note
}

func TestSaveChangesInsertsAndPublishes(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	rec := newRecorder()

	tagUow := newUnitOfWork(db, rec.dispatcher)
	tag := &entity.Tag{}
	tag.Update("Angular")
	tag.RaiseDomainEvent(domainevent.NewTagSaved(tag))
	tagUow.Tags().Add(tag)

	affected, err := tagUow.SaveChanges(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, uint(1), tag.Id)
	assert.False(t, tag.CreatedOn.IsZero())
	assert.Equal(t, tag.CreatedOn, tag.LastModifiedOn)
	assert.False(t, tag.HasDomainEvents())

	noteUow := newUnitOfWork(db, rec.dispatcher)
	loaded, err := noteUow.Tags().FindOne(ctx, specification.ByID{ID: tag.Id})
	require.NoError(t, err)
	require.NotNil(t, loaded)

	note := &entity.Note{}
	require.NoError(t, note.Update("First note", "hello", []*entity.Tag{loaded}, 0))
	note.RaiseDomainEvent(domainevent.NewNoteSaved(note))
	noteUow.Notes().Add(note)

	affected, err = noteUow.SaveChanges(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), affected, "note row plus one join row")
	assert.Equal(t, uint(1), note.Id)
	assert.Equal(t, uint(1), note.NoteTags[0].NoteId)

	require.Len(t, rec.published, 2)
	assert.Equal(t, domainevent.TagSavedType, rec.published[0].Type)
	assert.Equal(t, domainevent.NoteSavedType, rec.published[1].Type)
	assert.Equal(t, uint(1), rec.published[1].Data["note_id"])

	var stored model.Note
	require.NoError(t, db.Preload("NoteTags").First(&stored, note.Id).Error)
	assert.Equal(t, "first-note", stored.Slug)
	assert.Equal(t, 1, stored.Version)
	require.Len(t, stored.NoteTags, 1)
	assert.Equal(t, tag.Id, stored.NoteTags[0].TagId)
}

func TestSaveChangesDetectsModifications(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	angular := seedTag(t, db, "Angular")
	golang := seedTag(t, db, "Go")
	seeded := seedNote(t, db, "Routing", angular)

	uow := newUnitOfWork(db, events.NewDispatcher())
	note, err := uow.Notes().FindOne(ctx, specification.ByID{ID: seeded.Id})
	require.NoError(t, err)
	tags, err := uow.Tags().FindAll(ctx, specification.ByIDs{IDs: []uint{golang.Id}})
	require.NoError(t, err)

	require.NoError(t, note.Update("Routing in Go", "", tags, note.Version))
	affected, err := uow.SaveChanges(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), affected, "note row, one unlinked and one linked row")

	var links []model.NoteTag
	require.NoError(t, db.Where("note_id = ?", seeded.Id).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, golang.Id, links[0].TagId)

	t.Run("unchanged entities are not written", func(t *testing.T) {
		again := newUnitOfWork(db, events.NewDispatcher())
		_, err := again.Notes().FindAll(ctx)
		require.NoError(t, err)

		affected, err := again.SaveChanges(ctx)

		require.NoError(t, err)
		assert.Zero(t, affected)
	})
}

func TestSaveChangesRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	seeded := seedNote(t, db, "Original")
	rec := newRecorder()

	first := newUnitOfWork(db, rec.dispatcher)
	second := newUnitOfWork(db, rec.dispatcher)
	a, err := first.Notes().FindOne(ctx, specification.ByID{ID: seeded.Id})
	require.NoError(t, err)
	b, err := second.Notes().FindOne(ctx, specification.ByID{ID: seeded.Id})
	require.NoError(t, err)

	require.NoError(t, a.Update("From first", "", nil, 1))
	a.RaiseDomainEvent(domainevent.NewNoteSaved(a))
	require.NoError(t, b.Update("From second", "", nil, 1))
	b.RaiseDomainEvent(domainevent.NewNoteSaved(b))

	_, err = first.SaveChanges(ctx)
	require.NoError(t, err)

	_, err = second.SaveChanges(ctx)

	assert.ErrorIs(t, err, apperror.ErrConcurrency)
	assert.True(t, b.HasDomainEvents(), "failed commit keeps events queued")
	require.Len(t, rec.published, 1)
	assert.Equal(t, "From first", rec.published[0].Data["title"])

	var stored model.Note
	require.NoError(t, db.First(&stored, seeded.Id).Error)
	assert.Equal(t, "From first", stored.Title)
	assert.Equal(t, 2, stored.Version)
}

func TestSaveChangesSoftDeletes(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	tag := seedTag(t, db, "Angular")
	seeded := seedNote(t, db, "Doomed", tag)

	uow := newUnitOfWork(db, events.NewDispatcher())
	note, err := uow.Notes().FindOne(ctx, specification.ByID{ID: seeded.Id})
	require.NoError(t, err)
	uow.Notes().Remove(note)

	affected, err := uow.SaveChanges(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.True(t, note.IsDeleted)

	check := newUnitOfWork(db, events.NewDispatcher())
	visible, err := check.Notes().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, visible)

	all, err := check.Notes().Count(ctx, specification.IncludeDeleted{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), all)

	missing, err := check.Notes().FindOne(ctx, specification.ByID{ID: seeded.Id})
	require.NoError(t, err)
	assert.Nil(t, missing)

	var stored model.Note
	require.NoError(t, db.First(&stored, seeded.Id).Error)
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, 1, stored.Version)
}

func TestReadsDropLinksToDeletedTags(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	kept := seedTag(t, db, "Kept")
	gone := seedTag(t, db, "Gone")
	seeded := seedNote(t, db, "Linked", kept, gone)

	uow := newUnitOfWork(db, events.NewDispatcher())
	tag, err := uow.Tags().FindOne(ctx, specification.ByID{ID: gone.Id})
	require.NoError(t, err)
	uow.Tags().Remove(tag)
	_, err = uow.SaveChanges(ctx)
	require.NoError(t, err)

	read := newUnitOfWork(db, events.NewDispatcher())
	note, err := read.Notes().FindOne(ctx, specification.ByID{ID: seeded.Id})
	require.NoError(t, err)
	require.NotNil(t, note)
	require.Len(t, note.Tags(), 1)
	assert.Equal(t, "Kept", note.Tags()[0].Name)
}

func TestFindSingle(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	seedNote(t, db, "Twice")
	seedNote(t, db, "Twice")
	seedNote(t, db, "Once")

	uow := newUnitOfWork(db, events.NewDispatcher())

	note, err := uow.Notes().FindSingle(ctx, specification.BySlug{Slug: "once"})
	require.NoError(t, err)
	assert.Equal(t, "Once", note.Title)

	_, err = uow.Notes().FindSingle(ctx, specification.BySlug{Slug: "twice"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = uow.Notes().FindSingle(ctx, specification.BySlug{Slug: "never"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestIdentityMap(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	seeded := seedTag(t, db, "Angular")

	uow := newUnitOfWork(db, events.NewDispatcher())
	a, err := uow.Tags().FindOne(ctx, specification.ByID{ID: seeded.Id})
	require.NoError(t, err)
	b, err := uow.Tags().FindSingle(ctx, specification.BySlug{Slug: "angular"})
	require.NoError(t, err)

	assert.Same(t, a, b)
}

func TestFailedCommitPublishesLater(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)

	failing := true
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_insert", func(tx *gorm.DB) {
		if failing {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	publisher := new(mockPublisher)
	uow := newUnitOfWork(db, publisher)
	tag := &entity.Tag{}
	tag.Update("Retry")
	tag.RaiseDomainEvent(domainevent.NewTagSaved(tag))
	uow.Tags().Add(tag)

	_, err := uow.SaveChanges(ctx)

	require.Error(t, err)
	assert.Zero(t, tag.Id)
	assert.True(t, tag.HasDomainEvents())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)

	failing = false
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(evt events.Event) bool {
		return evt.EventType() == domainevent.TagSavedType
	})).Return(nil).Once()

	affected, err := uow.SaveChanges(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NotZero(t, tag.Id)
	publisher.AssertExpectations(t)

	// nothing left to publish
	_, err = uow.SaveChanges(ctx)
	require.NoError(t, err)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSubscriberFailureSurfacesAfterCommit(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	boom := errors.New("subscriber down")

	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(boom).Once()

	uow := newUnitOfWork(db, publisher)
	tag := &entity.Tag{}
	tag.Update("Loud")
	tag.RaiseDomainEvent(domainevent.NewTagSaved(tag))
	tag.RaiseDomainEvent(domainevent.NewTagSaved(tag))
	uow.Tags().Add(tag)

	_, err := uow.SaveChanges(ctx)

	var subErr *events.SubscriberError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, domainevent.TagSavedType, subErr.EventType)
	assert.ErrorIs(t, err, boom)
	assert.False(t, tag.HasDomainEvents())
	publisher.AssertNumberOfCalls(t, "Publish", 1)

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the write is committed before publishing")
}
