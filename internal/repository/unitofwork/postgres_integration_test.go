package unitofwork_test

import (
	"context"
	"os"
	"testing"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/model"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/pkg/database"
	"notetaking-be/pkg/events"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The database behind TEST_DB_CONNECTION_STRING is dropped and recreated.
func postgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDB(database.GormConfig{Driver: "postgres", DSN: dsn})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(model.All()...))
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func TestPostgresConcurrentEdits(t *testing.T) {
	db := postgresDB(t)
	ctx := context.Background()
	tag := seedTag(t, db, "Angular")
	note := seedNote(t, db, "Shared", tag)

	first := newUnitOfWork(db, events.NewDispatcher())
	second := newUnitOfWork(db, events.NewDispatcher())

	a, err := first.Notes().FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	b, err := second.Notes().FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)

	require.NoError(t, a.Update("First writer", "", a.Tags(), 1))
	require.NoError(t, b.Update("Second writer", "", nil, 1))

	_, err = first.SaveChanges(ctx)
	require.NoError(t, err)

	_, err = second.SaveChanges(ctx)
	assert.ErrorIs(t, err, apperror.ErrConcurrency)

	var stored model.Note
	require.NoError(t, db.First(&stored, note.Id).Error)
	assert.Equal(t, "First writer", stored.Title)
	assert.Equal(t, 2, stored.Version)

	var links int64
	require.NoError(t, db.Model(&model.NoteTag{}).Where("note_id = ?", note.Id).Count(&links).Error)
	assert.Equal(t, int64(1), links, "rolled back retag leaves the links alone")
}

func TestPostgresSoftDeleteScope(t *testing.T) {
	db := postgresDB(t)
	ctx := context.Background()
	tag := seedTag(t, db, "Routing")

	uow := newUnitOfWork(db, events.NewDispatcher())
	loaded, err := uow.Tags().FindOne(ctx, specification.ByID{ID: tag.Id})
	require.NoError(t, err)
	uow.Tags().Remove(loaded)
	_, err = uow.SaveChanges(ctx)
	require.NoError(t, err)

	reader := newUnitOfWork(db, events.NewDispatcher())
	gone, err := reader.Tags().FindOne(ctx, specification.ByID{ID: tag.Id})
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := reader.Tags().FindOne(ctx, specification.ByID{ID: tag.Id}, specification.IncludeDeleted{})
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.IsDeleted)
}
