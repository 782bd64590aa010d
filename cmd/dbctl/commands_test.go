package main

import (
	"context"
	"path/filepath"
	"testing"

	"notetaking-be/internal/model"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/testdb"
	"notetaking-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestDropMigrateSeed(t *testing.T) {
	e := &env{db: testdb.New(t), logger: logger.NewNopLogger()}
	ctx := context.Background()

	require.NoError(t, seedData(ctx, e))
	assert.Equal(t, int64(1), countRows(t, e.db, &model.User{}))

	require.NoError(t, drop(e))
	for _, m := range model.All() {
		assert.False(t, e.db.Migrator().HasTable(m))
	}

	require.NoError(t, migrate(e))
	assert.Zero(t, countRows(t, e.db, &model.Tag{}))

	require.NoError(t, seedData(ctx, e))
	require.NoError(t, seedData(ctx, e))
	assert.Equal(t, int64(1), countRows(t, e.db, &model.User{}))
	assert.Equal(t, int64(4), countRows(t, e.db, &model.Tag{}))
}

func TestCiCommand(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "dbctl.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONNECTION_STRING", dsn)
	t.Setenv("LOG_FILE_PATH", filepath.Join(dir, "app.log"))

	rootCmd.SetArgs([]string{"ci", "--username", "ci-user", "--password", "ci-pass"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	db, err := database.NewGormDB(database.GormConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var user model.User
	require.NoError(t, db.First(&user).Error)
	assert.Equal(t, "ci-user", user.Username)
	assert.Equal(t, int64(4), countRows(t, db, &model.Tag{}))
}
