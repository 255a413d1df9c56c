package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *Store {
	t.Helper()
	db, err := Open(Config{Driver: "sqlite", DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return New(db)
}

func TestMigratePostgresRunsGoose(t *testing.T) {
	st := openSQLite(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var calledDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		calledDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), st.DB, "postgres"))
	assert.Equal(t, ".", calledDir)
}

func TestMigratePropagatesGooseError(t *testing.T) {
	st := openSQLite(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	boom := errors.New("boom")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}

	assert.ErrorIs(t, Migrate(context.Background(), st.DB, "postgres"), boom)
}

func TestMigrateOtherDriversAutoMigrate(t *testing.T) {
	st := openSQLite(t)
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		t.Fatalf("goose must not run for sqlite")
		return nil
	}

	require.NoError(t, Migrate(context.Background(), st.DB, "sqlite"))
	assert.True(t, st.DB.Migrator().HasTable("accounts"))
	assert.True(t, st.DB.Migrator().HasTable("messages"))
}
