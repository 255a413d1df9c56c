// Package storetest opens throwaway SQLite databases for package tests.
package storetest

import (
	"context"
	"fmt"
	"testing"

	"truefeedback/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory database private to t. The pool is capped
// at one connection so the shared-cache database outlives individual queries
// and concurrent writers queue instead of failing with SQLITE_LOCKED.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := store.Open(store.Config{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := store.Migrate(context.Background(), db, "sqlite"); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}
