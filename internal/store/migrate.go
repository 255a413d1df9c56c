package store

import (
	"context"
	"database/sql"
	"fmt"

	"truefeedback/internal/store/migrations"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate brings the schema up to date. Postgres runs the embedded goose
// migrations; the other drivers fall back to gorm's AutoMigrate.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	if driver != "" && driver != "postgres" {
		return New(db).AutoMigrate(ctx)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("store: underlying sql.DB: %w", err)
	}
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("store: goose up: %w", err)
	}
	return nil
}
