package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/argentbank/argentctl/internal/client/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local SQLite database at dsn,
// applies migrations, and returns a credential repository backed by it.
// The caller owns the returned *sql.DB and should close it on shutdown.
func InitDatabase(ctx context.Context, dsn string) (*SQLiteRepository, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database %q: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return NewSQLiteRepository(db), db, nil
}
