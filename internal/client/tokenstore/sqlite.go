package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/argentbank/argentctl/internal/common"
	"github.com/argentbank/argentctl/internal/dbx"
)

// SQLiteRepository keeps the credential in a local SQLite key/value table so
// the session survives process restarts.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save writes the credential and the save timestamp in one transaction, so a
// partially written pair is never observable.
func (r *SQLiteRepository) Save(ctx context.Context, credential string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := upsert(ctx, tx, common.CredentialKey, credential); err != nil {
			return err
		}
		return upsert(ctx, tx, "saved_at", time.Now().UTC().Format(time.RFC3339))
	})
}

func (r *SQLiteRepository) Load(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, common.CredentialKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func upsert(ctx context.Context, tx dbx.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}
