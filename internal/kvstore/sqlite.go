package kvstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkorotovs/pocketvine/internal/dbx"
)

// SQLiteRepository implements Repository over a single kv table.
// A maxBytes of 0 disables the quota.
type SQLiteRepository struct {
	db       *sql.DB
	maxBytes int64
}

// NewSQLiteRepository returns a repository bound to db with the given quota.
func NewSQLiteRepository(db *sql.DB, maxBytes int64) *SQLiteRepository {
	return &SQLiteRepository{db: db, maxBytes: maxBytes}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

// Set upserts the value inside a transaction so the quota check and the write
// observe the same state.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if r.maxBytes > 0 {
			var others int64
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv WHERE key != ?`, key).Scan(&others)
			if err != nil {
				return fmt.Errorf("failed to measure kv usage: %w", err)
			}
			if others+int64(len(value)) > r.maxBytes {
				return fmt.Errorf("kv[%s]: %d bytes over %d: %w",
					key, others+int64(len(value))-r.maxBytes, r.maxBytes, ErrQuotaExceeded)
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to set kv[%s]: %w", key, err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv`)
	if err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UsedBytes(ctx context.Context) (int64, error) {
	var used int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv`).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("failed to measure kv usage: %w", err)
	}
	return used, nil
}
