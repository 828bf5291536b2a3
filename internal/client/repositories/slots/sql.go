package slots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
)

// queries holds the dialect-specific statements of the slots table.
type queries struct {
	get    string
	upsert string
	delete string
	list   string
	clear  string
}

// sqlRepository implements Repository over database/sql; the SQLite and
// Postgres repositories differ only in placeholder syntax.
type sqlRepository struct {
	db *sql.DB
	q  queries
}

func (r *sqlRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, r.db, r.q, key)
}

func get(ctx context.Context, db dbx.DBTX, q queries, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return value, nil
}

func (r *sqlRepository) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, r.db, r.q, key, value)
}

func set(ctx context.Context, db dbx.DBTX, q queries, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := db.ExecContext(ctx, q.upsert, key, value); err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", key, err)
	}
	return nil
}

func (r *sqlRepository) Delete(ctx context.Context, key string) error {
	return del(ctx, r.db, r.q, key)
}

func del(ctx context.Context, db dbx.DBTX, q queries, key string) error {
	if _, err := db.ExecContext(ctx, q.delete, key); err != nil {
		return fmt.Errorf("failed to delete slot[%s]: %w", key, err)
	}
	return nil
}

func (r *sqlRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.q.clear); err != nil {
		return fmt.Errorf("failed to clear slots: %w", err)
	}
	return nil
}

func (r *sqlRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slot rows: %w", err)
	}

	return result, nil
}

// Apply writes sets and deletes in a single transaction.
func (r *sqlRepository) Apply(ctx context.Context, sets map[string][]byte, deletes []string) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range sets {
			if err := set(ctx, tx, r.q, k, v); err != nil {
				return err
			}
		}
		for _, k := range deletes {
			if err := del(ctx, tx, r.q, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqlRepository) Close() error {
	return r.db.Close()
}
