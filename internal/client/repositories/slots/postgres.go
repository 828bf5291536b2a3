package slots

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var postgresQueries = queries{
	get: `SELECT value FROM slots WHERE key = $1`,
	upsert: `
		INSERT INTO slots (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`,
	delete: `DELETE FROM slots WHERE key = $1`,
	list:   `SELECT key, value FROM slots`,
	clear:  `DELETE FROM slots`,
}

// PostgresRepository keeps slots in a PostgreSQL table, so several clients
// can share one directory.
type PostgresRepository struct {
	sqlRepository
}

// NewPostgresRepository wraps a handle opened with the "pgx" driver.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: postgresQueries}}
}
