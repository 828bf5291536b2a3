package slots

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

var sqliteQueries = queries{
	get: `SELECT value FROM slots WHERE key = ?`,
	upsert: `
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`,
	delete: `DELETE FROM slots WHERE key = ?`,
	list:   `SELECT key, value FROM slots`,
	clear:  `DELETE FROM slots`,
}

// SQLiteRepository keeps slots in a local SQLite file.
type SQLiteRepository struct {
	sqlRepository
}

// NewSQLiteRepository wraps an open SQLite handle. The slots table must
// exist (see RunMigrations).
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqliteQueries}}
}
