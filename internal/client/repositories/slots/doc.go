// Package slots provides the persistence port behind the contact book: a
// flat key/value space of named slots (users, currentUser, loggedIn, ...).
//
// # Backends
//
//   - SQLiteRepository   — local file, the default; schema via goose.
//   - PostgresRepository — shared database through the pgx stdlib driver.
//   - RedisRepository    — shared in-memory store, keys namespaced by prefix.
//   - S3Repository       — one object per slot in a bucket (MinIO works too).
//   - MemoryRepository   — process-local, for tests and throwaway sessions.
//
// Open picks a backend from config. Values are opaque bytes here; the JSON
// encoding lives one layer up, in the store package.
//
// # Concurrency
//
// All backends are safe for concurrent use inside one process. Across
// processes sharing a backend, writes are last-write-wins.
package slots
