// Package sqlite implements the repository interfaces on SQLite.
//
// SQLite is an embedded database — a single file, no separate server to
// run. We use modernc.org/sqlite rather than mattn/go-sqlite3 because it
// is a pure Go translation of SQLite: no CGo, no C compiler, trivial
// cross-compilation. The blank import below registers it with
// database/sql as the driver named "sqlite".
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. The server owns one DB for its whole lifetime and closes it
// on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens the database file at dbPath, configures it, and creates the
// schema if it does not exist yet. Any failure here is fatal to the
// caller — the service must not come up without working storage.
func New(dbPath string) (*DB, error) {
	// The pragmas ride in the DSN so the driver applies them to EVERY
	// pooled connection, not just the one that happened to run an Exec:
	//   - WAL lets reads proceed while a write is in progress
	//   - foreign_keys defaults to OFF in SQLite; the reviews table relies
	//     on ON DELETE CASCADE, which is silently ignored without it
	//   - busy_timeout makes a writer wait for a held lock instead of
	//     failing immediately with SQLITE_BUSY
	//   - _txlock=immediate takes the write lock at BEGIN, so a
	//     transaction that reads before it writes (the book update path)
	//     holds the row from the first statement — a concurrent writer
	//     queues behind it rather than committing in between
	dsn := fmt.Sprintf(
		"file:%s?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		dbPath,
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open only creates the pool; Ping forces a real connection so a
	// bad path or permissions problem surfaces now, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this right after
// New so the WAL is flushed and the file lock released on every exit path.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS makes it
// idempotent — safe to run on every startup against an existing file.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			title          TEXT NOT NULL,
			author         TEXT NOT NULL,
			genre          TEXT NOT NULL DEFAULT '',
			year_published INTEGER NOT NULL DEFAULT 0,
			summary        TEXT NOT NULL DEFAULT '',
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating books table: %w", err)
	}

	// ON DELETE CASCADE makes the database delete a book's reviews in the
	// same statement that deletes the book — no application-level cleanup,
	// no window where orphaned reviews exist.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS reviews (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			book_id     INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			user_id     INTEGER NOT NULL,
			review_text TEXT NOT NULL DEFAULT '',
			rating      INTEGER NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_reviews_book_id ON reviews(book_id);
	`)
	if err != nil {
		return fmt.Errorf("creating reviews table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			disabled      INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	return nil
}
