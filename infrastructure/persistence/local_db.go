package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewLocalDB opens (creating if needed) the durable client store. It
// lives in a single sqlite file so the session survives process
// restarts, including the full restart inherent in the OAuth redirect.
func NewLocalDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	// The store has exactly two writers (session store, account
	// cache); a single connection avoids sqlite busy errors.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping local store: %w", err)
	}
	return db, nil
}

// EnsureLocalSchema creates the client-store tables when missing.
func EnsureLocalSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS credentials (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS connected_accounts (
			id INTEGER NOT NULL,
			platform TEXT PRIMARY KEY,
			account_name TEXT NOT NULL,
			account_id TEXT NOT NULL,
			connected_at TIMESTAMP NOT NULL,
			last_sync TIMESTAMP,
			cached_at TIMESTAMP NOT NULL
		)`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("ensure local schema: %w", err)
		}
	}
	return nil
}
