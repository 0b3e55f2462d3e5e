package persistence

import (
	"context"
	"database/sql"
	"time"

	"adlytics/domain/repository"
)

// tokenKey is the single well-known key the bearer token lives under.
const tokenKey = "token"

type TokenRepository struct{ db *sql.DB }

func NewTokenRepository(db *sql.DB) repository.ITokenStore {
	return &TokenRepository{db: db}
}

// Get returns the stored token, or "" when no session is persisted.
func (r *TokenRepository) Get(ctx context.Context) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, tokenKey)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *TokenRepository) Put(ctx context.Context, token string) error {
	q := `INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		  ON CONFLICT (key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`
	_, err := r.db.ExecContext(ctx, q, tokenKey, token, time.Now().UTC())
	return err
}

// Delete removes the token. Deleting an absent token is not an error,
// which keeps logout idempotent.
func (r *TokenRepository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, tokenKey)
	return err
}
