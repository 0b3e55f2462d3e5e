package persistence

import (
	"context"
	"database/sql"
	"time"

	"adlytics/domain/model"
	"adlytics/domain/repository"
)

// AccountCacheRepository holds the read-through copy of the backend's
// connected-accounts list, keyed by platform so a reconnect replaces
// the prior entry instead of duplicating it.
type AccountCacheRepository struct{ db *sql.DB }

func NewAccountCacheRepository(db *sql.DB) repository.IAccountCache {
	return &AccountCacheRepository{db: db}
}

// ReplaceAll swaps the cached list wholesale, mirroring the snapshot
// policy: no field-by-field patching.
func (r *AccountCacheRepository) ReplaceAll(ctx context.Context, accounts []model.ConnectedAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM connected_accounts`); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, acc := range accounts {
		if err := upsertAccount(ctx, tx, acc, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *AccountCacheRepository) Upsert(ctx context.Context, account model.ConnectedAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := upsertAccount(ctx, tx, account, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *AccountCacheRepository) Remove(ctx context.Context, accountID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM connected_accounts WHERE id = ?`, accountID)
	return err
}

func (r *AccountCacheRepository) List(ctx context.Context) ([]model.ConnectedAccount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, platform, account_name, account_id, connected_at, last_sync FROM connected_accounts ORDER BY connected_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]model.ConnectedAccount, 0)
	for rows.Next() {
		var acc model.ConnectedAccount
		var platform string
		var lastSync sql.NullTime
		if err := rows.Scan(&acc.ID, &platform, &acc.AccountName, &acc.AccountID, &acc.ConnectedAt, &lastSync); err != nil {
			return nil, err
		}
		acc.Platform = model.Platform(platform)
		if lastSync.Valid {
			t := lastSync.Time
			acc.LastSyncAt = &t
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertAccount(ctx context.Context, tx execer, acc model.ConnectedAccount, now time.Time) error {
	q := `INSERT INTO connected_accounts (id, platform, account_name, account_id, connected_at, last_sync, cached_at)
		  VALUES (?, ?, ?, ?, ?, ?, ?)
		  ON CONFLICT (platform) DO UPDATE SET
			id=excluded.id,
			account_name=excluded.account_name,
			account_id=excluded.account_id,
			connected_at=excluded.connected_at,
			last_sync=excluded.last_sync,
			cached_at=excluded.cached_at`
	var lastSync any
	if acc.LastSyncAt != nil {
		lastSync = acc.LastSyncAt.UTC()
	}
	_, err := tx.ExecContext(ctx, q, acc.ID, string(acc.Platform), acc.AccountName, acc.AccountID, acc.ConnectedAt.UTC(), lastSync, now)
	return err
}
