package repository

import (
	"context"

	"adlytics/domain/model"
)

// ITokenStore is the durable client storage for the bearer token.
// A single opaque string lives under one well-known key; absence of
// the key means no session.
type ITokenStore interface {
	Get(ctx context.Context) (string, error)
	Put(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// IAccountCache is the local read-through copy of the backend's
// connected-accounts list. Writes replace wholesale or upsert by
// platform; there is no partial patching.
type IAccountCache interface {
	ReplaceAll(ctx context.Context, accounts []model.ConnectedAccount) error
	Upsert(ctx context.Context, account model.ConnectedAccount) error
	Remove(ctx context.Context, accountID int64) error
	List(ctx context.Context) ([]model.ConnectedAccount, error)
}
