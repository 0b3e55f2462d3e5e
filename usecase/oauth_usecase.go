package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"adlytics/domain/dto"
	"adlytics/domain/model"
	"adlytics/domain/repository"
	"adlytics/infrastructure/configuration"
	"adlytics/infrastructure/logger"
	"adlytics/infrastructure/realtime"
)

const (
	connectSuccessDelay = 2 * time.Second
	connectFailureDelay = 3 * time.Second
)

// IOAuthUsecase drives platform connections: the initiate/callback
// handshake, the connected-accounts cache, and account actions.
type IOAuthUsecase interface {
	Initiate(ctx context.Context, platform model.Platform) (*dto.OAuthInitiateResponse, error)
	HandleCallback(ctx context.Context, params model.CallbackParams) model.ConnectOutcome
	Status() model.OAuthStatus
	Accounts(ctx context.Context) ([]model.ConnectedAccount, error)
	Disconnect(ctx context.Context, id int64, confirmed bool) error
	Sync(ctx context.Context, id int64) error
	Campaigns(ctx context.Context, id int64) ([]dto.CampaignDTO, error)
}

type oauthUsecase struct {
	accountAPI repository.IAccountAPI
	cache      repository.IAccountCache
	hub        *realtime.Hub

	mu      sync.Mutex
	attempt *model.OAuthSession
}

func NewOAuthUsecase(accountAPI repository.IAccountAPI, cache repository.IAccountCache, hub *realtime.Hub) IOAuthUsecase {
	return &oauthUsecase{accountAPI: accountAPI, cache: cache, hub: hub}
}

// Initiate asks the backend for an authorization URL. Starting a new
// attempt supersedes any attempt still in flight; the newest state
// token is the only one the callback will recognize.
func (u *oauthUsecase) Initiate(ctx context.Context, platform model.Platform) (*dto.OAuthInitiateResponse, error) {
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedPlatform, platform)
	}

	attempt := &model.OAuthSession{
		ID:          uuid.NewString(),
		Platform:    platform,
		RequestedAt: time.Now(),
		Status:      model.OAuthInitiating,
	}
	u.mu.Lock()
	if prev := u.attempt; prev != nil && prev.Status != model.OAuthConnected && prev.Status != model.OAuthFailed {
		logger.GetLogger().WithFields(map[string]interface{}{
			"platform": prev.Platform,
			"status":   prev.Status,
		}).Info("Superseding in-flight connect attempt")
	}
	u.attempt = attempt
	u.mu.Unlock()

	resp, err := u.accountAPI.InitiateOAuth(ctx, dto.OAuthInitiateRequest{Platform: string(platform)})
	if err != nil {
		u.finishAttempt(attempt.ID, model.OAuthFailed)
		return nil, err
	}

	u.mu.Lock()
	if u.attempt != nil && u.attempt.ID == attempt.ID {
		u.attempt.State = resp.State
		u.attempt.Status = model.OAuthExternalRedirect
	}
	u.mu.Unlock()
	u.hub.BroadcastConnect(platform, model.OAuthExternalRedirect, "")
	return resp, nil
}

// HandleCallback rebuilds the outcome purely from the redirect's
// query parameters. The in-memory attempt only colors the status; a
// callback after a restart is still honored because the state token
// round-trips through the backend, which is its sole verifier.
func (u *oauthUsecase) HandleCallback(ctx context.Context, params model.CallbackParams) model.ConnectOutcome {
	platform := model.Platform(params.Platform)
	u.setStatus(platform, model.OAuthAwaitingCallback)
	if params.Error != "" {
		return u.fail(platform, fmt.Sprintf("Authentication failed: %s", params.Error))
	}
	if params.Code == "" || params.State == "" || !platform.Valid() {
		return u.fail(platform, "Invalid authentication response")
	}

	u.setStatus(platform, model.OAuthReconciling)

	// The exchange must complete even if the browser abandons the
	// callback page mid-flight.
	accountDTO, err := u.accountAPI.CompleteOAuth(context.WithoutCancel(ctx), dto.OAuthCallbackRequest{
		Platform: params.Platform,
		Code:     params.Code,
		State:    params.State,
	})
	if err != nil {
		msg := "Failed to connect account"
		if apiErr, ok := model.AsApiError(err); ok && apiErr.Status > 0 && apiErr.Detail != "" {
			msg = apiErr.Detail
		}
		logger.GetLogger().WithFields(map[string]interface{}{
			"platform": platform,
			"error":    err,
		}).Error("OAuth completion failed")
		return u.fail(platform, msg)
	}

	account := accountFromDTO(*accountDTO)
	// Reconnecting a platform replaces its previous entry.
	if err := u.cache.Upsert(ctx, account); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to cache connected account")
	}

	u.setStatus(platform, model.OAuthConnected)
	msg := fmt.Sprintf("Successfully connected %s account", platform)
	u.hub.BroadcastConnect(platform, model.OAuthConnected, msg)
	return model.ConnectOutcome{
		Status:   model.OAuthConnected,
		Message:  msg,
		Account:  &account,
		Redirect: configuration.C.UI.ReturnRoute,
		Delay:    connectSuccessDelay,
	}
}

func (u *oauthUsecase) fail(platform model.Platform, message string) model.ConnectOutcome {
	u.setStatus(platform, model.OAuthFailed)
	u.hub.BroadcastConnect(platform, model.OAuthFailed, message)
	return model.ConnectOutcome{
		Status:   model.OAuthFailed,
		Message:  message,
		Redirect: configuration.C.UI.ReturnRoute,
		Delay:    connectFailureDelay,
	}
}

func (u *oauthUsecase) setStatus(platform model.Platform, status model.OAuthStatus) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.attempt != nil && (platform == "" || u.attempt.Platform == platform) {
		u.attempt.Status = status
	}
}

func (u *oauthUsecase) finishAttempt(id string, status model.OAuthStatus) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.attempt != nil && u.attempt.ID == id {
		u.attempt.Status = status
	}
}

func (u *oauthUsecase) Status() model.OAuthStatus {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.attempt == nil {
		return model.OAuthIdle
	}
	return u.attempt.Status
}

// Accounts reads through to the backend and refreshes the local
// cache; when the backend is unreachable the last cached snapshot is
// served instead.
func (u *oauthUsecase) Accounts(ctx context.Context) ([]model.ConnectedAccount, error) {
	dtos, err := u.accountAPI.Connected(ctx)
	if err != nil {
		cached, cacheErr := u.cache.List(ctx)
		if cacheErr != nil {
			return nil, err
		}
		logger.GetLogger().WithField("error", err).Warn("Serving connected accounts from cache")
		return cached, nil
	}

	accounts := make([]model.ConnectedAccount, 0, len(dtos))
	for _, d := range dtos {
		accounts = append(accounts, accountFromDTO(d))
	}
	if err := u.cache.ReplaceAll(ctx, accounts); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to refresh account cache")
	}
	return accounts, nil
}

// Disconnect requires an explicit confirmation flag so a stray call
// cannot drop an account.
func (u *oauthUsecase) Disconnect(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return model.ErrConfirmationRequired
	}
	if err := u.accountAPI.Disconnect(ctx, id); err != nil {
		return err
	}
	if err := u.cache.Remove(ctx, id); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to evict cached account")
	}
	return nil
}

// Sync triggers a backend refresh for one account, then re-lists so
// the cache picks up the new last_sync stamp.
func (u *oauthUsecase) Sync(ctx context.Context, id int64) error {
	if err := u.accountAPI.Sync(ctx, id); err != nil {
		return err
	}
	if _, err := u.Accounts(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to refresh accounts after sync")
	}
	return nil
}

func (u *oauthUsecase) Campaigns(ctx context.Context, id int64) ([]dto.CampaignDTO, error) {
	return u.accountAPI.Campaigns(ctx, id)
}

func accountFromDTO(d dto.ConnectedAccountDTO) model.ConnectedAccount {
	return model.ConnectedAccount{
		ID:          d.ID,
		Platform:    model.Platform(d.Platform),
		AccountName: d.AccountName,
		AccountID:   d.AccountID,
		ConnectedAt: d.ConnectedAt,
		LastSyncAt:  d.LastSync,
	}
}
