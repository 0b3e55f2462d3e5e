package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adlytics/domain/dto"
	"adlytics/domain/model"
	"adlytics/infrastructure/realtime"
	"adlytics/usecase"
)

func newOAuthUsecase(accountAPI *MockAccountAPI, cache *MockAccountCache) usecase.IOAuthUsecase {
	return usecase.NewOAuthUsecase(accountAPI, cache, realtime.NewHub())
}

func TestOAuthUsecase_Initiate(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	mockAccountAPI.On("InitiateOAuth", mock.Anything, dto.OAuthInitiateRequest{Platform: "meta"}).
		Return(&dto.OAuthInitiateResponse{AuthURL: "https://provider.example/authorize", State: "nonce-1"}, nil).
		Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	resp, err := oauthUsecase.Initiate(context.Background(), model.PlatformMeta)

	require.NoError(t, err)
	assert.Equal(t, "https://provider.example/authorize", resp.AuthURL)
	assert.Equal(t, model.OAuthExternalRedirect, oauthUsecase.Status())
	mockAccountAPI.AssertExpectations(t)
}

func TestOAuthUsecase_Initiate_UnsupportedPlatform(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	_, err := oauthUsecase.Initiate(context.Background(), model.Platform("myspace"))

	assert.ErrorIs(t, err, model.ErrUnsupportedPlatform)
	mockAccountAPI.AssertNotCalled(t, "InitiateOAuth", mock.Anything, mock.Anything)
}

func TestOAuthUsecase_Initiate_LatestAttemptWins(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	mockAccountAPI.On("InitiateOAuth", mock.Anything, dto.OAuthInitiateRequest{Platform: "meta"}).
		Return(&dto.OAuthInitiateResponse{AuthURL: "https://meta.example", State: "nonce-meta"}, nil).
		Once()
	mockAccountAPI.On("InitiateOAuth", mock.Anything, dto.OAuthInitiateRequest{Platform: "linkedin"}).
		Return(&dto.OAuthInitiateResponse{AuthURL: "https://linkedin.example", State: "nonce-li"}, nil).
		Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	_, err := oauthUsecase.Initiate(context.Background(), model.PlatformMeta)
	require.NoError(t, err)
	_, err = oauthUsecase.Initiate(context.Background(), model.PlatformLinkedIn)
	require.NoError(t, err)

	// The second attempt supersedes the first; its status is the one visible.
	assert.Equal(t, model.OAuthExternalRedirect, oauthUsecase.Status())
	mockAccountAPI.AssertExpectations(t)
}

func TestOAuthUsecase_HandleCallback_ProviderError(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	outcome := oauthUsecase.HandleCallback(context.Background(), model.CallbackParams{
		Platform: "meta",
		Error:    "access_denied",
	})

	assert.False(t, outcome.Succeeded())
	assert.Equal(t, "Authentication failed: access_denied", outcome.Message)
	assert.Equal(t, 3*time.Second, outcome.Delay)
	assert.Equal(t, "/connect-account", outcome.Redirect)
	mockAccountAPI.AssertNotCalled(t, "CompleteOAuth", mock.Anything, mock.Anything)
}

func TestOAuthUsecase_HandleCallback_MissingParams(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)

	for name, params := range map[string]model.CallbackParams{
		"no code":     {Platform: "meta", State: "nonce"},
		"no state":    {Platform: "meta", Code: "authcode"},
		"no platform": {Code: "authcode", State: "nonce"},
	} {
		t.Run(name, func(t *testing.T) {
			outcome := oauthUsecase.HandleCallback(context.Background(), params)
			assert.False(t, outcome.Succeeded())
			assert.Equal(t, "Invalid authentication response", outcome.Message)
		})
	}
	mockAccountAPI.AssertNotCalled(t, "CompleteOAuth", mock.Anything, mock.Anything)
}

func TestOAuthUsecase_HandleCallback_Success(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	connectedAt := time.Now().UTC()
	mockAccountAPI.On("CompleteOAuth", mock.Anything, dto.OAuthCallbackRequest{
		Platform: "meta",
		Code:     "authcode",
		State:    "nonce",
	}).Return(&dto.ConnectedAccountDTO{
		ID:          11,
		Platform:    "meta",
		AccountName: "Acme Ads",
		AccountID:   "act_123",
		ConnectedAt: connectedAt,
	}, nil).Once()
	mockCache.On("Upsert", mock.Anything, mock.AnythingOfType("model.ConnectedAccount")).
		Return(nil).Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	outcome := oauthUsecase.HandleCallback(context.Background(), model.CallbackParams{
		Platform: "meta",
		Code:     "authcode",
		State:    "nonce",
	})

	assert.True(t, outcome.Succeeded())
	assert.Contains(t, outcome.Message, "meta")
	assert.Equal(t, 2*time.Second, outcome.Delay)
	assert.Equal(t, "/connect-account", outcome.Redirect)
	require.NotNil(t, outcome.Account)
	assert.Equal(t, model.PlatformMeta, outcome.Account.Platform)
	mockAccountAPI.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestOAuthUsecase_HandleCallback_TracksAttemptStatus(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	mockAccountAPI.On("InitiateOAuth", mock.Anything, dto.OAuthInitiateRequest{Platform: "meta"}).
		Return(&dto.OAuthInitiateResponse{AuthURL: "https://provider.example/authorize", State: "nonce-1"}, nil).
		Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	_, err := oauthUsecase.Initiate(context.Background(), model.PlatformMeta)
	require.NoError(t, err)

	var midExchange model.OAuthStatus
	mockAccountAPI.On("CompleteOAuth", mock.Anything, mock.AnythingOfType("dto.OAuthCallbackRequest")).
		Run(func(mock.Arguments) { midExchange = oauthUsecase.Status() }).
		Return(&dto.ConnectedAccountDTO{ID: 11, Platform: "meta"}, nil).Once()
	mockCache.On("Upsert", mock.Anything, mock.AnythingOfType("model.ConnectedAccount")).
		Return(nil).Once()

	outcome := oauthUsecase.HandleCallback(context.Background(), model.CallbackParams{
		Platform: "meta",
		Code:     "authcode",
		State:    "nonce-1",
	})

	require.True(t, outcome.Succeeded())
	assert.Equal(t, model.OAuthReconciling, midExchange)
	assert.Equal(t, model.OAuthConnected, oauthUsecase.Status())
}

func TestOAuthUsecase_HandleCallback_ProviderErrorMarksAttemptFailed(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	mockAccountAPI.On("InitiateOAuth", mock.Anything, dto.OAuthInitiateRequest{Platform: "meta"}).
		Return(&dto.OAuthInitiateResponse{AuthURL: "https://provider.example/authorize", State: "nonce-1"}, nil).
		Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	_, err := oauthUsecase.Initiate(context.Background(), model.PlatformMeta)
	require.NoError(t, err)

	outcome := oauthUsecase.HandleCallback(context.Background(), model.CallbackParams{
		Platform: "meta",
		Error:    "access_denied",
	})

	assert.False(t, outcome.Succeeded())
	assert.Equal(t, model.OAuthFailed, oauthUsecase.Status())
}

func TestOAuthUsecase_HandleCallback_BackendRejects(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	mockAccountAPI.On("CompleteOAuth", mock.Anything, mock.AnythingOfType("dto.OAuthCallbackRequest")).
		Return(nil, &model.ApiError{Status: 400, Detail: "Invalid state parameter"}).
		Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	outcome := oauthUsecase.HandleCallback(context.Background(), model.CallbackParams{
		Platform: "twitter",
		Code:     "authcode",
		State:    "tampered",
	})

	assert.False(t, outcome.Succeeded())
	assert.Equal(t, "Invalid state parameter", outcome.Message)
	mockCache.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestOAuthUsecase_HandleCallback_NetworkFailure(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	mockAccountAPI.On("CompleteOAuth", mock.Anything, mock.AnythingOfType("dto.OAuthCallbackRequest")).
		Return(nil, model.NetworkError(assert.AnError)).
		Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	outcome := oauthUsecase.HandleCallback(context.Background(), model.CallbackParams{
		Platform: "pinterest",
		Code:     "authcode",
		State:    "nonce",
	})

	assert.False(t, outcome.Succeeded())
	assert.Equal(t, "Failed to connect account", outcome.Message)
}

func TestOAuthUsecase_Accounts_FallsBackToCache(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	cached := []model.ConnectedAccount{{ID: 3, Platform: model.PlatformLinkedIn, AccountName: "Cached"}}
	mockAccountAPI.On("Connected", mock.Anything).
		Return(nil, model.NetworkError(assert.AnError)).
		Once()
	mockCache.On("List", mock.Anything).Return(cached, nil).Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	accounts, err := oauthUsecase.Accounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, accounts)
	mockCache.AssertExpectations(t)
}

func TestOAuthUsecase_Accounts_RefreshesCache(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	mockAccountAPI.On("Connected", mock.Anything).
		Return([]dto.ConnectedAccountDTO{{ID: 1, Platform: "meta", AccountName: "Acme"}}, nil).
		Once()
	mockCache.On("ReplaceAll", mock.Anything, mock.AnythingOfType("[]model.ConnectedAccount")).
		Return(nil).Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	accounts, err := oauthUsecase.Accounts(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, model.PlatformMeta, accounts[0].Platform)
	mockCache.AssertExpectations(t)
}

func TestOAuthUsecase_Disconnect_RequiresConfirmation(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	err := oauthUsecase.Disconnect(context.Background(), 5, false)

	assert.ErrorIs(t, err, model.ErrConfirmationRequired)
	mockAccountAPI.AssertNotCalled(t, "Disconnect", mock.Anything, mock.Anything)
}

func TestOAuthUsecase_Disconnect_Confirmed(t *testing.T) {
	mockAccountAPI := new(MockAccountAPI)
	mockCache := new(MockAccountCache)

	mockAccountAPI.On("Disconnect", mock.Anything, int64(5)).Return(nil).Once()
	mockCache.On("Remove", mock.Anything, int64(5)).Return(nil).Once()

	oauthUsecase := newOAuthUsecase(mockAccountAPI, mockCache)
	err := oauthUsecase.Disconnect(context.Background(), 5, true)

	require.NoError(t, err)
	mockAccountAPI.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}
