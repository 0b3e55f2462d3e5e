package usecase_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"adlytics/domain/dto"
	"adlytics/domain/model"
)

// Mock implementations
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, req model.ReqLogin) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, req model.ReqRegister) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthAPI) Me(ctx context.Context) (*dto.UserResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

type MockAccountAPI struct {
	mock.Mock
}

func (m *MockAccountAPI) Connected(ctx context.Context) ([]dto.ConnectedAccountDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ConnectedAccountDTO), args.Error(1)
}

func (m *MockAccountAPI) InitiateOAuth(ctx context.Context, req dto.OAuthInitiateRequest) (*dto.OAuthInitiateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OAuthInitiateResponse), args.Error(1)
}

func (m *MockAccountAPI) CompleteOAuth(ctx context.Context, req dto.OAuthCallbackRequest) (*dto.ConnectedAccountDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConnectedAccountDTO), args.Error(1)
}

func (m *MockAccountAPI) Disconnect(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountAPI) Sync(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountAPI) Campaigns(ctx context.Context, accountID int64) ([]dto.CampaignDTO, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CampaignDTO), args.Error(1)
}

type MockUploadAPI struct {
	mock.Mock
}

func (m *MockUploadAPI) UploadCSV(ctx context.Context, filename string, size int64, content io.Reader, progress func(percent int)) (*dto.UploadAccepted, error) {
	args := m.Called(ctx, filename, size, content, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadAccepted), args.Error(1)
}

func (m *MockUploadAPI) QueueStatus(ctx context.Context) (*dto.QueueStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QueueStatusResponse), args.Error(1)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Get(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Put(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenStore) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAccountCache struct {
	mock.Mock
}

func (m *MockAccountCache) ReplaceAll(ctx context.Context, accounts []model.ConnectedAccount) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountCache) Upsert(ctx context.Context, account model.ConnectedAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountCache) Remove(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountCache) List(ctx context.Context) ([]model.ConnectedAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ConnectedAccount), args.Error(1)
}
