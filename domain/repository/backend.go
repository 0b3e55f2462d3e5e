package repository

import (
	"context"
	"io"

	"adlytics/domain/dto"
	"adlytics/domain/model"
)

// IAuthAPI covers the backend authentication endpoints.
type IAuthAPI interface {
	Login(ctx context.Context, req model.ReqLogin) (*dto.TokenResponse, error)
	Register(ctx context.Context, req model.ReqRegister) (*dto.TokenResponse, error)
	Me(ctx context.Context) (*dto.UserResponse, error)
}

// IAccountAPI covers connected-account and OAuth endpoints.
type IAccountAPI interface {
	Connected(ctx context.Context) ([]dto.ConnectedAccountDTO, error)
	InitiateOAuth(ctx context.Context, req dto.OAuthInitiateRequest) (*dto.OAuthInitiateResponse, error)
	CompleteOAuth(ctx context.Context, req dto.OAuthCallbackRequest) (*dto.ConnectedAccountDTO, error)
	Disconnect(ctx context.Context, accountID int64) error
	Sync(ctx context.Context, accountID int64) error
	Campaigns(ctx context.Context, accountID int64) ([]dto.CampaignDTO, error)
}

// IAnalysisAPI covers analysis history, results and PDF export.
type IAnalysisAPI interface {
	History(ctx context.Context, opts dto.HistoryOptions) ([]dto.AnalysisDTO, error)
	Get(ctx context.Context, id int64) (*dto.AnalysisDTO, error)
	Results(ctx context.Context, id int64) (map[string]any, error)
	Delete(ctx context.Context, id int64) error
	DownloadPDF(ctx context.Context, id int64) (*model.FileBlob, error)
	DownloadPDFWithCharts(ctx context.Context, id int64, req dto.PDFWithChartsRequest) (*model.FileBlob, error)
	EmailReport(ctx context.Context, id int64, req dto.EmailReportRequest) error
}

// IUploadAPI covers CSV upload and queue polling.
type IUploadAPI interface {
	UploadCSV(ctx context.Context, filename string, size int64, content io.Reader, progress func(percent int)) (*dto.UploadAccepted, error)
	QueueStatus(ctx context.Context) (*dto.QueueStatusResponse, error)
}

// IReportAPI covers account-driven report generation.
type IReportAPI interface {
	Generate(ctx context.Context, req dto.GenerateReportRequest) (*dto.ReportStatusResponse, error)
	Status(ctx context.Context, reportID int64) (*dto.ReportStatusResponse, error)
}
