package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"adlytics/domain/dto"
	"adlytics/domain/model"
	"adlytics/domain/repository"
)

// The gateway implements every backend-facing interface.
var (
	_ repository.IAuthAPI     = (*Client)(nil)
	_ repository.IAccountAPI  = (*Client)(nil)
	_ repository.IAnalysisAPI = (*Client)(nil)
	_ repository.IUploadAPI   = (*Client)(nil)
	_ repository.IReportAPI   = (*Client)(nil)
)

func (c *Client) Login(ctx context.Context, req model.ReqLogin) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req model.ReqRegister) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Connected(ctx context.Context) ([]dto.ConnectedAccountDTO, error) {
	out := make([]dto.ConnectedAccountDTO, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/api/accounts/connected", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) InitiateOAuth(ctx context.Context, req dto.OAuthInitiateRequest) (*dto.OAuthInitiateResponse, error) {
	var out dto.OAuthInitiateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/accounts/oauth/initiate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CompleteOAuth(ctx context.Context, req dto.OAuthCallbackRequest) (*dto.ConnectedAccountDTO, error) {
	var out dto.ConnectedAccountDTO
	if err := c.doJSON(ctx, http.MethodPost, "/api/accounts/oauth/callback", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Disconnect(ctx context.Context, accountID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/accounts/%d", accountID), nil, nil, nil)
}

func (c *Client) Sync(ctx context.Context, accountID int64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/accounts/%d/sync", accountID), nil, nil, nil)
}

func (c *Client) Campaigns(ctx context.Context, accountID int64) ([]dto.CampaignDTO, error) {
	out := make([]dto.CampaignDTO, 0)
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/accounts/%d/campaigns", accountID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) History(ctx context.Context, opts dto.HistoryOptions) ([]dto.AnalysisDTO, error) {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	out := make([]dto.AnalysisDTO, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/api/analysis/history", opts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*dto.AnalysisDTO, error) {
	var out dto.AnalysisDTO
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/analysis/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Results(ctx context.Context, id int64) (map[string]any, error) {
	out := make(map[string]any)
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/analysis/%d/results", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/analysis/%d", id), nil, nil, nil)
}

func (c *Client) DownloadPDF(ctx context.Context, id int64) (*model.FileBlob, error) {
	blob, err := c.doBlob(ctx, http.MethodGet, fmt.Sprintf("/api/analysis/%d/download-pdf", id), nil)
	if err != nil {
		return nil, err
	}
	if blob.Name == "" {
		blob.Name = fmt.Sprintf("analysis_%d.pdf", id)
	}
	return blob, nil
}

func (c *Client) DownloadPDFWithCharts(ctx context.Context, id int64, req dto.PDFWithChartsRequest) (*model.FileBlob, error) {
	blob, err := c.doBlob(ctx, http.MethodPost, fmt.Sprintf("/api/analysis/%d/download-pdf-with-charts", id), req)
	if err != nil {
		return nil, err
	}
	if blob.Name == "" {
		blob.Name = fmt.Sprintf("analysis_%d.pdf", id)
	}
	return blob, nil
}

func (c *Client) EmailReport(ctx context.Context, id int64, req dto.EmailReportRequest) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/analysis/%d/email", id), nil, req, nil)
}

// UploadCSV streams a multipart upload, reporting progress from the
// bytes actually consumed off the content reader.
func (c *Client) UploadCSV(ctx context.Context, filename string, size int64, content io.Reader, progress func(int)) (*dto.UploadAccepted, error) {
	tracked := newProgressReader(content, size, progress)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, tracked); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	resp, err := c.do(ctx, http.MethodPost, "/api/upload/csv", nil, pr, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out dto.UploadAccepted
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	tracked.finish()
	return &out, nil
}

func (c *Client) QueueStatus(ctx context.Context) (*dto.QueueStatusResponse, error) {
	var out dto.QueueStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/upload/queue-status", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Generate(ctx context.Context, req dto.GenerateReportRequest) (*dto.ReportStatusResponse, error) {
	var out dto.ReportStatusResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/reports/generate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Status(ctx context.Context, reportID int64) (*dto.ReportStatusResponse, error) {
	var out dto.ReportStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/reports/%d/status", reportID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
