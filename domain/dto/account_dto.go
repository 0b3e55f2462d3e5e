package dto

import "time"

// ConnectedAccountDTO mirrors the backend's connected-account record.
type ConnectedAccountDTO struct {
	ID          int64      `json:"id"`
	Platform    string     `json:"platform"`
	AccountName string     `json:"account_name"`
	AccountID   string     `json:"account_id"`
	ConnectedAt time.Time  `json:"connected_at"`
	LastSync    *time.Time `json:"last_sync,omitempty"`
}

// OAuthInitiateRequest starts a connect attempt for one platform.
type OAuthInitiateRequest struct {
	Platform string `json:"platform" binding:"required"`
}

// OAuthInitiateResponse carries the provider authorization URL and the
// CSRF state nonce the provider will echo back at callback time.
type OAuthInitiateResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// OAuthCallbackRequest is the code-for-account exchange. The backend
// is the sole verifier of the state nonce.
type OAuthCallbackRequest struct {
	Platform string `json:"platform"`
	Code     string `json:"code"`
	State    string `json:"state"`
}

// CampaignDTO is a single campaign row fetched for a connected account.
type CampaignDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Spend     float64 `json:"spend"`
	Currency  string  `json:"currency"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
}
