package model

import "time"

// Platform identifies a supported ad network.
type Platform string

const (
	PlatformMeta      Platform = "meta"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformPinterest Platform = "pinterest"
	PlatformTelegram  Platform = "telegram"
)

// Platforms lists every connectable platform in display order.
var Platforms = []Platform{
	PlatformMeta,
	PlatformTwitter,
	PlatformLinkedIn,
	PlatformWhatsApp,
	PlatformPinterest,
	PlatformTelegram,
}

func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ConnectedAccount is the backend-owned record of a linked ad account.
// The client keeps a read-through cached copy keyed by platform.
type ConnectedAccount struct {
	ID          int64      `json:"id"`
	Platform    Platform   `json:"platform"`
	AccountName string     `json:"account_name"`
	AccountID   string     `json:"account_id"`
	ConnectedAt time.Time  `json:"connected_at"`
	LastSyncAt  *time.Time `json:"last_sync,omitempty"`
}

// OAuthStatus is the state of a connect attempt.
type OAuthStatus string

const (
	OAuthIdle             OAuthStatus = "idle"
	OAuthInitiating       OAuthStatus = "initiating"
	OAuthExternalRedirect OAuthStatus = "redirected"
	OAuthAwaitingCallback OAuthStatus = "awaiting-callback"
	OAuthReconciling      OAuthStatus = "reconciling"
	OAuthConnected        OAuthStatus = "succeeded"
	OAuthFailed           OAuthStatus = "failed"
)

// OAuthSession is the ephemeral in-memory state of one connect
// attempt. It never survives the external redirect; post-redirect
// states are rebuilt purely from the callback query parameters.
type OAuthSession struct {
	ID          string      `json:"id"`
	Platform    Platform    `json:"platform"`
	RequestedAt time.Time   `json:"requested_at"`
	State       string      `json:"-"` // CSRF nonce issued by the backend
	Status      OAuthStatus `json:"status"`
}

// CallbackParams are the query parameters observed at the callback
// route after the provider redirects back.
type CallbackParams struct {
	Platform string `form:"platform"`
	Code     string `form:"code"`
	State    string `form:"state"`
	Error    string `form:"error"`
}

// ConnectOutcome is the terminal result of a connect attempt. The
// redirect target is the same for both outcomes; only the display
// delay differs.
type ConnectOutcome struct {
	Status   OAuthStatus       `json:"status"`
	Message  string            `json:"message"`
	Account  *ConnectedAccount `json:"account,omitempty"`
	Redirect string            `json:"redirect"`
	Delay    time.Duration     `json:"-"`
}

func (o ConnectOutcome) Succeeded() bool { return o.Status == OAuthConnected }
