package model

import (
	"errors"
	"fmt"
)

// ApiError is the typed failure surfaced by the API gateway client.
// Status 0 means the request never reached the backend.
type ApiError struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Err    error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

func (e *ApiError) Unwrap() error { return e.Err }

// NetworkError wraps a transport-level failure as an ApiError.
func NetworkError(err error) *ApiError {
	return &ApiError{Status: 0, Detail: "network", Err: err}
}

// AsApiError extracts a typed ApiError from an error chain.
func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Domain errors surfaced inline on the originating form; they never
// change session state.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUnsupportedPlatform  = errors.New("unsupported platform")
	ErrConfirmationRequired = errors.New("confirmation required")
)
