package dto

// TokenResponse is returned by the login and register endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the payload of GET /api/auth/me.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
