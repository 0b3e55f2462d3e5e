package model

import (
	"time"
)

// SessionState is the tri-state consumed by the route guard.
type SessionState int

const (
	StateLoading SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is the single authenticated identity held by the client.
// At most one Session is active per process; the token is attached to
// every outbound backend request while present.
type Session struct {
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Token  string     `json:"-"`
	Expiry *time.Time `json:"expiry,omitempty"`
}

// SessionEvent is pushed to subscribers on every session change.
type SessionEvent struct {
	State   SessionState `json:"-"`
	Session *Session     `json:"session,omitempty"`
}

type ReqLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ReqRegister struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
