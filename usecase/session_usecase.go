package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"

	"adlytics/domain/model"
	"adlytics/domain/repository"
	"adlytics/infrastructure/logger"
)

// ISessionUsecase owns the single client session: durable token,
// tri-state for the route guard, and a subscription feed so consumers
// observe changes without polling.
type ISessionUsecase interface {
	Login(ctx context.Context, req model.ReqLogin) (*model.Session, error)
	Register(ctx context.Context, req model.ReqRegister) (*model.Session, error)
	Logout(ctx context.Context)
	RestoreSession(ctx context.Context) *model.Session
	Current() (*model.Session, model.SessionState)
	State() model.SessionState
	AwaitSettled(ctx context.Context) model.SessionState
	Subscribe() (<-chan model.SessionEvent, func())
	Token() string
	Invalidate()
}

type sessionUsecase struct {
	authAPI repository.IAuthAPI
	tokens  repository.ITokenStore

	mu      sync.RWMutex
	state   model.SessionState
	session *model.Session
	subs    map[chan model.SessionEvent]struct{}

	settled    chan struct{}
	settleOnce sync.Once
}

func NewSessionUsecase(authAPI repository.IAuthAPI, tokens repository.ITokenStore) ISessionUsecase {
	return &sessionUsecase{
		authAPI: authAPI,
		tokens:  tokens,
		state:   model.StateLoading,
		subs:    make(map[chan model.SessionEvent]struct{}),
		settled: make(chan struct{}),
	}
}

func (u *sessionUsecase) Login(ctx context.Context, req model.ReqLogin) (*model.Session, error) {
	tokenResp, err := u.authAPI.Login(ctx, req)
	if err != nil {
		// Domain errors surface inline on the form; session state is untouched.
		if apiErr, ok := model.AsApiError(err); ok && apiErr.Status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidCredentials, apiErr.Detail)
		}
		return nil, err
	}
	return u.adoptToken(ctx, tokenResp.AccessToken)
}

func (u *sessionUsecase) Register(ctx context.Context, req model.ReqRegister) (*model.Session, error) {
	tokenResp, err := u.authAPI.Register(ctx, req)
	if err != nil {
		if apiErr, ok := model.AsApiError(err); ok && (apiErr.Status == http.StatusConflict || apiErr.Status == http.StatusBadRequest) {
			return nil, fmt.Errorf("%w: %s", model.ErrEmailTaken, apiErr.Detail)
		}
		return nil, err
	}
	return u.adoptToken(ctx, tokenResp.AccessToken)
}

// adoptToken persists the token, resolves the identity, then
// activates the session. The session is complete before the first
// broadcast; subscribers may read it without coordination.
func (u *sessionUsecase) adoptToken(ctx context.Context, token string) (*model.Session, error) {
	sess := sessionFromToken(token)
	if err := u.tokens.Put(ctx, token); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to persist session token")
	}

	// Hold the token in memory so the gateway attaches it to /me.
	u.mu.Lock()
	u.session = &model.Session{Token: token}
	u.mu.Unlock()

	user, err := u.authAPI.Me(ctx)
	if err != nil {
		if apiErr, ok := model.AsApiError(err); ok && apiErr.Status == http.StatusUnauthorized {
			// The backend refused the token it just issued; the 401
			// hook has already cleared the session.
			return nil, err
		}
		// Identity enrichment is best-effort; claims hints stand in.
		logger.GetLogger().WithField("error", err).Warn("Failed to resolve identity")
	} else {
		sess.UserID = strconv.FormatInt(user.ID, 10)
		sess.Email = user.Email
	}
	u.setState(model.StateAuthenticated, sess)
	return sess, nil
}

// Logout clears the persisted token synchronously and always
// succeeds; a second call is a no-op.
func (u *sessionUsecase) Logout(ctx context.Context) {
	if err := u.tokens.Delete(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to clear persisted token")
	}
	u.setState(model.StateUnauthenticated, nil)
}

// RestoreSession validates a previously persisted token on startup.
// It never returns an error: a token the backend rejects is cleared
// and the state settles to unauthenticated.
func (u *sessionUsecase) RestoreSession(ctx context.Context) *model.Session {
	token, err := u.tokens.Get(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to read persisted token")
		u.setState(model.StateUnauthenticated, nil)
		return nil
	}
	if token == "" {
		u.setState(model.StateUnauthenticated, nil)
		return nil
	}

	// Hold the token in memory so the gateway attaches it to /me,
	// but stay in loading until validation settles.
	u.mu.Lock()
	u.session = &model.Session{Token: token}
	u.mu.Unlock()

	user, err := u.authAPI.Me(ctx)
	if err != nil {
		if apiErr, ok := model.AsApiError(err); ok && apiErr.Status > 0 {
			// Backend rejected the token: clear it. Transport
			// failures keep the token for the next start.
			if delErr := u.tokens.Delete(ctx); delErr != nil {
				logger.GetLogger().WithField("error", delErr).Warn("Failed to clear rejected token")
			}
		}
		u.setState(model.StateUnauthenticated, nil)
		return nil
	}

	sess := sessionFromToken(token)
	sess.UserID = strconv.FormatInt(user.ID, 10)
	sess.Email = user.Email
	u.setState(model.StateAuthenticated, sess)
	return sess
}

func (u *sessionUsecase) Current() (*model.Session, model.SessionState) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.session, u.state
}

func (u *sessionUsecase) State() model.SessionState {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.state
}

// AwaitSettled blocks while restoration is still in flight, so the
// route guard never redirects on a not-yet-restored session.
func (u *sessionUsecase) AwaitSettled(ctx context.Context) model.SessionState {
	select {
	case <-u.settled:
	case <-ctx.Done():
	}
	return u.State()
}

// Subscribe returns a feed of session events plus a cancel func.
// Events are best-effort pushes; the authoritative state is always
// visible synchronously through State()/Current().
func (u *sessionUsecase) Subscribe() (<-chan model.SessionEvent, func()) {
	ch := make(chan model.SessionEvent, 4)
	u.mu.Lock()
	u.subs[ch] = struct{}{}
	u.mu.Unlock()

	cancel := func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if _, ok := u.subs[ch]; ok {
			delete(u.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Token exposes the bearer for the gateway's token source.
func (u *sessionUsecase) Token() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.session == nil {
		return ""
	}
	return u.session.Token
}

// Invalidate is the gateway's 401 hook: the session is gone
// regardless of what the client thinks.
func (u *sessionUsecase) Invalidate() {
	u.mu.RLock()
	had := u.session != nil
	u.mu.RUnlock()
	if !had {
		return
	}
	logger.GetLogger().Info("Session invalidated by backend")
	if err := u.tokens.Delete(context.Background()); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to clear persisted token")
	}
	u.setState(model.StateUnauthenticated, nil)
}

func (u *sessionUsecase) setState(state model.SessionState, sess *model.Session) {
	u.mu.Lock()
	u.state = state
	u.session = sess
	targets := make([]chan model.SessionEvent, 0, len(u.subs))
	for ch := range u.subs {
		targets = append(targets, ch)
	}
	u.mu.Unlock()

	if state != model.StateLoading {
		u.settleOnce.Do(func() { close(u.settled) })
	}

	evt := model.SessionEvent{State: state, Session: sess}
	for _, ch := range targets {
		select {
		case ch <- evt:
		default:
		}
	}
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// sessionFromToken derives identity hints from the token's claims
// when it is a JWT. The client never verifies the signature; the
// backend owns verification, an opaque token simply yields no expiry.
func sessionFromToken(token string) *model.Session {
	sess := &model.Session{Token: token}
	claims := &tokenClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return sess
	}
	sess.UserID = claims.Subject
	sess.Email = claims.Email
	if claims.ExpiresAt > 0 {
		expiry := time.Unix(claims.ExpiresAt, 0)
		sess.Expiry = &expiry
	}
	return sess
}
