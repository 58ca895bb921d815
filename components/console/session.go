package console

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const missingCredentialsMessage = "Please fill in both email and password"

// SessionOptions configures a SessionStore.
type SessionOptions struct {
	Auth      AuthClient
	Storage   SessionStorage
	Hook      SessionHook
	Telemetry Telemetry
	Logger    *zap.Logger
	Now       func() time.Time
}

// SessionStore owns the access token and user identity. IsAuthenticated is
// true exactly when a token is held.
type SessionStore struct {
	// opMu serializes login and logout so storage and memory always agree.
	opMu sync.Mutex

	mu        sync.RWMutex
	session   Session
	disposed  bool
	subs      map[int]func(Session)
	nextSub   int
	auth      AuthClient
	storage   SessionStorage
	hook      SessionHook
	telemetry Telemetry
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionStore builds the store and rehydrates any persisted session.
func NewSessionStore(ctx context.Context, opts SessionOptions) (*SessionStore, error) {
	if opts.Auth == nil {
		return nil, errors.New("console: session store requires an auth client")
	}
	if opts.Storage == nil {
		opts.Storage = NewInMemorySessionStorage()
	}
	if opts.Hook == nil {
		opts.Hook = noopSessionHook{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &SessionStore{
		subs:      map[int]func(Session){},
		auth:      opts.Auth,
		storage:   opts.Storage,
		hook:      opts.Hook,
		telemetry: normalizeTelemetry(opts.Telemetry),
		logger:    normalizeLogger(opts.Logger, "session"),
		now:       opts.Now,
	}
	if err := s.rehydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SessionStore) rehydrate(ctx context.Context) error {
	stored, err := s.storage.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	stored = stored.normalize()
	if !stored.IsAuthenticated {
		return nil
	}
	if expiry := tokenExpiry(stored.Token); !expiry.IsZero() && !expiry.After(s.now()) {
		s.logger.Info("discarding expired session", zap.Time("expires_at", expiry))
		s.notifyHook(ctx, SessionEvent{Change: SessionExpired, User: stored.User, OccurredAt: s.now()})
		return s.storage.Clear(ctx)
	}
	s.session = stored
	s.logger.Debug("session rehydrated", zap.Bool("authenticated", true))
	return nil
}

// Login exchanges credentials for a token. Any previous session is cleared
// before the new one is written.
func (s *SessionStore) Login(ctx context.Context, creds Credentials) (Session, error) {
	if s.isDisposed() {
		return Session{}, ErrSessionDisposed
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return Session{}, &AuthFailure{Message: missingCredentialsMessage}
	}
	result, err := s.auth.Login(ctx, creds)
	if err == nil && result.Token == "" {
		err = errors.New("auth service returned an empty token")
	}
	if err != nil {
		failure := asAuthFailure(err)
		s.logger.Warn("login failed", zap.String("email", creds.Email), zap.Error(err))
		s.telemetry.Record(ctx, "console.session.login_failed", map[string]any{
			"email":  creds.Email,
			"status": failure.StatusCode,
		})
		s.notifyHook(ctx, SessionEvent{Change: SessionLoginFailed, Email: creds.Email, Reason: failure.UserMessage(), OccurredAt: s.now()})
		return Session{}, failure
	}

	s.opMu.Lock()
	if err := s.storage.Clear(ctx); err != nil {
		s.opMu.Unlock()
		return Session{}, err
	}
	next := Session{
		Token:     result.Token,
		User:      result.User,
		IssuedAt:  s.now(),
		ExpiresAt: tokenExpiry(result.Token),
	}.normalize()
	if err := s.storage.Save(ctx, next); err != nil {
		s.opMu.Unlock()
		return Session{}, err
	}

	s.mu.Lock()
	s.session = next
	subs := s.subscribersLocked()
	s.mu.Unlock()
	s.opMu.Unlock()

	s.logger.Info("login succeeded", zap.String("email", creds.Email))
	s.telemetry.Record(ctx, "console.session.login", map[string]any{"email": creds.Email})
	s.notifyHook(ctx, SessionEvent{Change: SessionLogin, User: next.User, Email: creds.Email, OccurredAt: s.now()})
	publish(subs, next.clone())
	return next.clone(), nil
}

// Logout clears the session and storage. It is idempotent.
func (s *SessionStore) Logout(ctx context.Context) error {
	return s.logout(ctx, SessionLogout, "")
}

// HandleUnauthorized logs out after a collaborator answered 401.
func (s *SessionStore) HandleUnauthorized(ctx context.Context) {
	if err := s.logout(ctx, SessionUnauthorized, "collaborator returned 401"); err != nil {
		s.logger.Error("logout after 401 failed", zap.Error(err))
	}
}

func (s *SessionStore) logout(ctx context.Context, change SessionChange, reason string) error {
	if s.isDisposed() {
		return ErrSessionDisposed
	}
	s.opMu.Lock()
	if err := s.storage.Clear(ctx); err != nil {
		s.opMu.Unlock()
		return err
	}
	s.mu.Lock()
	previous := s.session
	s.session = Session{}
	var subs []func(Session)
	if previous.IsAuthenticated {
		subs = s.subscribersLocked()
	}
	s.mu.Unlock()
	s.opMu.Unlock()

	if !previous.IsAuthenticated {
		return nil
	}
	s.logger.Info("session cleared", zap.String("reason", string(change)))
	s.telemetry.Record(ctx, "console.session."+string(change), nil)
	s.notifyHook(ctx, SessionEvent{Change: change, User: previous.User, Reason: reason, OccurredAt: s.now()})
	publish(subs, Session{})
	return nil
}

// Token returns the current token, "" when unauthenticated.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Session returns a copy of the current session.
func (s *SessionStore) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.clone()
}

// Subscribe registers fn for session changes and returns its cancel func.
func (s *SessionStore) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Dispose drops subscribers; later mutations fail with ErrSessionDisposed.
func (s *SessionStore) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.subs = map[int]func(Session){}
}

func (s *SessionStore) isDisposed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disposed
}

func (s *SessionStore) subscribersLocked() []func(Session) {
	subs := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func (s *SessionStore) notifyHook(ctx context.Context, event SessionEvent) {
	if err := s.hook.SessionChanged(ctx, event); err != nil {
		s.logger.Warn("session hook failed", zap.String("change", string(event.Change)), zap.Error(err))
	}
}

func publish(subs []func(Session), session Session) {
	for _, fn := range subs {
		fn(session)
	}
}

func asAuthFailure(err error) *AuthFailure {
	var failure *AuthFailure
	if errors.As(err, &failure) {
		return failure
	}
	return &AuthFailure{Err: err}
}

// tokenExpiry reads the exp claim without verifying the signature. The
// console never holds the signing key; the collaborator remains authoritative.
func tokenExpiry(token string) time.Time {
	if strings.Count(token, ".") != 2 {
		return time.Time{}
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
