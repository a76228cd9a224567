package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dermatrack/mobile-core/pkg/logging"
)

// ErrNoToken is returned when no bearer token has been stored.
var ErrNoToken = errors.New("session: no token")

// ErrExpired is returned when the stored token is past its exp claim.
var ErrExpired = errors.New("session: token expired")

// User is the authenticated user snapshot kept alongside the tokens.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Session holds the bearer token, refresh token and user profile for the
// lifetime of the app process. Token persistence (secure storage) is the
// embedding app's responsibility; the session only reads what it was given.
//
// Expiry handling is centralized here: every caller that needs a token goes
// through Token, and a token that is missing or locally expired fires the
// registered expiry hooks exactly once so the UI can redirect to login from
// a single place.
type Session struct {
	mu           sync.Mutex
	token        string
	refreshToken string
	user         User
	notified     bool
	onExpired    []func()
	logger       *logging.Logger
	now          func() time.Time
}

// New constructs an empty session.
func New(logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.Default()
	}
	return &Session{logger: logger, now: time.Now}
}

// OnExpired registers a hook invoked once when the session is found expired.
// Hooks run on the calling goroutine.
func (s *Session) OnExpired(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = append(s.onExpired, fn)
}

// SetTokens stores a fresh token pair and user, re-arming expiry hooks.
func (s *Session) SetTokens(token, refreshToken string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.refreshToken = refreshToken
	s.user = user
	s.notified = false
}

// Clear drops all session state without firing expiry hooks.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refreshToken = ""
	s.user = User{}
	s.notified = false
}

// User returns the stored user snapshot.
func (s *Session) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// RefreshToken returns the stored refresh token, if any.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

// Token returns the bearer token. A missing token yields ErrNoToken; a token
// whose exp claim is in the past yields ErrExpired and fires the expiry hooks.
// Tokens without a parseable exp claim are returned as-is; the server remains
// the authority and a 401 goes through NotifyExpired instead.
func (s *Session) Token() (string, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return "", ErrNoToken
	}
	if exp, ok := tokenExpiry(token); ok && exp.Before(s.now()) {
		s.expire()
		return "", ErrExpired
	}
	return token, nil
}

// NotifyExpired is called when the server rejects the token (401). It fires
// the expiry hooks once and clears the stored tokens.
func (s *Session) NotifyExpired() {
	s.expire()
}

func (s *Session) expire() {
	s.mu.Lock()
	already := s.notified
	s.notified = true
	s.token = ""
	s.refreshToken = ""
	hooks := make([]func(), len(s.onExpired))
	copy(hooks, s.onExpired)
	s.mu.Unlock()

	if already {
		return
	}
	s.logger.Info("session expired")
	for _, fn := range hooks {
		fn()
	}
}

// tokenExpiry extracts the exp claim without verifying the signature. The
// client never holds the signing key; this is a local fast path to avoid a
// round trip with a token we already know is dead.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
