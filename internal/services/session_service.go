package services

import (
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// Session is the single process-wide auth context: token, user, and whether
// anyone is logged in. Every screen reads it; only the login, logout, and
// profile-update flows write it.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

// NewSession creates an unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// SetCredentials installs the token and user after a successful login,
// registration, or profile update.
func (s *Session) SetCredentials(token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Clear logs out.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// Token returns the current bearer token, empty when logged out. Satisfies
// api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when logged out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// UserID returns the logged-in user's id, or 0.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0
	}
	return s.user.ID
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// TokenExpiry inspects the bearer token's exp claim without verifying the
// signature; the client has no signing key, it only wants to know whether a
// login prompt is coming.
func (s *Session) TokenExpiry() (time.Time, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return time.Time{}, fmt.Errorf("no token in session")
	}

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return time.Unix(int64(exp), 0), nil
}
