// Package web provides the HTTP server and JSON API for Spindle.
package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/spindleapp/spindle/internal/db"
)

const (
	sessionCookieName = "session_id"
	sessionTTL        = 24 * time.Hour
)

// Session is an authenticated session hydrated from its stored row: the
// OAuth token reassembled for API calls plus the display name of its user.
type Session struct {
	ID        string
	Token     *oauth2.Token
	UserID    string
	UserName  string
	CreatedAt time.Time
}

// The manager needs only the session row operations and a user lookup.
type sessionStore interface {
	Create(ctx context.Context, session *db.Session) error
	Get(ctx context.Context, id string) (*db.Session, error)
	Delete(ctx context.Context, id string) error
	UpdateToken(ctx context.Context, id, accessToken, refreshToken string, expiry time.Time) error
}

type userGetter interface {
	Get(ctx context.Context, id string) (*db.User, error)
}

// Sessions issues, resolves, and revokes cookie-backed sessions.
type Sessions struct {
	store sessionStore
	users userGetter
}

// NewSessions creates a session manager over the database.
func NewSessions(database *db.DB) *Sessions {
	return &Sessions{store: database.Sessions(), users: database.Users()}
}

// Create stores a new session for the user and returns it. The stored row
// expires after the session TTL regardless of the OAuth token's own expiry.
func (s *Sessions) Create(ctx context.Context, token *oauth2.Token, userID, userName string) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row := &db.Session{
		ID:           id,
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
		CreatedAt:    now,
		ExpiresAt:    now.Add(sessionTTL),
	}
	if err := s.store.Create(ctx, row); err != nil {
		return nil, err
	}

	return &Session{
		ID:        id,
		Token:     token,
		UserID:    userID,
		UserName:  userName,
		CreatedAt: now,
	}, nil
}

// Get resolves a session ID, or nil for unknown and expired sessions.
func (s *Sessions) Get(ctx context.Context, id string) *Session {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return nil
	}
	user, err := s.users.Get(ctx, row.UserID)
	if err != nil {
		return nil
	}

	return &Session{
		ID: row.ID,
		Token: &oauth2.Token{
			AccessToken:  row.AccessToken,
			RefreshToken: row.RefreshToken,
			Expiry:       row.TokenExpiry,
			TokenType:    "Bearer",
		},
		UserID:    row.UserID,
		UserName:  user.DisplayName,
		CreatedAt: row.CreatedAt,
	}
}

// GetFromRequest resolves the session named by the request cookie, if any.
func (s *Sessions) GetFromRequest(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	return s.Get(r.Context(), cookie.Value)
}

// Delete revokes a session.
func (s *Sessions) Delete(ctx context.Context, id string) {
	_ = s.store.Delete(ctx, id)
}

// UpdateToken saves a refreshed OAuth token back to the session row.
func (s *Sessions) UpdateToken(ctx context.Context, id string, token *oauth2.Token) {
	_ = s.store.UpdateToken(ctx, id, token.AccessToken, token.RefreshToken, token.Expiry)
}

// SetCookie attaches the session cookie to the response.
func (s *Sessions) SetCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateSessionID creates a cryptographically random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
