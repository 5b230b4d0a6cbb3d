package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a Spotify user profile.
type User struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session represents an authenticated web session.
type Session struct {
	ID           string
	UserID       string
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Album is a locally cached catalog album. Rows are upserted whenever an
// album is selected, so stale fields are overwritten on re-selection.
type Album struct {
	ID         string
	Name       string
	Artist     string
	ArtistID   string
	Year       *int // nullable
	CoverURL   *string
	Genres     []string
	TrackCount int
	AlbumType  string
	Popularity int
	CreatedAt  time.Time
}

// Spin is one album handed to a user. ListenedAt moves from nil to a
// timestamp exactly once.
type Spin struct {
	ID         uuid.UUID
	UserID     string
	Mode       string
	AlbumID    string
	StartedAt  time.Time
	ListenedAt *time.Time // nullable
}

// Streak holds a user's consecutive-day listening state, keyed 1:1 by user.
// Longest never decreases and is always >= Current.
type Streak struct {
	UserID       string
	Current      int
	Longest      int
	LastSpinDate *time.Time // nullable, date-valued
	UpdatedAt    time.Time
}

// UserTrophy is one user's earned instance of a trophy definition.
// Rows are insert-only: never updated, re-evaluated, or revoked.
type UserTrophy struct {
	UserID   string
	TrophyID string
	Progress int
	EarnedAt time.Time
}
