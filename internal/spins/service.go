// Package spins orchestrates the two core flows: handing a user an album
// ("spin") and confirming they listened to it.
package spins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spindleapp/spindle/internal/catalog"
	"github.com/spindleapp/spindle/internal/db"
	"github.com/spindleapp/spindle/internal/discovery"
	"github.com/spindleapp/spindle/internal/logging"
	"github.com/spindleapp/spindle/internal/metrics"
	"github.com/spindleapp/spindle/internal/streak"
	"github.com/spindleapp/spindle/internal/trophy"
)

// The service depends on narrow views of its collaborators so each flow can
// be tested against stubs.
type candidateSourcer interface {
	Source(ctx context.Context, cat catalog.Client, mode discovery.Mode) ([]catalog.Album, error)
}

type albumSelector interface {
	Select(ctx context.Context, userID string, mode discovery.Mode, candidates []catalog.Album) (*discovery.Result, error)
}

type streakTracker interface {
	Confirm(ctx context.Context, userID string, now time.Time) (*db.Streak, error)
}

type trophyChecker interface {
	Check(ctx context.Context, userID string) ([]trophy.Trophy, error)
}

type spinStore interface {
	MarkListened(ctx context.Context, userID string, id uuid.UUID, at time.Time) error
	RecentAlbumIDs(ctx context.Context, userID string, days int) ([]string, error)
}

type streakStore interface {
	Get(ctx context.Context, userID string) (*db.Streak, error)
}

type trophyStore interface {
	GetForUser(ctx context.Context, userID string) ([]db.UserTrophy, error)
}

// Service runs the spin and listened flows.
type Service struct {
	spins     spinStore
	streaks   streakStore
	trophies  trophyStore
	sourcer   candidateSourcer
	selector  albumSelector
	tracker   streakTracker
	evaluator trophyChecker
	now       func() time.Time
}

// NewService wires a Service from the database.
func NewService(database *db.DB) *Service {
	return &Service{
		spins:     database.Spins(),
		streaks:   database.Streaks(),
		trophies:  database.Trophies(),
		sourcer:   discovery.NewSourcer(),
		selector:  discovery.NewSelector(discovery.NewStore(database)),
		tracker:   streak.NewTracker(database.Streaks()),
		evaluator: trophy.NewEvaluator(trophy.NewStore(database)),
		now:       time.Now,
	}
}

// Spin sources, filters, and selects one album for the user in the given
// mode, persisting the resulting spin.
func (s *Service) Spin(ctx context.Context, cat catalog.Client, userID string, mode discovery.Mode) (*discovery.Result, error) {
	candidates, err := s.sourcer.Source(ctx, cat, mode)
	if err != nil {
		return nil, err
	}

	filtered := discovery.ApplyQualityFilter(candidates)

	recent, err := s.spins.RecentAlbumIDs(ctx, userID, discovery.RecencyWindowDays)
	if err != nil {
		return nil, fmt.Errorf("loading recent spins: %w", err)
	}
	final := discovery.ExcludeRecent(filtered, recent)

	result, err := s.selector.Select(ctx, userID, mode, final)
	if err != nil {
		var noCandidates *discovery.NoCandidatesError
		if errors.As(err, &noCandidates) {
			metrics.NoCandidatesTotal.WithLabelValues(string(mode)).Inc()
		}
		return nil, err
	}

	metrics.SpinsTotal.WithLabelValues(string(mode)).Inc()
	logging.Info().Str("user", userID).Str("mode", string(mode)).
		Str("album", result.Album.ID).Msg("spin selected")
	return result, nil
}

// StreakState is the streak portion of a listened response.
type StreakState struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ListenResult is the outcome of a listened confirmation.
type ListenResult struct {
	Streak      StreakState     `json:"streak"`
	NewTrophies []trophy.Trophy `json:"newTrophies,omitempty"`
}

// Listened confirms the user finished a spin. The spin's listened timestamp
// is set exactly once; the streak advances under a row lock; the trophy
// check runs last, and its failures are logged and swallowed so a broken
// trophy never blocks the confirmation. Repeat confirmations return the
// current streak without advancing it, so replaying an old spin on a later
// day earns nothing.
func (s *Service) Listened(ctx context.Context, userID string, spinID uuid.UUID) (*ListenResult, error) {
	now := s.now()

	err := s.spins.MarkListened(ctx, userID, spinID, now)
	if errors.Is(err, db.ErrAlreadyListened) {
		st, err := s.Streak(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ListenResult{Streak: *st}, nil
	}
	if err != nil {
		return nil, err
	}
	metrics.ListensTotal.Inc()

	st, err := s.tracker.Confirm(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("advancing streak: %w", err)
	}

	newTrophies, err := s.evaluator.Check(ctx, userID)
	if err != nil {
		logging.Error().Err(err).Str("user", userID).Msg("trophy evaluation failed")
		newTrophies = nil
	}
	if n := len(newTrophies); n > 0 {
		metrics.TrophiesAwardedTotal.Add(float64(n))
	}

	return &ListenResult{
		Streak:      StreakState{Current: st.Current, Longest: st.Longest},
		NewTrophies: newTrophies,
	}, nil
}

// Streak returns the user's current streak state, zero-valued for users
// with no confirmed listens yet.
func (s *Service) Streak(ctx context.Context, userID string) (*StreakState, error) {
	st, err := s.streaks.Get(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return &StreakState{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &StreakState{Current: st.Current, Longest: st.Longest}, nil
}

// Trophies returns the user's earned trophies joined with their catalog
// definitions.
func (s *Service) Trophies(ctx context.Context, userID string) ([]EarnedTrophy, error) {
	rows, err := s.trophies.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned := make([]EarnedTrophy, 0, len(rows))
	for _, row := range rows {
		def, ok := trophy.ByID(row.TrophyID)
		if !ok {
			// Catalog entry was removed after the award; keep the row.
			def = trophy.Trophy{ID: row.TrophyID, Name: row.TrophyID}
		}
		earned = append(earned, EarnedTrophy{
			Trophy:   def,
			Progress: row.Progress,
			EarnedAt: row.EarnedAt,
		})
	}
	return earned, nil
}

// EarnedTrophy is a user's earned trophy with its definition.
type EarnedTrophy struct {
	Trophy   trophy.Trophy `json:"trophy"`
	Progress int           `json:"progress"`
	EarnedAt time.Time     `json:"earnedAt"`
}
