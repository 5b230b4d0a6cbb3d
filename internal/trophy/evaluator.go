package trophy

import (
	"context"
	"fmt"
	"time"

	"github.com/spindleapp/spindle/internal/db"
	"github.com/spindleapp/spindle/internal/logging"
)

// Evaluator awards trophies whose requirements a user newly satisfies.
type Evaluator struct {
	store   Store
	catalog []Trophy
	now     func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCatalog replaces the built-in trophy catalog.
func WithCatalog(catalog []Trophy) Option {
	return func(e *Evaluator) {
		e.catalog = catalog
	}
}

// WithNow replaces the clock.
func WithNow(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// NewEvaluator creates an Evaluator over the given store.
func NewEvaluator(store Store, opts ...Option) *Evaluator {
	e := &Evaluator{
		store:   store,
		catalog: Catalog(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check computes a fresh stats snapshot and awards every not-yet-earned
// trophy whose requirement it satisfies. Earned trophies are permanently
// excluded from evaluation, so repeated calls with no new activity award
// nothing. A lost insert race counts as already earned, not as an award.
func (e *Evaluator) Check(ctx context.Context, userID string) ([]Trophy, error) {
	earned, err := e.store.EarnedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading earned trophies: %w", err)
	}

	stats, err := Snapshot(ctx, e.store, userID)
	if err != nil {
		return nil, err
	}

	var awarded []Trophy
	for _, t := range e.catalog {
		if earned[t.ID] {
			continue
		}
		if !Satisfied(t.Requirement, stats) {
			continue
		}

		inserted, err := e.store.InsertTrophy(ctx, &db.UserTrophy{
			UserID:   userID,
			TrophyID: t.ID,
			Progress: t.Requirement.Target,
			EarnedAt: e.now(),
		})
		if err != nil {
			return awarded, fmt.Errorf("awarding trophy %q: %w", t.ID, err)
		}
		if !inserted {
			logging.Debug().Str("trophy", t.ID).Str("user", userID).
				Msg("trophy already earned concurrently")
			continue
		}
		awarded = append(awarded, t)
	}
	return awarded, nil
}

// Satisfied evaluates a requirement against a stats snapshot. Requirement
// types with no evaluation rule are never satisfied.
func Satisfied(req Requirement, stats Stats) bool {
	switch req.Type {
	case ReqTotalSpins:
		return stats.TotalSpins >= req.Target
	case ReqListenedSpins:
		return stats.ListenedSpins >= req.Target
	case ReqCurrentStreak:
		return stats.CurrentStreak >= req.Target
	case ReqLongestStreak:
		return stats.LongestStreak >= req.Target
	case ReqUniqueGenres:
		return stats.UniqueGenreCount >= req.Target
	case ReqDiscoveryMode:
		return stats.SpinsByMode[req.Mode] >= req.Target
	case ReqPerfectWeek, ReqPerfectMonth:
		return stats.ListenedDayRun >= req.Target
	case ReqEarlyMorningSpins:
		return stats.EarlyMorningListens >= req.Target
	case ReqSameArtistCompletion:
		return stats.MaxAlbumsPerArtist >= req.Target
	default:
		return false
	}
}
