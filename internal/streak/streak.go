// Package streak implements the consecutive-day listening streak state
// machine.
package streak

import (
	"context"
	"time"

	"github.com/spindleapp/spindle/internal/db"
)

// Advance computes the next streak state from a listened confirmation at
// now. It is a pure transition function:
//
//   - no prior date: current becomes 1
//   - same calendar day: no change (a second confirmation is a no-op)
//   - exactly the next day: current increments
//   - anything else, including clock moving backwards: current resets to 1
//
// Longest never decreases and the last spin date always lands on now's day.
func Advance(s db.Streak, now time.Time) db.Streak {
	today := dateOf(now)
	next := s

	switch {
	case s.LastSpinDate == nil:
		next.Current = 1
	case dateOf(*s.LastSpinDate).Equal(today):
		// Same-day repeat confirmation.
	case dateOf(*s.LastSpinDate).AddDate(0, 0, 1).Equal(today):
		next.Current = s.Current + 1
	default:
		next.Current = 1
	}

	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	next.LastSpinDate = &today
	return next
}

// dateOf truncates a timestamp to its calendar day, normalized to UTC
// midnight so stored dates compare regardless of the source location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Advancer applies a streak transition to stored state. The database
// implementation runs the transition under a per-user row lock so concurrent
// confirmations serialize.
type Advancer interface {
	Advance(ctx context.Context, userID string, transition func(db.Streak) db.Streak) (*db.Streak, error)
}

// Tracker persists streak transitions.
type Tracker struct {
	streaks Advancer
}

// NewTracker creates a Tracker over the given streak store.
func NewTracker(streaks Advancer) *Tracker {
	return &Tracker{streaks: streaks}
}

// Confirm advances the user's streak for a listened confirmation at now.
// Same-day repeats are no-ops.
func (t *Tracker) Confirm(ctx context.Context, userID string, now time.Time) (*db.Streak, error) {
	return t.streaks.Advance(ctx, userID, func(s db.Streak) db.Streak {
		return Advance(s, now)
	})
}

var _ Advancer = (*db.StreakRepository)(nil)
