package trophy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spindleapp/spindle/internal/db"
)

// earlyMorningCutoff is the hour before which a listen counts as early
// morning.
const earlyMorningCutoff = 7

// Stats is a point-in-time snapshot of a user's activity. It is recomputed
// fresh on every trophy check and never cached across requests.
type Stats struct {
	TotalSpins          int
	ListenedSpins       int
	CurrentStreak       int
	LongestStreak       int
	UniqueGenreCount    int
	SpinsByMode         map[string]int
	ListenedDayRun      int
	EarlyMorningListens int
	MaxAlbumsPerArtist  int
}

// Store is the persistence surface the evaluator reads and writes.
type Store interface {
	Counts(ctx context.Context, userID string) (total, listened int, err error)
	CountsByMode(ctx context.Context, userID string) (map[string]int, error)
	UniqueGenreCount(ctx context.Context, userID string) (int, error)
	ListenedTimes(ctx context.Context, userID string) ([]time.Time, error)
	MaxListenedAlbumsPerArtist(ctx context.Context, userID string) (int, error)
	Streak(ctx context.Context, userID string) (*db.Streak, error)
	EarnedIDs(ctx context.Context, userID string) (map[string]bool, error)
	InsertTrophy(ctx context.Context, ut *db.UserTrophy) (bool, error)
}

// Snapshot computes a fresh Stats for a user.
func Snapshot(ctx context.Context, store Store, userID string) (Stats, error) {
	var stats Stats

	total, listened, err := store.Counts(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("counting spins: %w", err)
	}
	stats.TotalSpins = total
	stats.ListenedSpins = listened

	byMode, err := store.CountsByMode(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("counting spins by mode: %w", err)
	}
	stats.SpinsByMode = byMode

	genres, err := store.UniqueGenreCount(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("counting genres: %w", err)
	}
	stats.UniqueGenreCount = genres

	s, err := store.Streak(ctx, userID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return stats, fmt.Errorf("loading streak: %w", err)
	}
	if s != nil {
		stats.CurrentStreak = s.Current
		stats.LongestStreak = s.Longest
	}

	times, err := store.ListenedTimes(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("loading listen history: %w", err)
	}
	stats.ListenedDayRun = listenedDayRun(times)
	stats.EarlyMorningListens = earlyMorningCount(times)

	perArtist, err := store.MaxListenedAlbumsPerArtist(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("counting albums per artist: %w", err)
	}
	stats.MaxAlbumsPerArtist = perArtist

	return stats, nil
}

// listenedDayRun returns the length of the consecutive-day run of listens
// ending at the most recent listened day. Multiple listens on one day count
// once.
func listenedDayRun(times []time.Time) int {
	if len(times) == 0 {
		return 0
	}

	daySet := make(map[time.Time]bool, len(times))
	var latest time.Time
	for _, t := range times {
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		daySet[day] = true
		if day.After(latest) {
			latest = day
		}
	}

	run := 0
	for day := latest; daySet[day]; day = day.AddDate(0, 0, -1) {
		run++
	}
	return run
}

// earlyMorningCount counts listens confirmed before the early-morning
// cutoff hour.
func earlyMorningCount(times []time.Time) int {
	n := 0
	for _, t := range times {
		if t.Hour() < earlyMorningCutoff {
			n++
		}
	}
	return n
}
