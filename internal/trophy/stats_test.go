package trophy

import (
	"context"
	"testing"
	"time"

	"github.com/spindleapp/spindle/internal/db"
)

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestListenedDayRun(t *testing.T) {
	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{"no listens", nil, 0},
		{"single day", []time.Time{at(2026, time.March, 10, 20)}, 1},
		{
			"three consecutive days",
			[]time.Time{
				at(2026, time.March, 8, 9),
				at(2026, time.March, 9, 22),
				at(2026, time.March, 10, 7),
			},
			3,
		},
		{
			"repeat listens on one day count once",
			[]time.Time{
				at(2026, time.March, 9, 8),
				at(2026, time.March, 10, 9),
				at(2026, time.March, 10, 21),
			},
			2,
		},
		{
			"gap restarts the run",
			[]time.Time{
				at(2026, time.March, 1, 10),
				at(2026, time.March, 2, 10),
				at(2026, time.March, 9, 10),
				at(2026, time.March, 10, 10),
			},
			2,
		},
		{
			"unordered input",
			[]time.Time{
				at(2026, time.March, 10, 10),
				at(2026, time.March, 8, 10),
				at(2026, time.March, 9, 10),
			},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listenedDayRun(tt.times); got != tt.want {
				t.Errorf("listenedDayRun = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEarlyMorningCount(t *testing.T) {
	times := []time.Time{
		at(2026, time.March, 10, 6),  // counts
		time.Date(2026, time.March, 10, 6, 59, 0, 0, time.UTC), // counts
		at(2026, time.March, 10, 7),  // cutoff, does not count
		at(2026, time.March, 10, 23), // does not count
		at(2026, time.March, 11, 0),  // counts
	}
	if got := earlyMorningCount(times); got != 3 {
		t.Errorf("earlyMorningCount = %d, want 3", got)
	}
}

func TestSnapshotToleratesMissingStreak(t *testing.T) {
	store := newMemStore()
	store.total = 4
	store.listened = 2

	stats, err := Snapshot(context.Background(), store, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if stats.CurrentStreak != 0 || stats.LongestStreak != 0 {
		t.Errorf("streak = %d/%d, want 0/0 for a user with no streak row",
			stats.CurrentStreak, stats.LongestStreak)
	}
	if stats.TotalSpins != 4 || stats.ListenedSpins != 2 {
		t.Errorf("spins = %d/%d, want 4/2", stats.TotalSpins, stats.ListenedSpins)
	}
}

func TestSnapshotFillsEveryField(t *testing.T) {
	store := newMemStore()
	store.total = 20
	store.listened = 15
	store.byMode = map[string]int{"saved": 12, "roulette": 8}
	store.genres = 6
	store.perArtist = 3
	store.streak = &db.Streak{Current: 2, Longest: 9}
	store.listens = []time.Time{
		at(2026, time.March, 9, 6),
		at(2026, time.March, 10, 21),
	}

	stats, err := Snapshot(context.Background(), store, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{
		TotalSpins:          20,
		ListenedSpins:       15,
		CurrentStreak:       2,
		LongestStreak:       9,
		UniqueGenreCount:    6,
		SpinsByMode:         map[string]int{"saved": 12, "roulette": 8},
		ListenedDayRun:      2,
		EarlyMorningListens: 1,
		MaxAlbumsPerArtist:  3,
	}
	if stats.TotalSpins != want.TotalSpins ||
		stats.ListenedSpins != want.ListenedSpins ||
		stats.CurrentStreak != want.CurrentStreak ||
		stats.LongestStreak != want.LongestStreak ||
		stats.UniqueGenreCount != want.UniqueGenreCount ||
		stats.ListenedDayRun != want.ListenedDayRun ||
		stats.EarlyMorningListens != want.EarlyMorningListens ||
		stats.MaxAlbumsPerArtist != want.MaxAlbumsPerArtist {
		t.Errorf("Snapshot = %+v, want %+v", stats, want)
	}
	if stats.SpinsByMode["saved"] != 12 || stats.SpinsByMode["roulette"] != 8 {
		t.Errorf("SpinsByMode = %v, want %v", stats.SpinsByMode, want.SpinsByMode)
	}
}
