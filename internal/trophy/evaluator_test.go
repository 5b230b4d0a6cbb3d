package trophy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spindleapp/spindle/internal/db"
)

// memStore is an in-memory Store with canned stats and a real earned set.
type memStore struct {
	total      int
	listened   int
	byMode     map[string]int
	genres     int
	listens    []time.Time
	perArtist  int
	streak     *db.Streak
	earned     map[string]bool
	countsErr  error
	insertCall int
}

func newMemStore() *memStore {
	return &memStore{earned: make(map[string]bool)}
}

func (m *memStore) Counts(context.Context, string) (int, int, error) {
	if m.countsErr != nil {
		return 0, 0, m.countsErr
	}
	return m.total, m.listened, nil
}

func (m *memStore) CountsByMode(context.Context, string) (map[string]int, error) {
	return m.byMode, nil
}

func (m *memStore) UniqueGenreCount(context.Context, string) (int, error) {
	return m.genres, nil
}

func (m *memStore) ListenedTimes(context.Context, string) ([]time.Time, error) {
	return m.listens, nil
}

func (m *memStore) MaxListenedAlbumsPerArtist(context.Context, string) (int, error) {
	return m.perArtist, nil
}

func (m *memStore) Streak(context.Context, string) (*db.Streak, error) {
	if m.streak == nil {
		return nil, db.ErrNotFound
	}
	return m.streak, nil
}

func (m *memStore) EarnedIDs(context.Context, string) (map[string]bool, error) {
	earned := make(map[string]bool, len(m.earned))
	for id := range m.earned {
		earned[id] = true
	}
	return earned, nil
}

func (m *memStore) InsertTrophy(_ context.Context, ut *db.UserTrophy) (bool, error) {
	m.insertCall++
	if m.earned[ut.TrophyID] {
		return false, nil
	}
	m.earned[ut.TrophyID] = true
	return true, nil
}

var _ Store = (*memStore)(nil)

func trophyIDs(trophies []Trophy) []string {
	ids := make([]string, len(trophies))
	for i, t := range trophies {
		ids[i] = t.ID
	}
	return ids
}

func TestCheckFirstSpinAwardedOnce(t *testing.T) {
	store := newMemStore()
	store.total = 1
	store.byMode = map[string]int{"saved": 1}

	eval := NewEvaluator(store)
	awarded, err := eval.Check(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(awarded) != 1 || awarded[0].ID != "first-spin" {
		t.Fatalf("awarded %v, want exactly [first-spin]", trophyIDs(awarded))
	}

	// No new activity: a second check awards nothing.
	again, err := eval.Check(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Fatalf("second check awarded %v, want nothing", trophyIDs(again))
	}
}

func TestCheckAwardsEveryNewlySatisfiedTrophy(t *testing.T) {
	store := newMemStore()
	store.total = 12
	store.listened = 3
	store.byMode = map[string]int{"roulette": 10, "saved": 2}
	store.streak = &db.Streak{Current: 3, Longest: 3}

	awarded, err := NewEvaluator(store).Check(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{
		"first-spin":   true,
		"ten-spins":    true,
		"first-listen": true,
		"streak-three": true,
		"roulette-ten": true,
	}
	if len(awarded) != len(want) {
		t.Fatalf("awarded %v, want %d trophies", trophyIDs(awarded), len(want))
	}
	for _, tr := range awarded {
		if !want[tr.ID] {
			t.Errorf("unexpected award %q", tr.ID)
		}
	}
}

func TestCheckSkipsAlreadyEarned(t *testing.T) {
	store := newMemStore()
	store.total = 1
	store.earned["first-spin"] = true

	awarded, err := NewEvaluator(store).Check(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(awarded) != 0 {
		t.Fatalf("awarded %v, want nothing", trophyIDs(awarded))
	}
	if store.insertCall != 0 {
		t.Errorf("insert called %d times for an earned trophy", store.insertCall)
	}
}

func TestCheckLostInsertRaceIsNotAnAward(t *testing.T) {
	// EarnedIDs says not earned, but the insert reports a conflict: another
	// check got there first. The trophy must not be reported as new.
	store := newMemStore()
	store.total = 1
	store.earned["first-spin"] = true
	raced := &racedStore{memStore: store}

	awarded, err := NewEvaluator(raced).Check(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(awarded) != 0 {
		t.Fatalf("awarded %v, want nothing after lost race", trophyIDs(awarded))
	}
}

// racedStore hides the earned set from EarnedIDs so inserts hit conflicts.
type racedStore struct {
	*memStore
}

func (r *racedStore) EarnedIDs(context.Context, string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func TestCheckUsesInjectedClock(t *testing.T) {
	store := newMemStore()
	store.total = 1
	fixed := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

	var gotEarnedAt time.Time
	clock := func() time.Time { return fixed }
	eval := NewEvaluator(&recordingStore{memStore: store, onInsert: func(ut *db.UserTrophy) {
		gotEarnedAt = ut.EarnedAt
	}}, WithNow(clock))

	if _, err := eval.Check(context.Background(), "user-1"); err != nil {
		t.Fatal(err)
	}
	if !gotEarnedAt.Equal(fixed) {
		t.Errorf("EarnedAt = %v, want %v", gotEarnedAt, fixed)
	}
}

type recordingStore struct {
	*memStore
	onInsert func(*db.UserTrophy)
}

func (r *recordingStore) InsertTrophy(ctx context.Context, ut *db.UserTrophy) (bool, error) {
	r.onInsert(ut)
	return r.memStore.InsertTrophy(ctx, ut)
}

func TestCheckSnapshotErrorPropagates(t *testing.T) {
	store := newMemStore()
	store.countsErr = errors.New("connection reset")

	_, err := NewEvaluator(store).Check(context.Background(), "user-1")
	if err == nil || !errors.Is(err, store.countsErr) {
		t.Fatalf("got %v, want wrapped counts error", err)
	}
}

func TestSatisfied(t *testing.T) {
	tests := []struct {
		name  string
		req   Requirement
		stats Stats
		want  bool
	}{
		{"total spins met", Requirement{Type: ReqTotalSpins, Target: 10}, Stats{TotalSpins: 10}, true},
		{"total spins short", Requirement{Type: ReqTotalSpins, Target: 10}, Stats{TotalSpins: 9}, false},
		{"listened spins", Requirement{Type: ReqListenedSpins, Target: 25}, Stats{ListenedSpins: 30}, true},
		{"current streak", Requirement{Type: ReqCurrentStreak, Target: 3}, Stats{CurrentStreak: 3}, true},
		{"longest streak counts past runs", Requirement{Type: ReqLongestStreak, Target: 30}, Stats{CurrentStreak: 1, LongestStreak: 30}, true},
		{"unique genres", Requirement{Type: ReqUniqueGenres, Target: 5}, Stats{UniqueGenreCount: 4}, false},
		{"mode-specific count", Requirement{Type: ReqDiscoveryMode, Target: 10, Mode: "roulette"}, Stats{SpinsByMode: map[string]int{"roulette": 10, "saved": 40}}, true},
		{"mode-specific wrong mode", Requirement{Type: ReqDiscoveryMode, Target: 10, Mode: "roulette"}, Stats{SpinsByMode: map[string]int{"saved": 40}}, false},
		{"mode-specific nil map", Requirement{Type: ReqDiscoveryMode, Target: 10, Mode: "roulette"}, Stats{}, false},
		{"perfect week at boundary", Requirement{Type: ReqPerfectWeek, Target: 7}, Stats{ListenedDayRun: 7}, true},
		{"perfect week one short", Requirement{Type: ReqPerfectWeek, Target: 7}, Stats{ListenedDayRun: 6}, false},
		{"perfect month", Requirement{Type: ReqPerfectMonth, Target: 30}, Stats{ListenedDayRun: 31}, true},
		{"early morning spins", Requirement{Type: ReqEarlyMorningSpins, Target: 10}, Stats{EarlyMorningListens: 10}, true},
		{"same artist completion", Requirement{Type: ReqSameArtistCompletion, Target: 3}, Stats{MaxAlbumsPerArtist: 3}, true},
		{"unknown type never satisfied", Requirement{Type: RequirementType("listening_hours"), Target: 0}, Stats{TotalSpins: 1000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Satisfied(tt.req, tt.stats); got != tt.want {
				t.Errorf("Satisfied(%+v) = %v, want %v", tt.req, got, tt.want)
			}
		})
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, tr := range Catalog() {
		if seen[tr.ID] {
			t.Errorf("duplicate trophy id %q", tr.ID)
		}
		seen[tr.ID] = true
		if tr.Requirement.Target <= 0 && tr.Requirement.Type != "" {
			t.Errorf("trophy %q has non-positive target", tr.ID)
		}
	}
}

func TestByID(t *testing.T) {
	tr, ok := ByID("first-spin")
	if !ok || tr.Name != "First Spin" {
		t.Fatalf("ByID(first-spin) = %+v, %v", tr, ok)
	}
	if _, ok := ByID("no-such-trophy"); ok {
		t.Fatal("ByID returned a trophy for an unknown id")
	}
}
