package trophy

import (
	"context"
	"time"

	"github.com/spindleapp/spindle/internal/db"
)

// dbStore adapts the database repositories to the Store interface.
type dbStore struct {
	database *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) Store {
	return &dbStore{database: database}
}

func (s *dbStore) Counts(ctx context.Context, userID string) (int, int, error) {
	return s.database.Spins().Counts(ctx, userID)
}

func (s *dbStore) CountsByMode(ctx context.Context, userID string) (map[string]int, error) {
	return s.database.Spins().CountsByMode(ctx, userID)
}

func (s *dbStore) UniqueGenreCount(ctx context.Context, userID string) (int, error) {
	return s.database.Spins().UniqueGenreCount(ctx, userID)
}

func (s *dbStore) ListenedTimes(ctx context.Context, userID string) ([]time.Time, error) {
	return s.database.Spins().ListenedTimes(ctx, userID)
}

func (s *dbStore) MaxListenedAlbumsPerArtist(ctx context.Context, userID string) (int, error) {
	return s.database.Spins().MaxListenedAlbumsPerArtist(ctx, userID)
}

func (s *dbStore) Streak(ctx context.Context, userID string) (*db.Streak, error) {
	return s.database.Streaks().Get(ctx, userID)
}

func (s *dbStore) EarnedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	return s.database.Trophies().EarnedIDs(ctx, userID)
}

func (s *dbStore) InsertTrophy(ctx context.Context, ut *db.UserTrophy) (bool, error) {
	return s.database.Trophies().Insert(ctx, ut)
}
