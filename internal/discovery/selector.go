package discovery

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/spindleapp/spindle/internal/catalog"
	"github.com/spindleapp/spindle/internal/db"
)

// NoCandidatesError means sourcing, filtering, and recency exclusion left
// nothing to pick for a mode. Callers surface it as "no albums available
// for this mode, try another"; it is not retried.
type NoCandidatesError struct {
	Mode Mode
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no album candidates for mode %q", e.Mode)
}

// Result is a successful selection.
type Result struct {
	SpinID uuid.UUID
	Album  catalog.Album
	Mode   Mode
}

// Store persists a selection: the chosen album goes into the local cache and
// the spin is recorded with a nil listened timestamp.
type Store interface {
	UpsertAlbum(ctx context.Context, album *db.Album) error
	CreateSpin(ctx context.Context, spin *db.Spin) error
}

type dbStore struct {
	database *db.DB
}

// NewStore adapts the database to the selection Store.
func NewStore(database *db.DB) Store {
	return &dbStore{database: database}
}

func (s *dbStore) UpsertAlbum(ctx context.Context, album *db.Album) error {
	return s.database.Albums().Upsert(ctx, album)
}

func (s *dbStore) CreateSpin(ctx context.Context, spin *db.Spin) error {
	return s.database.Spins().Create(ctx, spin)
}

// Selector performs the final uniform random pick and persists the outcome.
type Selector struct {
	store Store
	now   func() time.Time
	pick  func(n int) int
}

// NewSelector creates a Selector over the given store.
func NewSelector(store Store) *Selector {
	return &Selector{
		store: store,
		now:   time.Now,
		pick:  rand.IntN,
	}
}

// Select picks one candidate uniformly at random, caches the album, and
// records the spin with a nil listened timestamp.
func (s *Selector) Select(ctx context.Context, userID string, mode Mode, candidates []catalog.Album) (*Result, error) {
	if len(candidates) == 0 {
		return nil, &NoCandidatesError{Mode: mode}
	}

	chosen := candidates[s.pick(len(candidates))]

	album := toDBAlbum(chosen)
	if err := s.store.UpsertAlbum(ctx, &album); err != nil {
		return nil, fmt.Errorf("caching album: %w", err)
	}

	spin := db.Spin{
		ID:        uuid.New(),
		UserID:    userID,
		Mode:      string(mode),
		AlbumID:   chosen.ID,
		StartedAt: s.now(),
	}
	if err := s.store.CreateSpin(ctx, &spin); err != nil {
		return nil, fmt.Errorf("recording spin: %w", err)
	}

	return &Result{
		SpinID: spin.ID,
		Album:  chosen,
		Mode:   mode,
	}, nil
}

func toDBAlbum(a catalog.Album) db.Album {
	album := db.Album{
		ID:         a.ID,
		Name:       a.Name,
		Artist:     a.Artist,
		ArtistID:   a.ArtistID,
		Genres:     a.Genres,
		TrackCount: a.TrackCount,
		AlbumType:  a.AlbumType,
		Popularity: a.Popularity,
	}
	if a.Year != 0 {
		year := a.Year
		album.Year = &year
	}
	if a.CoverURL != "" {
		cover := a.CoverURL
		album.CoverURL = &cover
	}
	return album
}
