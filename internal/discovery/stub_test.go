package discovery

import (
	"context"
	"fmt"

	"github.com/spindleapp/spindle/internal/catalog"
)

// stubCatalog implements catalog.Client with overridable behavior per
// method. Nil funcs return empty results, so each test only wires the
// calls it cares about.
type stubCatalog struct {
	savedTracks     func(limit, offset int) ([]catalog.Track, error)
	topArtists      func(window catalog.TimeRange, limit int) ([]catalog.Artist, error)
	topTracks       func(window catalog.TimeRange, limit int) ([]catalog.Track, error)
	recentlyPlayed  func(limit int) ([]catalog.Track, error)
	artistAlbums    func(artistID string, limit int) ([]catalog.Album, error)
	relatedArtists  func(artistID string) ([]catalog.Artist, error)
	recommendations func(seedArtists, seedTracks []string, limit int) ([]catalog.Album, error)
	searchAlbums    func(query string, limit, offset int) ([]catalog.Album, error)
	albumTracks     func(albumID string) ([]catalog.Track, error)
}

func (s *stubCatalog) UserID(context.Context) (string, error) { return "user-1", nil }

func (s *stubCatalog) SavedTracks(_ context.Context, limit, offset int) ([]catalog.Track, error) {
	if s.savedTracks == nil {
		return nil, nil
	}
	return s.savedTracks(limit, offset)
}

func (s *stubCatalog) TopArtists(_ context.Context, window catalog.TimeRange, limit int) ([]catalog.Artist, error) {
	if s.topArtists == nil {
		return nil, nil
	}
	return s.topArtists(window, limit)
}

func (s *stubCatalog) TopTracks(_ context.Context, window catalog.TimeRange, limit int) ([]catalog.Track, error) {
	if s.topTracks == nil {
		return nil, nil
	}
	return s.topTracks(window, limit)
}

func (s *stubCatalog) RecentlyPlayed(_ context.Context, limit int) ([]catalog.Track, error) {
	if s.recentlyPlayed == nil {
		return nil, nil
	}
	return s.recentlyPlayed(limit)
}

func (s *stubCatalog) ArtistAlbums(_ context.Context, artistID string, limit int) ([]catalog.Album, error) {
	if s.artistAlbums == nil {
		return nil, nil
	}
	return s.artistAlbums(artistID, limit)
}

func (s *stubCatalog) RelatedArtists(_ context.Context, artistID string) ([]catalog.Artist, error) {
	if s.relatedArtists == nil {
		return nil, nil
	}
	return s.relatedArtists(artistID)
}

func (s *stubCatalog) Recommendations(_ context.Context, seedArtists, seedTracks []string, limit int) ([]catalog.Album, error) {
	if s.recommendations == nil {
		return nil, nil
	}
	return s.recommendations(seedArtists, seedTracks, limit)
}

func (s *stubCatalog) SearchAlbums(_ context.Context, query string, limit, offset int) ([]catalog.Album, error) {
	if s.searchAlbums == nil {
		return nil, nil
	}
	return s.searchAlbums(query, limit, offset)
}

func (s *stubCatalog) AlbumTracks(_ context.Context, albumID string) ([]catalog.Track, error) {
	if s.albumTracks == nil {
		return nil, nil
	}
	return s.albumTracks(albumID)
}

var _ catalog.Client = (*stubCatalog)(nil)

// makeAlbum builds a plausible studio album for tests.
func makeAlbum(id string) catalog.Album {
	return catalog.Album{
		ID:         id,
		Name:       "Album " + id,
		Artist:     "Artist " + id,
		ArtistID:   "artist-" + id,
		Year:       2020,
		CoverURL:   "https://img.example/" + id,
		TrackCount: 10,
		AlbumType:  "album",
		Popularity: 50,
	}
}

// makeTrack builds a track belonging to the given album.
func makeTrack(id string, album catalog.Album) catalog.Track {
	return catalog.Track{
		ID:       "track-" + id,
		Name:     "Track " + id,
		Artist:   album.Artist,
		ArtistID: album.ArtistID,
		Album:    album,
	}
}

// albumIDs extracts ids for compact assertions.
func albumIDs(albums []catalog.Album) []string {
	ids := make([]string, len(albums))
	for i, a := range albums {
		ids[i] = a.ID
	}
	return ids
}

func idsEqual(got []catalog.Album, want ...string) error {
	ids := albumIDs(got)
	if len(ids) != len(want) {
		return fmt.Errorf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			return fmt.Errorf("got %v, want %v", ids, want)
		}
	}
	return nil
}
