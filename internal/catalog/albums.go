package catalog

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// ArtistAlbums returns up to limit studio albums by the given artist.
func (c *SpotifyClient) ArtistAlbums(ctx context.Context, artistID string, limit int) ([]Album, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	page, err := c.api.GetArtistAlbums(ctx, spotify.ID(artistID), []spotify.AlbumType{spotify.AlbumTypeAlbum}, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("fetching artist albums: %w", err)
	}

	albums := make([]Album, 0, len(page.Albums))
	for _, a := range page.Albums {
		albums = append(albums, convertSimpleAlbum(a))
	}
	return albums, nil
}

// RelatedArtists returns artists similar to the given artist.
func (c *SpotifyClient) RelatedArtists(ctx context.Context, artistID string) ([]Artist, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	related, err := c.api.GetRelatedArtists(ctx, spotify.ID(artistID))
	if err != nil {
		return nil, fmt.Errorf("fetching related artists: %w", err)
	}

	artists := make([]Artist, 0, len(related))
	for _, a := range related {
		artists = append(artists, convertFullArtist(a))
	}
	return artists, nil
}

// Recommendations returns albums of tracks recommended from the given
// artist and track seeds.
func (c *SpotifyClient) Recommendations(ctx context.Context, seedArtists, seedTracks []string, limit int) ([]Album, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	seeds := spotify.Seeds{}
	for _, id := range seedArtists {
		seeds.Artists = append(seeds.Artists, spotify.ID(id))
	}
	for _, id := range seedTracks {
		seeds.Tracks = append(seeds.Tracks, spotify.ID(id))
	}

	recs, err := c.api.GetRecommendations(ctx, seeds, nil, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("fetching recommendations: %w", err)
	}

	albums := make([]Album, 0, len(recs.Tracks))
	for _, t := range recs.Tracks {
		albums = append(albums, convertSimpleAlbum(t.Album))
	}
	return albums, nil
}

// SearchAlbums searches the catalog for albums. Results are enriched with
// full album records so popularity and track counts are populated, which
// the roulette quality heuristic depends on.
func (c *SpotifyClient) SearchAlbums(ctx context.Context, query string, limit, offset int) ([]Album, error) {
	searchCtx, cancel := c.callCtx(ctx)
	defer cancel()

	result, err := c.api.Search(searchCtx, query, spotify.SearchTypeAlbum, spotify.Limit(limit), spotify.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("searching albums: %w", err)
	}
	if result.Albums == nil || len(result.Albums.Albums) == 0 {
		return nil, nil
	}

	ids := make([]spotify.ID, 0, len(result.Albums.Albums))
	for _, a := range result.Albums.Albums {
		ids = append(ids, a.ID)
	}

	fullCtx, cancel := c.callCtx(ctx)
	defer cancel()

	full, err := c.api.GetAlbums(fullCtx, ids)
	if err != nil {
		// Fall back to the simple records rather than failing the search.
		albums := make([]Album, 0, len(result.Albums.Albums))
		for _, a := range result.Albums.Albums {
			albums = append(albums, convertSimpleAlbum(a))
		}
		return albums, nil
	}

	albums := make([]Album, 0, len(full))
	for _, a := range full {
		if a == nil {
			continue
		}
		albums = append(albums, convertFullAlbum(a))
	}
	return albums, nil
}

// AlbumTracks returns the track list of an album.
func (c *SpotifyClient) AlbumTracks(ctx context.Context, albumID string) ([]Track, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	page, err := c.api.GetAlbumTracks(ctx, spotify.ID(albumID))
	if err != nil {
		return nil, fmt.Errorf("fetching album tracks: %w", err)
	}

	tracks := make([]Track, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		tracks = append(tracks, convertSimpleTrack(t))
	}
	return tracks, nil
}
