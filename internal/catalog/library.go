package catalog

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// SavedTracks returns one page of the user's saved tracks.
func (c *SpotifyClient) SavedTracks(ctx context.Context, limit, offset int) ([]Track, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	page, err := c.api.CurrentUsersTracks(ctx, spotify.Limit(limit), spotify.Offset(offset))
	if err != nil {
		return nil, fmt.Errorf("fetching saved tracks: %w", err)
	}

	tracks := make([]Track, 0, len(page.Tracks))
	for _, saved := range page.Tracks {
		tracks = append(tracks, convertFullTrack(saved.FullTrack))
	}
	return tracks, nil
}

// TopArtists returns the user's top artists for the given window.
func (c *SpotifyClient) TopArtists(ctx context.Context, window TimeRange, limit int) ([]Artist, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	page, err := c.api.CurrentUsersTopArtists(ctx, spotify.Limit(limit), spotify.Timerange(spotify.Range(window)))
	if err != nil {
		return nil, fmt.Errorf("fetching top artists: %w", err)
	}

	artists := make([]Artist, 0, len(page.Artists))
	for _, a := range page.Artists {
		artists = append(artists, convertFullArtist(a))
	}
	return artists, nil
}

// TopTracks returns the user's top tracks for the given window.
func (c *SpotifyClient) TopTracks(ctx context.Context, window TimeRange, limit int) ([]Track, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	page, err := c.api.CurrentUsersTopTracks(ctx, spotify.Limit(limit), spotify.Timerange(spotify.Range(window)))
	if err != nil {
		return nil, fmt.Errorf("fetching top tracks: %w", err)
	}

	tracks := make([]Track, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		tracks = append(tracks, convertFullTrack(t))
	}
	return tracks, nil
}

// RecentlyPlayed returns the user's most recent plays, newest first.
func (c *SpotifyClient) RecentlyPlayed(ctx context.Context, limit int) ([]Track, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	items, err := c.api.PlayerRecentlyPlayedOpt(ctx, &spotify.RecentlyPlayedOptions{Limit: spotify.Numeric(limit)})
	if err != nil {
		return nil, fmt.Errorf("fetching recently played: %w", err)
	}

	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, convertSimpleTrack(item.Track))
	}
	return tracks, nil
}
