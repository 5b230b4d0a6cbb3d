// Package catalog wraps the Spotify Web API behind a provider-neutral
// client interface used by the discovery engine.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/zmb3/spotify/v2"
)

// DefaultCallTimeout bounds each outbound catalog call. Sourcing strategies
// issue sequential calls, so a stuck call would otherwise stall the whole
// spin request.
const DefaultCallTimeout = 8 * time.Second

// Client is the read surface the discovery engine consumes. Implementations
// are bound to a single user credential at construction and are safe for
// use within a single request.
type Client interface {
	UserID(ctx context.Context) (string, error)
	SavedTracks(ctx context.Context, limit, offset int) ([]Track, error)
	TopArtists(ctx context.Context, window TimeRange, limit int) ([]Artist, error)
	TopTracks(ctx context.Context, window TimeRange, limit int) ([]Track, error)
	RecentlyPlayed(ctx context.Context, limit int) ([]Track, error)
	ArtistAlbums(ctx context.Context, artistID string, limit int) ([]Album, error)
	RelatedArtists(ctx context.Context, artistID string) ([]Artist, error)
	Recommendations(ctx context.Context, seedArtists, seedTracks []string, limit int) ([]Album, error)
	SearchAlbums(ctx context.Context, query string, limit, offset int) ([]Album, error)
	AlbumTracks(ctx context.Context, albumID string) ([]Track, error)
}

// SpotifyClient implements Client on top of an authenticated
// zmb3/spotify client.
type SpotifyClient struct {
	api         *spotify.Client
	callTimeout time.Duration
}

// Option configures a SpotifyClient.
type Option func(*SpotifyClient)

// WithCallTimeout overrides the per-call timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(c *SpotifyClient) {
		if d > 0 {
			c.callTimeout = d
		}
	}
}

// New creates a catalog client from an already-authenticated Spotify API
// client. The credential is immutable for the life of the client.
func New(api *spotify.Client, opts ...Option) *SpotifyClient {
	c := &SpotifyClient{
		api:         api,
		callTimeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserID returns the credential owner's Spotify ID.
func (c *SpotifyClient) UserID(ctx context.Context) (string, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("getting current user: %w", err)
	}
	return user.ID, nil
}

// callCtx derives a per-call deadline from the request context.
func (c *SpotifyClient) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.callTimeout)
}

var _ Client = (*SpotifyClient)(nil)
