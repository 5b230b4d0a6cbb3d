package discovery

import (
	"context"

	"github.com/spindleapp/spindle/internal/catalog"
	"github.com/spindleapp/spindle/internal/logging"
)

const (
	discoverySeedArtists     = 3
	discoveryNewPerSeed      = 3
	discoveryAlbumsPerArtist = 5
	discoveryRecentPlays     = 50
)

// newArtistsStrategy sources albums from artists the user has never been
// exposed to. It never falls back to the user's own known music: if nothing
// new can be found, the result is empty.
type newArtistsStrategy struct{}

func (n *newArtistsStrategy) Mode() Mode { return ModeDiscovery }

func (n *newArtistsStrategy) Source(ctx context.Context, cat catalog.Client) ([]catalog.Album, error) {
	excluded, err := knownArtistIDs(ctx, cat)
	if err != nil {
		return nil, err
	}

	seeds, err := cat.TopArtists(ctx, catalog.RangeMedium, discoverySeedArtists)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Warn().Err(err).Str("mode", string(ModeDiscovery)).Msg("top artists fetch failed")
	}

	var albums []catalog.Album
	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		related, err := cat.RelatedArtists(ctx, seed.ID)
		if err != nil {
			logging.Debug().Err(err).Str("artist", seed.ID).Msg("related artists fetch failed")
			continue
		}

		fresh := 0
		for _, a := range related {
			if excluded[a.ID] {
				continue
			}
			got, err := cat.ArtistAlbums(ctx, a.ID, discoveryAlbumsPerArtist)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				logging.Debug().Err(err).Str("artist", a.ID).Msg("artist albums fetch failed")
				continue
			}
			albums = append(albums, got...)
			fresh++
			if fresh >= discoveryNewPerSeed {
				break
			}
		}
	}

	albums = dedupeAlbums(albums)
	if len(albums) > 0 {
		return albums, nil
	}

	// Last resort: recommendations, post-filtered so nothing by an artist
	// the user already knows slips through.
	recs, err := sourceRecommendedAlbums(ctx, cat)
	if err != nil {
		return nil, err
	}
	var unknown []catalog.Album
	for _, a := range recs {
		if a.ArtistID != "" && excluded[a.ArtistID] {
			continue
		}
		unknown = append(unknown, a)
	}
	return unknown, nil
}

// knownArtistIDs builds the exclusion set: every artist the user has been
// exposed to via top charts in any window, recent plays, or the saved
// library. Individual fetch failures just shrink the set.
func knownArtistIDs(ctx context.Context, cat catalog.Client) (map[string]bool, error) {
	known := make(map[string]bool)

	for _, window := range []catalog.TimeRange{catalog.RangeShort, catalog.RangeMedium, catalog.RangeLong} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		artists, err := cat.TopArtists(ctx, window, 50)
		if err != nil {
			logging.Debug().Err(err).Str("window", string(window)).Msg("top artists fetch failed")
			continue
		}
		for _, a := range artists {
			known[a.ID] = true
		}
	}

	recent, err := cat.RecentlyPlayed(ctx, discoveryRecentPlays)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Debug().Err(err).Msg("recently played fetch failed")
	}
	for _, t := range recent {
		if t.ArtistID != "" {
			known[t.ArtistID] = true
		}
	}

	saved, err := cat.SavedTracks(ctx, savedPageSize, 0)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Debug().Err(err).Msg("saved tracks fetch failed")
	}
	for _, t := range saved {
		if t.ArtistID != "" {
			known[t.ArtistID] = true
		}
	}

	return known, nil
}
