package discovery

import (
	"context"

	"github.com/spindleapp/spindle/internal/catalog"
	"github.com/spindleapp/spindle/internal/logging"
)

const (
	recSeedArtists     = 3
	recSeedTracks      = 2
	recLimit           = 40
	recRecentPlays     = 20
	recFallbackArtists = 3
	recAlbumsPerArtist = 5
)

// recommendationsStrategy seeds the catalog's recommendation engine with the
// user's medium-term top artists and tracks, with fallbacks through recent
// plays and the saved library.
type recommendationsStrategy struct{}

func (r *recommendationsStrategy) Mode() Mode { return ModeRecommendations }

func (r *recommendationsStrategy) Source(ctx context.Context, cat catalog.Client) ([]catalog.Album, error) {
	return sourceRecommendedAlbums(ctx, cat)
}

// sourceRecommendedAlbums is the recommendations fallback chain. It is also
// reused by the discovery strategy as its own last resort.
func sourceRecommendedAlbums(ctx context.Context, cat catalog.Client) ([]catalog.Album, error) {
	seedArtists, seedTracks := gatherSeeds(ctx, cat)

	if len(seedArtists) == 0 && len(seedTracks) == 0 {
		// No listening history to seed with: derive artists from recent
		// plays, then fall back to the saved library.
		albums, err := albumsFromRecentArtists(ctx, cat)
		if err != nil {
			return nil, err
		}
		if len(albums) > 0 {
			return albums, nil
		}
		return sourceSavedAlbums(ctx, cat)
	}

	albums, err := cat.Recommendations(ctx, seedArtists, seedTracks, recLimit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Warn().Err(err).Str("mode", string(ModeRecommendations)).
			Msg("seeded recommendations failed, falling back to top tracks")

		tracks, tErr := cat.TopTracks(ctx, catalog.RangeLong, 50)
		if tErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.Warn().Err(tErr).Str("mode", string(ModeRecommendations)).
				Msg("long-term top tracks failed, falling back to saved library")
			return sourceSavedAlbums(ctx, cat)
		}
		if fallback := albumsFromTracks(tracks); len(fallback) > 0 {
			return fallback, nil
		}
		return sourceSavedAlbums(ctx, cat)
	}

	return dedupeAlbums(albums), nil
}

// gatherSeeds collects up to recSeedArtists top artist IDs and recSeedTracks
// top track IDs from the medium-term window. Failures count as no seeds.
func gatherSeeds(ctx context.Context, cat catalog.Client) (artistIDs, trackIDs []string) {
	artists, err := cat.TopArtists(ctx, catalog.RangeMedium, recSeedArtists)
	if err != nil {
		logging.Debug().Err(err).Msg("top artists unavailable for seeding")
	}
	for _, a := range artists {
		artistIDs = append(artistIDs, a.ID)
	}

	tracks, err := cat.TopTracks(ctx, catalog.RangeMedium, recSeedTracks)
	if err != nil {
		logging.Debug().Err(err).Msg("top tracks unavailable for seeding")
	}
	for _, t := range tracks {
		trackIDs = append(trackIDs, t.ID)
	}
	return artistIDs, trackIDs
}

// albumsFromRecentArtists derives seed artists from the most recent plays
// and fetches a few albums from each of the first three.
func albumsFromRecentArtists(ctx context.Context, cat catalog.Client) ([]catalog.Album, error) {
	recent, err := cat.RecentlyPlayed(ctx, recRecentPlays)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Debug().Err(err).Msg("recently played unavailable for seeding")
		return nil, nil
	}

	seen := make(map[string]bool)
	var artistIDs []string
	for _, t := range recent {
		if t.ArtistID == "" || seen[t.ArtistID] {
			continue
		}
		seen[t.ArtistID] = true
		artistIDs = append(artistIDs, t.ArtistID)
		if len(artistIDs) >= recFallbackArtists {
			break
		}
	}

	var albums []catalog.Album
	for _, id := range artistIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := cat.ArtistAlbums(ctx, id, recAlbumsPerArtist)
		if err != nil {
			logging.Debug().Err(err).Str("artist", id).Msg("artist albums fetch failed")
			continue
		}
		albums = append(albums, got...)
	}
	return dedupeAlbums(albums), nil
}
