package discovery

import (
	"context"
	"math/rand/v2"

	"github.com/spindleapp/spindle/internal/catalog"
	"github.com/spindleapp/spindle/internal/logging"
)

const (
	rouletteAttempts      = 5
	roulettePageSize      = 20
	rouletteMaxOffset     = 200
	rouletteMinPopularity = 5
	rouletteMinTracks     = 2
	rouletteSavedSpread   = 200
)

// rouletteTerms is the pool of random search terms: single letters plus
// common short words that match broadly across the catalog.
var rouletteTerms = []string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"the", "love", "one", "day", "night", "life", "time", "heart",
	"blue", "gold", "sun", "moon", "dream", "home",
}

// rouletteStrategy throws darts at the catalog: random search terms at
// random offsets, keeping the first attempt whose results look like real
// albums. Every network failure is absorbed; the chain just moves on.
type rouletteStrategy struct {
	policy RetryPolicy
}

func newRouletteStrategy() *rouletteStrategy {
	return &rouletteStrategy{
		policy: RetryPolicy{
			MaxAttempts: rouletteAttempts,
			Next:        randomProbe,
		},
	}
}

func (r *rouletteStrategy) Mode() Mode { return ModeRoulette }

func (r *rouletteStrategy) Source(ctx context.Context, cat catalog.Client) ([]catalog.Album, error) {
	albums, err := r.policy.Run(ctx, func(ctx context.Context, probe SearchProbe) ([]catalog.Album, bool) {
		found, err := cat.SearchAlbums(ctx, probe.Term, roulettePageSize, probe.Offset)
		if err != nil {
			logging.Warn().Err(err).Str("mode", string(ModeRoulette)).
				Str("term", probe.Term).Int("offset", probe.Offset).
				Msg("roulette search failed")
			return nil, false
		}
		plausible := plausibleAlbums(found)
		return plausible, len(plausible) > 0
	})
	if err != nil {
		return nil, err
	}
	if len(albums) > 0 {
		return dedupeAlbums(albums), nil
	}

	// All attempts missed: one wildcard search as a last search resort.
	found, err := cat.SearchAlbums(ctx, "*", roulettePageSize, 0)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Warn().Err(err).Str("mode", string(ModeRoulette)).Msg("wildcard search failed")
	}
	if plausible := plausibleAlbums(found); len(plausible) > 0 {
		return dedupeAlbums(plausible), nil
	}

	// Degrade to the user's own library at a random offset.
	saved, err := sourceSavedAlbumsFrom(ctx, cat, rand.IntN(rouletteSavedSpread))
	if err != nil {
		return nil, err
	}
	if len(saved) > 0 {
		return saved, nil
	}

	tracks, err := cat.TopTracks(ctx, catalog.RangeLong, 50)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Warn().Err(err).Str("mode", string(ModeRoulette)).Msg("top tracks fallback failed")
		return nil, nil
	}
	return albumsFromTracks(tracks), nil
}

// randomProbe picks a random term from the pool and a small random offset.
func randomProbe() SearchProbe {
	return SearchProbe{
		Term:   rouletteTerms[rand.IntN(len(rouletteTerms))],
		Offset: rand.IntN(rouletteMaxOffset),
	}
}

// plausibleAlbums applies the weak quality heuristic: enough popularity and
// tracks to be a real release, with an artist and cover art attached.
func plausibleAlbums(albums []catalog.Album) []catalog.Album {
	var out []catalog.Album
	for _, a := range albums {
		if a.Popularity <= rouletteMinPopularity {
			continue
		}
		if a.TrackCount < rouletteMinTracks {
			continue
		}
		if a.Artist == "" || a.CoverURL == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
