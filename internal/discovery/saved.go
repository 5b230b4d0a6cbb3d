package discovery

import (
	"context"

	"github.com/spindleapp/spindle/internal/catalog"
	"github.com/spindleapp/spindle/internal/logging"
)

const (
	savedPageSize  = 50
	savedMaxAlbums = 200
)

// savedStrategy pages through the user's saved tracks and accumulates the
// distinct albums they belong to.
type savedStrategy struct{}

func (s *savedStrategy) Mode() Mode { return ModeSaved }

func (s *savedStrategy) Source(ctx context.Context, cat catalog.Client) ([]catalog.Album, error) {
	return sourceSavedAlbums(ctx, cat)
}

// sourceSavedAlbums collects up to savedMaxAlbums distinct albums from the
// saved-track library. Paging stops at the album cap or at a short page
// (end of data). A page fetch failure ends the walk with whatever has been
// collected so far. Shared by the fallback chains of the other strategies.
func sourceSavedAlbums(ctx context.Context, cat catalog.Client) ([]catalog.Album, error) {
	return sourceSavedAlbumsFrom(ctx, cat, 0)
}

func sourceSavedAlbumsFrom(ctx context.Context, cat catalog.Client, offset int) ([]catalog.Album, error) {
	seen := make(map[string]bool)
	var albums []catalog.Album

	for len(albums) < savedMaxAlbums {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tracks, err := cat.SavedTracks(ctx, savedPageSize, offset)
		if err != nil {
			logging.Warn().Err(err).Str("mode", string(ModeSaved)).Int("offset", offset).
				Msg("saved tracks page failed")
			break
		}

		for _, t := range tracks {
			id := t.Album.ID
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			albums = append(albums, t.Album)
			if len(albums) >= savedMaxAlbums {
				break
			}
		}

		if len(tracks) < savedPageSize {
			break
		}
		offset += savedPageSize
	}

	return albums, nil
}
