package discovery

import (
	"strings"

	"github.com/spindleapp/spindle/internal/catalog"
)

const (
	// minTrackCount drops singles and EPs. No relaxation.
	minTrackCount = 5

	// Compilation relaxation: if filtering a pool of more than
	// relaxPoolSize candidates leaves fewer than relaxKeepFloor, removed
	// compilations are restored, up to relaxMaxRestore of them.
	relaxPoolSize   = 3
	relaxKeepFloor  = 3
	relaxMaxRestore = 5
)

// compilationPatterns are name substrings that mark greatest-hits style
// releases. Matched against the lower-cased album name.
var compilationPatterns = []string{
	"greatest hits",
	"best of",
	"the very best",
	"anthology",
	"essential",
	"ultimate",
	"platinum",
	"definitive",
	"collection",
	"singles",
	"classics",
	"favorites",
	"hits",
	"gold",
	"retrospective",
}

// IsCompilation reports whether an album looks like a compilation release,
// either by catalog type or by name pattern.
func IsCompilation(a catalog.Album) bool {
	if strings.EqualFold(a.AlbumType, "compilation") {
		return true
	}
	name := strings.ToLower(a.Name)
	for _, pattern := range compilationPatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// ApplyQualityFilter removes compilation albums (with relaxation to avoid
// emptying a viable pool) and then unconditionally drops short releases.
// The compilation pass always runs before the track-count pass.
func ApplyQualityFilter(candidates []catalog.Album) []catalog.Album {
	kept := make([]catalog.Album, 0, len(candidates))
	var removed []catalog.Album
	for _, a := range candidates {
		if IsCompilation(a) {
			removed = append(removed, a)
		} else {
			kept = append(kept, a)
		}
	}

	// Relaxation: an empty plate is worse than a greatest-hits album.
	if len(candidates) > relaxPoolSize && len(kept) < relaxKeepFloor {
		restore := len(candidates) - len(kept)
		if restore > relaxMaxRestore {
			restore = relaxMaxRestore
		}
		kept = append(kept, removed[:restore]...)
	}

	out := make([]catalog.Album, 0, len(kept))
	for _, a := range kept {
		if a.TrackCount < minTrackCount {
			continue
		}
		out = append(out, a)
	}
	return out
}
