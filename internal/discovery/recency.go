package discovery

import "github.com/spindleapp/spindle/internal/catalog"

// RecencyWindowDays is how far back a previous spin blocks an album from
// being handed out again.
const RecencyWindowDays = 30

// ExcludeRecent removes candidates the user already received within the
// recency window. If exclusion would remove every candidate, the input is
// returned unchanged: repetition beats failure.
func ExcludeRecent(candidates []catalog.Album, recentAlbumIDs []string) []catalog.Album {
	if len(candidates) == 0 || len(recentAlbumIDs) == 0 {
		return candidates
	}

	recent := make(map[string]bool, len(recentAlbumIDs))
	for _, id := range recentAlbumIDs {
		recent[id] = true
	}

	kept := make([]catalog.Album, 0, len(candidates))
	for _, a := range candidates {
		if recent[a.ID] {
			continue
		}
		kept = append(kept, a)
	}

	if len(kept) == 0 {
		return candidates
	}
	return kept
}
