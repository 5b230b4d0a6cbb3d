package catalog

// TimeRange selects the listening-history window for top-artist and
// top-track queries.
type TimeRange string

const (
	RangeShort  TimeRange = "short_term"
	RangeMedium TimeRange = "medium_term"
	RangeLong   TimeRange = "long_term"
)

// Album is a provider-neutral album record.
type Album struct {
	ID         string
	Name       string
	Artist     string // primary artist name
	ArtistID   string
	Year       int
	CoverURL   string
	Genres     []string
	TrackCount int
	AlbumType  string // "album", "single", "compilation"
	Popularity int
}

// Artist is a provider-neutral artist record.
type Artist struct {
	ID     string
	Name   string
	Genres []string
}

// Track is a provider-neutral track record. Album may be zero-valued for
// endpoints that do not embed album data.
type Track struct {
	ID       string
	Name     string
	ArtistID string
	Artist   string
	Album    Album
}
