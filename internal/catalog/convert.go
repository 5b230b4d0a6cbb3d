package catalog

import (
	"strconv"

	"github.com/zmb3/spotify/v2"
)

// convertSimpleAlbum converts a Spotify SimpleAlbum. Popularity and genres
// are not present on simple album records; callers that need them enrich
// via full album lookups.
func convertSimpleAlbum(a spotify.SimpleAlbum) Album {
	album := Album{
		ID:         a.ID.String(),
		Name:       a.Name,
		Year:       releaseYear(a.ReleaseDate),
		TrackCount: int(a.TotalTracks),
		AlbumType:  a.AlbumType,
	}
	if len(a.Artists) > 0 {
		album.Artist = a.Artists[0].Name
		album.ArtistID = a.Artists[0].ID.String()
	}
	if len(a.Images) > 0 {
		album.CoverURL = a.Images[0].URL
	}
	return album
}

// convertFullAlbum converts a Spotify FullAlbum, which carries popularity
// and genre data on top of the simple record.
func convertFullAlbum(a *spotify.FullAlbum) Album {
	album := convertSimpleAlbum(a.SimpleAlbum)
	album.Genres = a.Genres
	album.Popularity = int(a.Popularity)
	if n := len(a.Tracks.Tracks); n > album.TrackCount {
		album.TrackCount = n
	}
	return album
}

func convertFullArtist(a spotify.FullArtist) Artist {
	return Artist{
		ID:     a.ID.String(),
		Name:   a.Name,
		Genres: a.Genres,
	}
}

func convertSimpleTrack(t spotify.SimpleTrack) Track {
	track := Track{
		ID:    t.ID.String(),
		Name:  t.Name,
		Album: convertSimpleAlbum(t.Album),
	}
	if len(t.Artists) > 0 {
		track.Artist = t.Artists[0].Name
		track.ArtistID = t.Artists[0].ID.String()
	}
	return track
}

func convertFullTrack(t spotify.FullTrack) Track {
	track := convertSimpleTrack(t.SimpleTrack)
	track.Album = convertSimpleAlbum(t.Album)
	return track
}

// releaseYear parses the year out of a Spotify release date, which may be
// "2006", "2006-01" or "2006-01-02" depending on precision.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
