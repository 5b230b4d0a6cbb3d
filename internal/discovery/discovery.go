// Package discovery implements the candidate selection engine: per-mode
// sourcing strategies with layered fallbacks, quality filtering, recency
// exclusion, and the final random pick.
package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/spindleapp/spindle/internal/catalog"
)

// Mode is a discovery mode, one strategy each.
type Mode string

const (
	ModeSaved           Mode = "saved"
	ModeRecommendations Mode = "recommendations"
	ModeDiscovery       Mode = "discovery"
	ModeRoulette        Mode = "roulette"
)

// ErrUnknownMode is returned for a mode string with no registered strategy.
// It is an input-validation failure, not a sourcing failure.
var ErrUnknownMode = errors.New("unknown discovery mode")

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSaved, ModeRecommendations, ModeDiscovery, ModeRoulette:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Strategy produces raw album candidates for one mode. Strategies are
// best-effort: individual catalog failures are logged and absorbed, an empty
// slice is a valid result, and the only error a strategy returns is a
// cancelled context.
type Strategy interface {
	Mode() Mode
	Source(ctx context.Context, cat catalog.Client) ([]catalog.Album, error)
}

// Sourcer dispatches sourcing to the strategy registered for a mode.
type Sourcer struct {
	strategies map[Mode]Strategy
}

// NewSourcer creates a Sourcer with all four built-in strategies.
func NewSourcer() *Sourcer {
	s := &Sourcer{strategies: make(map[Mode]Strategy)}
	for _, strat := range []Strategy{
		&savedStrategy{},
		&recommendationsStrategy{},
		&newArtistsStrategy{},
		newRouletteStrategy(),
	} {
		s.strategies[strat.Mode()] = strat
	}
	return s
}

// Source runs the strategy registered for mode.
func (s *Sourcer) Source(ctx context.Context, cat catalog.Client, mode Mode) ([]catalog.Album, error) {
	strat, ok := s.strategies[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return strat.Source(ctx, cat)
}

// dedupeAlbums removes duplicate and unidentified albums, preserving the
// first occurrence order.
func dedupeAlbums(albums []catalog.Album) []catalog.Album {
	if len(albums) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(albums))
	out := make([]catalog.Album, 0, len(albums))
	for _, a := range albums {
		if a.ID == "" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}

// albumsFromTracks lifts the album off each track, deduplicated.
func albumsFromTracks(tracks []catalog.Track) []catalog.Album {
	albums := make([]catalog.Album, 0, len(tracks))
	for _, t := range tracks {
		albums = append(albums, t.Album)
	}
	return dedupeAlbums(albums)
}
