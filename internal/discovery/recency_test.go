package discovery

import (
	"testing"

	"github.com/spindleapp/spindle/internal/catalog"
)

func TestExcludeRecent(t *testing.T) {
	candidates := []catalog.Album{makeAlbum("1"), makeAlbum("2"), makeAlbum("3")}

	got := ExcludeRecent(candidates, []string{"2"})
	if err := idsEqual(got, "1", "3"); err != nil {
		t.Fatal(err)
	}
}

func TestExcludeRecentNoOverlap(t *testing.T) {
	candidates := []catalog.Album{makeAlbum("1"), makeAlbum("2")}

	got := ExcludeRecent(candidates, []string{"9"})
	if err := idsEqual(got, "1", "2"); err != nil {
		t.Fatal(err)
	}
}

func TestExcludeRecentAllExcludedKeepsInput(t *testing.T) {
	// When every candidate was spun recently, exclusion yields the input
	// unchanged rather than an empty pool.
	candidates := []catalog.Album{makeAlbum("1"), makeAlbum("2")}

	got := ExcludeRecent(candidates, []string{"1", "2"})
	if err := idsEqual(got, "1", "2"); err != nil {
		t.Fatal(err)
	}
}

func TestExcludeRecentEmptyInputs(t *testing.T) {
	if got := ExcludeRecent(nil, []string{"1"}); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
	candidates := []catalog.Album{makeAlbum("1")}
	got := ExcludeRecent(candidates, nil)
	if err := idsEqual(got, "1"); err != nil {
		t.Fatal(err)
	}
}
