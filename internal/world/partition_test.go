package world

import (
	"math/rand"
	"testing"

	"github.com/talgya/hex-planet/internal/hex"
)

func randomCategories(w *World, seed int64, n int) map[hex.Coord]int {
	rng := rand.New(rand.NewSource(seed))
	cats := make(map[hex.Coord]int)
	for _, t := range w.Tiles() {
		cats[t.Position()] = rng.Intn(n)
	}
	return cats
}

func TestPartitionInvariants(t *testing.T) {
	w := newTestWorld(t, 1, 8)
	idx := w.Index()
	cats := randomCategories(w, 11, 3)
	parts := Partition(idx, w.Tiles(), func(t *Tile) int { return cats[t.Position()] })

	owner := make(map[hex.Coord]*Cluster)
	for k, clusters := range parts {
		for _, cl := range clusters {
			for _, tile := range cl.Tiles() {
				if cats[tile.Position()] != k {
					t.Fatalf("tile %v of category %d listed under %d", tile.Position(), cats[tile.Position()], k)
				}
				if _, dup := owner[tile.Position()]; dup {
					t.Fatalf("tile %v appears in two clusters", tile.Position())
				}
				owner[tile.Position()] = cl
			}
		}
	}
	if len(owner) != idx.Len() {
		t.Fatalf("%d tiles clustered, want %d", len(owner), idx.Len())
	}

	// Same-category neighbors must share a cluster, which also means no two
	// clusters of one category touch.
	for _, tile := range idx.Tiles() {
		for _, n := range idx.Neighbors(tile.Position()) {
			if n == nil || cats[n.Position()] != cats[tile.Position()] {
				continue
			}
			if owner[n.Position()] != owner[tile.Position()] {
				t.Fatalf("adjacent same-category tiles %v and %v split across clusters", tile.Position(), n.Position())
			}
		}
	}

	// Every cluster is connected: a walk from its first tile reaches all members.
	for _, clusters := range parts {
		for _, cl := range clusters {
			if reach := reachable(idx, cl); reach != cl.Len() {
				t.Fatalf("cluster of %d tiles only reaches %d", cl.Len(), reach)
			}
		}
	}
}

func reachable(idx *Index, cl *Cluster) int {
	start := cl.First()
	seen := map[hex.Coord]bool{start.Position(): true}
	stack := []*Tile{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range idx.Neighbors(cur.Position()) {
			if n == nil || seen[n.Position()] || !cl.Contains(n.Position()) {
				continue
			}
			seen[n.Position()] = true
			stack = append(stack, n)
		}
	}
	return len(seen)
}

func TestPartitionIsDeterministic(t *testing.T) {
	w := newTestWorld(t, 1, 6)
	cats := randomCategories(w, 5, 2)
	f := func(t *Tile) bool { return cats[t.Position()] == 1 }

	a, _ := PartitionBool(w.Index(), w.Tiles(), f)

	// Feed the tiles in reverse; seeds are picked in coordinate order anyway.
	rev := make([]*Tile, len(w.Tiles()))
	for i, tile := range w.Tiles() {
		rev[len(rev)-1-i] = tile
	}
	b, _ := PartitionBool(w.Index(), rev, f)

	if len(a) != len(b) {
		t.Fatalf("cluster counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Len() != b[i].Len() || a[i].First() != b[i].First() {
			t.Fatalf("cluster %d differs between runs", i)
		}
	}
}

func TestPartitionIgnoresTilesOutsideInput(t *testing.T) {
	w := newTestWorld(t, 0, 5)
	idx := w.Index()
	// Column x=2 is left out, which splits the land into two halves.
	var subset []*Tile
	for _, tile := range idx.Tiles() {
		if tile.Position().X != 2 {
			subset = append(subset, tile)
		}
	}
	clusters, rest := PartitionBool(idx, subset, func(*Tile) bool { return true })
	if len(rest) != 0 {
		t.Fatalf("unexpected false clusters: %d", len(rest))
	}
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	if clusters[0].Len()+clusters[1].Len() != 20 {
		t.Fatalf("clusters hold %d tiles, want 20", clusters[0].Len()+clusters[1].Len())
	}
}
