package world

import (
	"fmt"

	"github.com/talgya/hex-planet/internal/hex"
)

// TileView is the read-only face of a Tile handed to consumers.
type TileView interface {
	Position() hex.Coord
	Biome() Biome
	Elevation() int
	Humidity() float64
	WaterLevel() float64
	WaterTraversed() float64
	SurfaceElevation() float64
	RiverConnection(d hex.Direction) bool
}

// tileView hides the mutable Tile behind TileView so a snapshot consumer
// cannot assert its way back to the setters.
type tileView struct {
	t *Tile
}

func (v tileView) Position() hex.Coord { return v.t.Position() }
func (v tileView) Biome() Biome { return v.t.Biome() }
func (v tileView) Elevation() int { return v.t.Elevation() }
func (v tileView) Humidity() float64 { return v.t.Humidity() }
func (v tileView) WaterLevel() float64 { return v.t.WaterLevel() }
func (v tileView) WaterTraversed() float64 { return v.t.WaterTraversed() }
func (v tileView) SurfaceElevation() float64 { return v.t.SurfaceElevation() }
func (v tileView) RiverConnection(d hex.Direction) bool { return v.t.RiverConnection(d) }

// ContinentView is the read-only face of a Continent.
type ContinentView struct {
	c *Continent
}

// ID returns the continent identifier.
func (v ContinentView) ID() int { return v.c.ID }

// Stats returns the cached display attributes.
func (v ContinentView) Stats() ContinentStats { return v.c.stats }

// Contains reports whether the tile at p belongs to the continent.
func (v ContinentView) Contains(p hex.Coord) bool { return v.c.Cluster.Contains(p) }

// Tiles returns the continent's tiles in coordinate order.
func (v ContinentView) Tiles() []TileView {
	return views(v.c.Cluster.Sorted())
}

// Snapshot is the immutable result of a generation run. It is safe for
// concurrent readers; nothing in it changes after Freeze.
type Snapshot struct {
	seed        int64
	chunkRadius int
	index       *Index
	continents  []ContinentView
}

func newSnapshot(w *World) *Snapshot {
	cs := make([]ContinentView, len(w.continents))
	for i, c := range w.continents {
		cs[i] = ContinentView{c: c}
	}
	return &Snapshot{
		seed:        w.Seed,
		chunkRadius: w.ChunkRadius,
		index:       w.index,
		continents:  cs,
	}
}

// Seed returns the generation seed.
func (s *Snapshot) Seed() int64 { return s.seed }

// ChunkRadius returns the chunk radius the world was generated with.
func (s *Snapshot) ChunkRadius() int { return s.chunkRadius }

// ChunkSize returns the chunk side length.
func (s *Snapshot) ChunkSize() int { return s.index.ChunkSize() }

// Len returns the number of tiles.
func (s *Snapshot) Len() int { return s.index.Len() }

// TileAt returns the tile at c, or false when c is outside the world.
func (s *Snapshot) TileAt(c hex.Coord) (TileView, bool) {
	t, ok := s.index.Get(c)
	if !ok {
		return nil, false
	}
	return tileView{t}, true
}

// AdjacentTiles returns the existing neighbors of c keyed by direction.
func (s *Snapshot) AdjacentTiles(c hex.Coord) map[hex.Direction]TileView {
	adj := s.index.Adjacent(c)
	out := make(map[hex.Direction]TileView, len(adj))
	for d, t := range adj {
		out[d] = tileView{t}
	}
	return out
}

// InRange returns the tiles within distance r of c.
func (s *Snapshot) InRange(c hex.Coord, r int) []TileView {
	return views(s.index.InRange(c, r).Tiles())
}

// Tiles returns every tile in coordinate order.
func (s *Snapshot) Tiles() []TileView {
	return views(s.index.Tiles())
}

// Each calls fn for every tile in coordinate order until fn returns false.
func (s *Snapshot) Each(fn func(TileView) bool) {
	for _, t := range s.index.Tiles() {
		if !fn(tileView{t}) {
			return
		}
	}
}

// Continents returns the continent list.
func (s *Snapshot) Continents() []ContinentView {
	out := make([]ContinentView, len(s.continents))
	copy(out, s.continents)
	return out
}

// BiomeCounts returns the number of tiles per biome.
func (s *Snapshot) BiomeCounts() map[Biome]int {
	return BiomeCounts(s.index.Tiles())
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("Snapshot(seed=%d, tiles=%d, continents=%d)", s.seed, s.index.Len(), len(s.continents))
}

func views(tiles []*Tile) []TileView {
	out := make([]TileView, len(tiles))
	for i, t := range tiles {
		out[i] = tileView{t}
	}
	return out
}
