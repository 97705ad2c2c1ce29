package world

import (
	"fmt"
	"slices"

	"github.com/talgya/hex-planet/internal/hex"
)

// Index is the spatial tile index: an ordered map from coordinate to tile,
// partitioned into chunks. Lookups cost one chunk-map probe plus slice math.
type Index struct {
	chunkSize int
	chunks    map[hex.Coord]*Chunk
	order     []*Tile // all tiles, sorted by coordinate
}

// NewIndex builds an index over the given chunks. All chunks must share size.
func NewIndex(chunks []*Chunk, size int) (*Index, error) {
	idx := &Index{
		chunkSize: size,
		chunks:    make(map[hex.Coord]*Chunk, len(chunks)),
	}
	total := 0
	for _, ch := range chunks {
		if ch.Size() != size {
			return nil, fmt.Errorf("chunk %v has size %d, index expects %d: %w", ch.Coord, ch.Size(), size, ErrInvalidArgument)
		}
		if _, dup := idx.chunks[ch.Coord]; dup {
			return nil, fmt.Errorf("duplicate chunk %v: %w", ch.Coord, ErrInvalidArgument)
		}
		idx.chunks[ch.Coord] = ch
		total += len(ch.Tiles())
	}

	idx.order = make([]*Tile, 0, total)
	for _, ch := range chunks {
		idx.order = append(idx.order, ch.Tiles()...)
	}
	SortTiles(idx.order)
	return idx, nil
}

// Get returns the tile at c, or false when c is outside the world.
func (idx *Index) Get(c hex.Coord) (*Tile, bool) {
	ch := idx.chunks[ChunkOf(c, idx.chunkSize)]
	if ch == nil {
		return nil, false
	}
	return ch.Get(c)
}

// Neighbors returns the six neighbors of c indexed by direction; missing
// neighbors are nil. Neighbors inside c's own chunk skip the chunk lookup.
func (idx *Index) Neighbors(c hex.Coord) [hex.DirectionCount]*Tile {
	var out [hex.DirectionCount]*Tile
	home := idx.chunks[ChunkOf(c, idx.chunkSize)]
	for _, d := range hex.Directions {
		nc := c.Neighbor(d)
		if home != nil {
			if t, ok := home.Get(nc); ok {
				out[d] = t
				continue
			}
		}
		if t, ok := idx.Get(nc); ok {
			out[d] = t
		}
	}
	return out
}

// Adjacent returns the existing neighbors of c keyed by direction.
func (idx *Index) Adjacent(c hex.Coord) map[hex.Direction]*Tile {
	ns := idx.Neighbors(c)
	out := make(map[hex.Direction]*Tile, hex.DirectionCount)
	for d, t := range ns {
		if t != nil {
			out[hex.Direction(d)] = t
		}
	}
	return out
}

// InRange returns every existing tile within distance r of c.
func (idx *Index) InRange(c hex.Coord, r int) *Cluster {
	return idx.collect(hex.Disk(c, r))
}

// Ring returns every existing tile at exactly distance r from c.
func (idx *Index) Ring(c hex.Coord, r int) *Cluster {
	return idx.collect(hex.Ring(c, r))
}

func (idx *Index) collect(coords []hex.Coord) *Cluster {
	cl := NewCluster()
	for _, p := range coords {
		if t, ok := idx.Get(p); ok {
			cl.Add(t)
		}
	}
	return cl
}

// Tiles returns all tiles in coordinate order. Callers must not reorder it.
func (idx *Index) Tiles() []*Tile { return idx.order }

// Len returns the number of tiles.
func (idx *Index) Len() int { return len(idx.order) }

// ChunkSize returns the chunk side length.
func (idx *Index) ChunkSize() int { return idx.chunkSize }

// Chunks returns the chunks ordered by chunk coordinate.
func (idx *Index) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(idx.chunks))
	for _, ch := range idx.chunks {
		out = append(out, ch)
	}
	slices.SortFunc(out, func(a, b *Chunk) int { return hex.Compare(a.Coord, b.Coord) })
	return out
}

// Chunk returns the chunk at chunk-space coordinate c.
func (idx *Index) Chunk(c hex.Coord) (*Chunk, bool) {
	ch, ok := idx.chunks[c]
	return ch, ok
}

func (idx *Index) String() string {
	return fmt.Sprintf("Index(chunks=%d, tiles=%d)", len(idx.chunks), len(idx.order))
}

// SortTiles orders tiles by coordinate in place.
func SortTiles(tiles []*Tile) {
	slices.SortFunc(tiles, func(a, b *Tile) int { return hex.Compare(a.pos, b.pos) })
}
