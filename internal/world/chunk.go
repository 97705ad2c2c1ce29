package world

import (
	"fmt"

	"github.com/talgya/hex-planet/internal/hex"
)

// DefaultChunkSize is the side length of a chunk in axial space.
const DefaultChunkSize = 50

// Chunk is a square block of size×size tiles. Its origin tile is
// (Coord.X*size, Coord.Y*size); tiles are stored row-major by local x.
type Chunk struct {
	Coord hex.Coord // position in chunk space
	size  int
	tiles []*Tile
}

// NewChunk allocates every tile of the chunk at chunk-space position c.
func NewChunk(c hex.Coord, size int) *Chunk {
	if size < 1 {
		size = 1
	}
	ch := &Chunk{
		Coord: c,
		size:  size,
		tiles: make([]*Tile, size*size),
	}
	ox, oy := c.X*size, c.Y*size
	for lx := 0; lx < size; lx++ {
		for ly := 0; ly < size; ly++ {
			ch.tiles[lx*size+ly] = newTile(hex.New(ox+lx, oy+ly))
		}
	}
	return ch
}

// Size returns the side length.
func (c *Chunk) Size() int { return c.size }

// Origin returns the coordinate of the chunk's first tile.
func (c *Chunk) Origin() hex.Coord {
	return hex.New(c.Coord.X*c.size, c.Coord.Y*c.size)
}

// Tiles returns the chunk's tiles ordered by coordinate.
func (c *Chunk) Tiles() []*Tile { return c.tiles }

// Get returns the tile at world coordinate p, if it lies in this chunk.
func (c *Chunk) Get(p hex.Coord) (*Tile, bool) {
	lx := p.X - c.Coord.X*c.size
	ly := p.Y - c.Coord.Y*c.size
	if lx < 0 || ly < 0 || lx >= c.size || ly >= c.size {
		return nil, false
	}
	return c.tiles[lx*c.size+ly], true
}

func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk(%d,%d size=%d)", c.Coord.X, c.Coord.Y, c.size)
}

// ChunkOf returns the chunk-space coordinate containing world coordinate p.
func ChunkOf(p hex.Coord, size int) hex.Coord {
	return hex.New(floorDiv(p.X, size), floorDiv(p.Y, size))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
