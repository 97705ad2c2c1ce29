package world

import (
	"slices"

	"github.com/talgya/hex-planet/internal/hex"
)

// Cluster is a set of tiles. Contiguity is the caller's contract; clusters
// built by Partition are always contiguous.
type Cluster struct {
	tiles   []*Tile
	members map[hex.Coord]struct{}
}

// NewCluster returns an empty cluster.
func NewCluster() *Cluster {
	return &Cluster{members: make(map[hex.Coord]struct{})}
}

// Add inserts t; adding a member twice is a no-op.
func (c *Cluster) Add(t *Tile) {
	if _, ok := c.members[t.pos]; ok {
		return
	}
	c.members[t.pos] = struct{}{}
	c.tiles = append(c.tiles, t)
}

// Contains reports whether the tile at p is a member.
func (c *Cluster) Contains(p hex.Coord) bool {
	_, ok := c.members[p]
	return ok
}

// Tiles returns members in insertion order.
func (c *Cluster) Tiles() []*Tile { return c.tiles }

// Len returns the member count.
func (c *Cluster) Len() int { return len(c.tiles) }

// Sorted returns a copy of the members ordered by coordinate.
func (c *Cluster) Sorted() []*Tile {
	out := slices.Clone(c.tiles)
	SortTiles(out)
	return out
}

// First returns the lowest-ordered member, or nil for an empty cluster.
func (c *Cluster) First() *Tile {
	if len(c.tiles) == 0 {
		return nil
	}
	first := c.tiles[0]
	for _, t := range c.tiles[1:] {
		if hex.Less(t.pos, first.pos) {
			first = t
		}
	}
	return first
}
