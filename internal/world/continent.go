package world

import (
	"fmt"

	"github.com/talgya/hex-planet/internal/hex"
)

// Continent is a connected cluster of land tiles, the unit of hydrology.
type Continent struct {
	ID      int
	Cluster *Cluster

	stats ContinentStats
}

// ContinentStats caches display attributes computed when the continent is built.
type ContinentStats struct {
	Area          int
	MeanElevation float64
	MinElevation  int
	MaxElevation  int
	MeanHumidity  float64
	CentroidX     float64 // cartesian plane
	CentroidY     float64
	Min, Max      hex.Coord // coordinate bounds on the stored axes
}

// NewContinent wraps a land cluster and computes its cached attributes.
func NewContinent(id int, cl *Cluster) *Continent {
	c := &Continent{ID: id, Cluster: cl}
	c.Refresh()
	return c
}

// Tiles returns the continent's tiles.
func (c *Continent) Tiles() []*Tile { return c.Cluster.Tiles() }

// Stats returns the cached attributes.
func (c *Continent) Stats() ContinentStats { return c.stats }

// Refresh recomputes the cached attributes from the current tile fields.
func (c *Continent) Refresh() {
	tiles := c.Cluster.Tiles()
	s := ContinentStats{Area: len(tiles)}
	if len(tiles) == 0 {
		c.stats = s
		return
	}
	s.MinElevation, s.MaxElevation = tiles[0].elevation, tiles[0].elevation
	s.Min, s.Max = tiles[0].pos, tiles[0].pos

	var elevSum, humSum, cx, cy float64
	for _, t := range tiles {
		elevSum += float64(t.elevation)
		humSum += t.humidity
		s.MinElevation = min(s.MinElevation, t.elevation)
		s.MaxElevation = max(s.MaxElevation, t.elevation)
		x, y := t.pos.ToCartesian()
		cx += x
		cy += y
		s.Min = hex.New(min(s.Min.X, t.pos.X), min(s.Min.Y, t.pos.Y))
		s.Max = hex.New(max(s.Max.X, t.pos.X), max(s.Max.Y, t.pos.Y))
	}
	n := float64(len(tiles))
	s.MeanElevation = elevSum / n
	s.MeanHumidity = humSum / n
	s.CentroidX = cx / n
	s.CentroidY = cy / n
	c.stats = s
}

func (c *Continent) String() string {
	return fmt.Sprintf("Continent(%d, area=%d)", c.ID, c.stats.Area)
}
