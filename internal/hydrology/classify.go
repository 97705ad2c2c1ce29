package hydrology

import (
	"github.com/talgya/hex-planet/internal/hex"
	"github.com/talgya/hex-planet/internal/world"
)

// ClassifyLakes turns every continent tile holding at least the lake
// threshold of water into a Lake. It returns the number of lake tiles.
func (s *Simulator) ClassifyLakes(continents []*world.Continent) int {
	lakes := 0
	for _, c := range continents {
		for _, t := range c.Tiles() {
			if t.WaterLevel() >= s.cfg.LakeThreshold {
				t.SetBiome(world.BiomeLake)
				lakes++
			}
		}
	}
	return lakes
}

// MarkRivers connects all six edges of every tile whose traversed water
// reaches the river threshold. It returns the number of river tiles.
func MarkRivers(tiles []*world.Tile, threshold float64) int {
	rivers := 0
	for _, t := range tiles {
		if t.WaterTraversed() < threshold {
			continue
		}
		for _, d := range hex.Directions {
			t.SetRiverConnection(d, true)
		}
		rivers++
	}
	return rivers
}

// RiverThreshold returns the configured river threshold.
func (s *Simulator) RiverThreshold() float64 { return s.cfg.RiverThreshold }
