package world

import (
	"errors"
	"fmt"

	"github.com/talgya/hex-planet/internal/hex"
)

// World-wide value ranges. Writes outside them are coerced, never rejected.
const (
	ElevationMin = -1000
	ElevationMax = 1000
	HumidityMin  = 0.0
	HumidityMax  = 1.0
)

// waterSlack absorbs float rounding when a caller removes everything a tile holds.
const waterSlack = 1e-9

// ErrInvalidArgument marks a programmer error at an internal call site,
// such as a negative water amount.
var ErrInvalidArgument = errors.New("invalid argument")

// Tile is a single hex of the planet. It is owned by its Chunk and is only
// mutated by the generation pipeline before the World is frozen.
type Tile struct {
	pos       hex.Coord
	biome     Biome
	elevation int
	humidity  float64

	// Hydrology state: current standing water and the total ever added.
	water     float64
	traversed float64

	rivers [hex.DirectionCount]bool
}

func newTile(pos hex.Coord) *Tile {
	return &Tile{pos: pos}
}

// Position returns the tile's coordinate.
func (t *Tile) Position() hex.Coord { return t.pos }

// Biome returns the current biome.
func (t *Tile) Biome() Biome { return t.biome }

// Elevation returns the ground elevation.
func (t *Tile) Elevation() int { return t.elevation }

// Humidity returns the humidity in [0, 1].
func (t *Tile) Humidity() float64 { return t.humidity }

// WaterLevel returns the standing water on the tile.
func (t *Tile) WaterLevel() float64 { return t.water }

// WaterTraversed returns the cumulative water ever added to the tile.
func (t *Tile) WaterTraversed() float64 { return t.traversed }

// SurfaceElevation is ground elevation plus standing water.
func (t *Tile) SurfaceElevation() float64 { return float64(t.elevation) + t.water }

// RiverConnection reports whether a river crosses the edge in direction d.
func (t *Tile) RiverConnection(d hex.Direction) bool {
	if d >= hex.DirectionCount {
		return false
	}
	return t.rivers[d]
}

// SetBiome replaces the biome.
func (t *Tile) SetBiome(b Biome) { t.biome = b }

// SetElevation stores e clamped to [ElevationMin, ElevationMax].
func (t *Tile) SetElevation(e int) {
	t.elevation = min(max(e, ElevationMin), ElevationMax)
}

// SetHumidity stores h clamped to [0, 1].
func (t *Tile) SetHumidity(h float64) {
	if h != h { // NaN
		h = HumidityMin
	}
	t.humidity = min(max(h, HumidityMin), HumidityMax)
}

// SetRiverConnection marks or clears the river edge in direction d.
func (t *Tile) SetRiverConnection(d hex.Direction, on bool) {
	if d < hex.DirectionCount {
		t.rivers[d] = on
	}
}

// AddWater adds amount to the standing water and the traversed total.
func (t *Tile) AddWater(amount float64) error {
	if amount < 0 || amount != amount {
		return fmt.Errorf("add water %v to %v: %w", amount, t.pos, ErrInvalidArgument)
	}
	t.water += amount
	t.traversed += amount
	return nil
}

// RemoveWater takes amount away from the standing water. Removing more than
// the tile holds is an error.
func (t *Tile) RemoveWater(amount float64) error {
	if amount < 0 || amount != amount {
		return fmt.Errorf("remove water %v from %v: %w", amount, t.pos, ErrInvalidArgument)
	}
	if amount > t.water+waterSlack {
		return fmt.Errorf("remove water %v from %v holding %v: %w", amount, t.pos, t.water, ErrInvalidArgument)
	}
	t.water -= amount
	if t.water < 0 {
		t.water = 0
	}
	return nil
}

// DrainWater removes all standing water and returns how much there was.
func (t *Tile) DrainWater() float64 {
	w := t.water
	t.water = 0
	return w
}

// ResetWater clears hydrology state ahead of a new simulation run.
func (t *Tile) ResetWater() {
	t.water = 0
	t.traversed = 0
	t.rivers = [hex.DirectionCount]bool{}
}
