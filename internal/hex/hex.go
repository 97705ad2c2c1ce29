// Package hex provides cube coordinates for the planet's hex grid.
// Only x and y are stored; the third cube axis z is derived as -x-y,
// so the x+y+z=0 constraint holds for every value of the type.
package hex

import (
	"fmt"
	"math"
)

// Coord is a cube coordinate with the z axis left implicit.
// Equality and ordering are defined on (X, Y).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// New returns the coordinate (x, y, -x-y).
func New(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// FromCube validates a full cube triple and returns the coordinate.
func FromCube(x, y, z int) (Coord, error) {
	if x+y+z != 0 {
		return Coord{}, fmt.Errorf("cube coordinate (%d,%d,%d) does not sum to zero", x, y, z)
	}
	return Coord{X: x, Y: y}, nil
}

// Z returns the implicit third cube coordinate.
func (c Coord) Z() int {
	return -c.X - c.Y
}

// Add returns c+o component-wise.
func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }

// Scale multiplies both stored axes by k.
func (c Coord) Scale(k int) Coord { return Coord{X: c.X * k, Y: c.Y * k} }

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z())
}

// Compare orders coordinates by X, then Y. It returns -1, 0 or +1.
func Compare(a, b Coord) int {
	switch {
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	}
	return 0
}

// Less reports whether a sorts before b.
func Less(a, b Coord) bool {
	return Compare(a, b) < 0
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Coord) int {
	return (abs(a.X-b.X) + abs(a.Y-b.Y) + abs(a.Z()-b.Z())) / 2
}

// ToCartesian maps the coordinate onto the continuous plane (unit spacing
// between neighboring centers). Used for noise sampling.
func (c Coord) ToCartesian() (x, y float64) {
	x = float64(c.X) + float64(c.Y)*0.5
	y = float64(c.Y) * math.Sqrt(3.0) / 2.0
	return x, y
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
