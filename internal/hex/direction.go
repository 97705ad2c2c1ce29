package hex

// Direction names one of the six sides of a hex.
type Direction uint8

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// DirectionCount is the number of neighbors every hex has.
const DirectionCount = 6

// Directions lists every direction in index order.
var Directions = [DirectionCount]Direction{East, NorthEast, NorthWest, West, SouthWest, SouthEast}

// directionOffsets holds the (x, y) step per direction; opposite sides are
// three slots apart.
var directionOffsets = [DirectionCount]Coord{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
}

var directionNames = [DirectionCount]string{"E", "NE", "NW", "W", "SW", "SE"}

// Offset returns the coordinate delta of one step in d.
func (d Direction) Offset() Coord {
	return directionOffsets[d%DirectionCount]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 3) % DirectionCount
}

func (d Direction) String() string {
	if d >= DirectionCount {
		return "?"
	}
	return directionNames[d]
}

// Neighbor returns the adjacent coordinate in direction d.
func (c Coord) Neighbor(d Direction) Coord {
	return c.Add(d.Offset())
}

// Neighbors returns the six adjacent coordinates indexed by Direction.
func (c Coord) Neighbors() [DirectionCount]Coord {
	var result [DirectionCount]Coord
	for i, off := range directionOffsets {
		result[i] = c.Add(off)
	}
	return result
}

// Ring returns the coordinates at exactly distance k from center, walking
// the sides in direction order. Ring(c, 0) is [c].
func Ring(center Coord, k int) []Coord {
	if k <= 0 {
		return []Coord{center}
	}
	res := make([]Coord, 0, 6*k)
	cur := center.Add(SouthWest.Offset().Scale(k))
	for side := 0; side < DirectionCount; side++ {
		for step := 0; step < k; step++ {
			res = append(res, cur)
			cur = cur.Add(directionOffsets[side])
		}
	}
	return res
}

// Disk returns every coordinate within distance r of center.
func Disk(center Coord, r int) []Coord {
	if r < 0 {
		return nil
	}
	res := make([]Coord, 0, 1+3*r*(r+1))
	for dx := -r; dx <= r; dx++ {
		for dy := max(-r, -dx-r); dy <= min(r, -dx+r); dy++ {
			res = append(res, center.Add(Coord{X: dx, Y: dy}))
		}
	}
	return res
}
