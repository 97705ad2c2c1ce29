package noise

import (
	"math"
	"sync"

	"github.com/talgya/hex-planet/internal/hex"
	"github.com/talgya/hex-planet/internal/world"
)

// DefaultScale is the coordinate divisor; integer lattice points would
// otherwise all land on the noise function's zero crossings.
const DefaultScale = 24.0

// Field samples fractal noise at hex coordinates.
type Field struct {
	src         Source
	scale       float64
	octaves     int
	persistence float64
}

// NewField wraps src. Non-positive scale or octaves fall back to defaults.
func NewField(src Source, scale float64, octaves int, persistence float64) *Field {
	if scale <= 0 {
		scale = DefaultScale
	}
	if octaves < 1 {
		octaves = 1
	}
	if persistence <= 0 {
		persistence = 0.5
	}
	return &Field{src: src, scale: scale, octaves: octaves, persistence: persistence}
}

// Sample returns the noise value at c.
func (f *Field) Sample(c hex.Coord) float64 {
	x, y := c.ToCartesian()
	return octaveNoise(f.src, x/f.scale, y/f.scale, f.octaves, f.persistence)
}

// Samples holds one noise value per coordinate plus the observed range.
type Samples struct {
	Values   map[hex.Coord]float64
	Observed Range
}

// GenerateAll samples every tile. Work is split into fixed batches; each
// value depends only on the source and the coordinate, so the result does
// not depend on scheduling.
func (f *Field) GenerateAll(tiles []*world.Tile) *Samples {
	values := make([]float64, len(tiles))

	var wg sync.WaitGroup
	const batch = 2048
	for start := 0; start < len(tiles); start += batch {
		end := min(start+batch, len(tiles))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				values[i] = f.Sample(tiles[i].Position())
			}
		}()
	}
	wg.Wait()

	s := &Samples{Values: make(map[hex.Coord]float64, len(tiles))}
	for i, t := range tiles {
		s.Values[t.Position()] = values[i]
	}
	s.Rescan()
	return s
}

// Rescan recomputes Observed from Values. Call it after editing Values.
func (s *Samples) Rescan() {
	if len(s.Values) == 0 {
		s.Observed = Range{}
		return
	}
	obs := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range s.Values {
		obs.Min = math.Min(obs.Min, v)
		obs.Max = math.Max(obs.Max, v)
	}
	s.Observed = obs
}

// octaveNoise layers several frequencies of src, normalized by total amplitude.
func octaveNoise(src Source, x, y float64, octaves int, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	frequency := 1.0

	for i := 0; i < octaves; i++ {
		total += src.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
