package generation

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/hex-planet/internal/hydrology"
	"github.com/talgya/hex-planet/internal/noise"
	"github.com/talgya/hex-planet/internal/world"
)

// Seed salts. Each stage that needs randomness gets its own stream so that
// adding a stage never shifts another stage's values.
const (
	humiditySalt = 7919
	oceanSalt    = 300
)

// Stage is one step of the pipeline. Stages run in order with a barrier
// between them; a stage may parallelize internally.
type Stage interface {
	Name() string
	Apply(st *State) error
}

// State is the shared, mutable generation state passed to every stage.
type State struct {
	World  *world.World
	Config Config
	Report *Report
}

type stageFunc struct {
	name string
	fn   func(*State) error
}

func (s stageFunc) Name() string { return s.name }
func (s stageFunc) Apply(st *State) error { return s.fn(st) }

// NewStage adapts a function into a Stage.
func NewStage(name string, fn func(*State) error) Stage {
	return stageFunc{name: name, fn: fn}
}

var elevationRange = noise.Range{Min: world.ElevationMin, Max: world.ElevationMax}
var humidityRange = noise.Range{Min: world.HumidityMin, Max: world.HumidityMax}

func sampleField(nc NoiseConfig, seed int64, tiles []*world.Tile) (*noise.Samples, error) {
	src, err := noise.NewSource(nc.Kind, seed)
	if err != nil {
		return nil, err
	}
	return noise.NewField(src, nc.Scale, nc.Octaves, nc.Persistence).GenerateAll(tiles), nil
}

// applyElevation samples the elevation field and stretches the observed
// values across the full elevation range.
func applyElevation(st *State) error {
	tiles := st.World.Tiles()
	s, err := sampleField(st.Config.Elevation, st.Config.Seed, tiles)
	if err != nil {
		return fmt.Errorf("elevation noise: %w", err)
	}
	if st.Config.EdgeFalloff > 0 {
		shapeEdges(s, tiles, st.Config.EdgeFalloff)
		s.Rescan()
	}
	for _, t := range tiles {
		v := s.Observed.MapTo(s.Values[t.Position()], elevationRange)
		t.SetElevation(int(math.Round(v)))
	}
	st.Report.ElevationObserved = s.Observed
	return nil
}

// shapeEdges pulls raw samples toward the observed minimum with distance from
// the world center, so the rim tends to sink below sea level.
func shapeEdges(s *noise.Samples, tiles []*world.Tile, exponent float64) {
	extent := 0.0
	for _, t := range tiles {
		x, y := t.Position().ToCartesian()
		extent = max(extent, math.Hypot(x, y))
	}
	if extent == 0 {
		return
	}
	for _, t := range tiles {
		x, y := t.Position().ToCartesian()
		falloff := max(0, 1-math.Pow(math.Hypot(x, y)/extent, exponent))
		p := t.Position()
		s.Values[p] = s.Observed.Min + (s.Values[p]-s.Observed.Min)*falloff
	}
}

// applyHumidity samples a second, independently seeded field into [0,1].
func applyHumidity(st *State) error {
	tiles := st.World.Tiles()
	s, err := sampleField(st.Config.Humidity, noise.DeriveSeed(st.Config.Seed, humiditySalt), tiles)
	if err != nil {
		return fmt.Errorf("humidity noise: %w", err)
	}
	for _, t := range tiles {
		t.SetHumidity(s.Observed.MapTo(s.Values[t.Position()], humidityRange))
	}
	st.Report.HumidityObserved = s.Observed
	return nil
}

// applyOceans clusters below-sea tiles and rolls each cluster into ocean
// with a probability that grows with its size. One roll is drawn per cluster
// in discovery order, whatever its size, so results depend only on the seed.
func applyOceans(st *State) error {
	cfg := st.Config
	rng := rand.New(rand.NewSource(cfg.Seed + oceanSalt))
	below, _ := world.PartitionBool(st.World.Index(), st.World.Tiles(), func(t *world.Tile) bool {
		return t.Elevation() < cfg.SeaLevel
	})

	for _, cl := range below {
		roll := rng.Float64()
		if roll >= OceanChance(cl.Len(), cfg.MinOceanSize, cfg.GuaranteedOceanSize) {
			continue
		}
		st.Report.OceanBodies++
		for _, t := range cl.Tiles() {
			if t.Elevation() >= cfg.SeaLevel-cfg.CoastDepth {
				t.SetBiome(world.BiomeCoast)
			} else {
				t.SetBiome(world.BiomeOcean)
			}
		}
	}
	return nil
}

// applyBiomes paints every tile not already water from the rule table;
// unmatched tiles get BiomeNone. Chunks are painted concurrently.
func applyBiomes(st *State) error {
	rules := st.Config.Biomes
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, ch := range st.World.Index().Chunks() {
		g.Go(func() error {
			for _, t := range ch.Tiles() {
				if t.Biome().IsWater() {
					continue
				}
				t.SetBiome(rules.Classify(t.Elevation(), t.Humidity()))
			}
			return nil
		})
	}
	return g.Wait()
}

// applyContinents groups land into connected continents.
func applyContinents(st *State) error {
	land, _ := world.PartitionBool(st.World.Index(), st.World.Tiles(), func(t *world.Tile) bool {
		return t.Biome().IsLand()
	})
	cs := make([]*world.Continent, 0, len(land))
	for i, cl := range land {
		cs = append(cs, world.NewContinent(i, cl))
	}
	st.Report.Continents = len(cs)
	return st.World.SetContinents(cs)
}

// applyShores turns low sea-facing land into Beach and high sea-facing land
// into Cliff. Decisions are made before any tile changes.
func applyShores(st *State) error {
	cfg := st.Config
	idx := st.World.Index()
	type change struct {
		t *world.Tile
		b world.Biome
	}
	var changes []change
	for _, t := range st.World.Tiles() {
		if !t.Biome().IsLand() || !touchesSea(idx, t) {
			continue
		}
		switch {
		case t.Elevation() <= cfg.BeachMaxElevation:
			changes = append(changes, change{t, world.BiomeBeach})
		case t.Elevation() >= cfg.CliffMinElevation:
			changes = append(changes, change{t, world.BiomeCliff})
		}
	}
	for _, c := range changes {
		c.t.SetBiome(c.b)
		if c.b == world.BiomeBeach {
			st.Report.Beaches++
		} else {
			st.Report.Cliffs++
		}
	}
	return nil
}

func touchesSea(idx *world.Index, t *world.Tile) bool {
	for _, n := range idx.Neighbors(t.Position()) {
		if n != nil && n.Biome().IsSea() {
			return true
		}
	}
	return false
}

// applyHydrology rains on every continent, runs the runoff model and turns
// standing water into lakes.
func applyHydrology(st *State) error {
	for _, t := range st.World.Tiles() {
		t.ResetWater()
	}
	sim, err := hydrology.New(st.Config.Hydrology, st.World.Index())
	if err != nil {
		return err
	}
	rep, err := sim.Run(st.World.Continents())
	if err != nil {
		return err
	}
	rep.Lakes = sim.ClassifyLakes(st.World.Continents())
	st.Report.Hydrology = rep
	return nil
}

// applyRivers connects tiles that carried enough water.
func applyRivers(st *State) error {
	n := hydrology.MarkRivers(st.World.Tiles(), st.Config.Hydrology.RiverThreshold)
	st.Report.Hydrology.RiverTiles = n
	return nil
}
