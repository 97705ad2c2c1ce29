// Package hydrology simulates rainfall runoff over each continent, then
// classifies lakes and rivers from where the water settled and flowed.
//
// The model is iterative equalization: every pass visits a continent's tiles
// from the highest water surface down and levels each tile against its lower
// neighbors. Water touching the sea leaves the system. Each step is checked
// for conservation of mass.
package hydrology

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/hex-planet/internal/hex"
	"github.com/talgya/hex-planet/internal/world"
)

// ErrInternalInconsistency marks a conservation failure. It means the
// simulation state is corrupt and generation must stop.
var ErrInternalInconsistency = errors.New("internal inconsistency")

// Report summarizes one simulation run.
type Report struct {
	Continents     int
	Rainfall       float64   // total water added
	OceanOutflow   float64   // total water that reached the sea
	IterationFlows []float64 // sea outflow per pass
	Remaining      float64   // water still standing on land
	Lakes          int
	RiverTiles     int
}

// Simulator runs the runoff model over one world index.
type Simulator struct {
	cfg Config
	idx *world.Index
}

// New returns a simulator for the tiles in idx.
func New(cfg Config, idx *world.Index) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("hydrology config: %w", err)
	}
	return &Simulator{cfg: cfg, idx: idx}, nil
}

// Run rains on every continent and equalizes for the configured number of
// passes. Continents are independent and run concurrently within a pass;
// passes are separated by a barrier.
func (s *Simulator) Run(continents []*world.Continent) (Report, error) {
	rep := Report{Continents: len(continents)}

	for _, c := range continents {
		for _, t := range c.Tiles() {
			if err := t.AddWater(s.cfg.Rainfall); err != nil {
				return rep, fmt.Errorf("rain on continent %d: %w", c.ID, err)
			}
			rep.Rainfall += s.cfg.Rainfall
		}
	}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	flows := make([]float64, len(continents))
	for it := 0; it < s.cfg.Iterations; it++ {
		var g errgroup.Group
		g.SetLimit(workers)
		for i, c := range continents {
			g.Go(func() error {
				out, err := s.pass(c)
				if err != nil {
					return fmt.Errorf("iteration %d continent %d: %w", it, c.ID, err)
				}
				flows[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return rep, err
		}

		// Summed in continent order so the total is reproducible.
		passFlow := 0.0
		for _, f := range flows {
			passFlow += f
		}
		rep.IterationFlows = append(rep.IterationFlows, passFlow)
		rep.OceanOutflow += passFlow
		slog.Debug("hydrology pass complete", "iteration", it, "ocean_outflow", passFlow)
	}

	for _, c := range continents {
		for _, t := range c.Tiles() {
			rep.Remaining += t.WaterLevel()
		}
	}
	return rep, nil
}

// pass equalizes every tile of one continent once, highest surface first.
func (s *Simulator) pass(c *world.Continent) (float64, error) {
	order := slices.Clone(c.Tiles())
	slices.SortFunc(order, func(a, b *world.Tile) int {
		if r := cmp.Compare(b.SurfaceElevation(), a.SurfaceElevation()); r != 0 {
			return r
		}
		return hex.Compare(a.Position(), b.Position())
	})

	outflow := 0.0
	for _, t := range order {
		out, err := s.Equalize(t, c.Cluster)
		if err != nil {
			return outflow, err
		}
		outflow += out
	}
	return outflow, nil
}

// Equalize levels t against its neighbors and returns the water sent to the
// sea. Only neighbors inside members, or water tiles, take part; nil members
// admits every neighbor.
func (s *Simulator) Equalize(t *world.Tile, members *world.Cluster) (float64, error) {
	var touched []*world.Tile
	seaAdjacent := false
	for _, n := range s.idx.Neighbors(t.Position()) {
		if n == nil {
			continue
		}
		if n.Biome().IsWater() {
			seaAdjacent = true
			continue
		}
		if members != nil && !members.Contains(n.Position()) {
			continue
		}
		touched = append(touched, n)
	}
	before := totalWater(t, touched)

	if seaAdjacent {
		out := t.DrainWater()
		return out, s.checkBalance(t, before, totalWater(t, touched), out)
	}

	var lower []*world.Tile
	for _, n := range touched {
		if n.SurfaceElevation() < t.SurfaceElevation() {
			lower = append(lower, n)
		}
	}
	if len(lower) == 0 {
		return 0, nil
	}

	lower, target, err := settleNeighbors(t, lower)
	if err != nil {
		return 0, err
	}
	if len(lower) > 0 {
		if err := distribute(t, lower, target); err != nil {
			return 0, err
		}
	}
	return 0, s.checkBalance(t, before, totalWater(t, touched), 0)
}

// settleNeighbors finds the fixed point of the neighbor set: any neighbor
// whose ground sits above the mean surface cannot be raised to it, so it is
// dropped and its water pulled onto the center. Each round drops at least
// one neighbor or stops, so it finishes within len(lower)+1 rounds.
func settleNeighbors(t *world.Tile, lower []*world.Tile) ([]*world.Tile, float64, error) {
	target := 0.0
	for round := 0; round <= hex.DirectionCount; round++ {
		target = meanSurface(t, lower)
		kept := lower[:0:0]
		for _, n := range lower {
			if float64(n.Elevation()) > target {
				if err := t.AddWater(n.DrainWater()); err != nil {
					return nil, 0, err
				}
				continue
			}
			kept = append(kept, n)
		}
		if len(kept) == len(lower) {
			return lower, target, nil
		}
		lower = kept
		if len(lower) == 0 {
			return nil, target, nil
		}
	}
	return nil, 0, fmt.Errorf("neighbor set around %v did not settle: %w", t.Position(), ErrInternalInconsistency)
}

// distribute moves water from t so every neighbor reaches target. When t
// cannot cover the total, its whole level is split evenly instead and later
// passes keep converging.
func distribute(t *world.Tile, lower []*world.Tile, target float64) error {
	needed := 0.0
	for _, n := range lower {
		needed += target - n.SurfaceElevation()
	}

	if needed > t.WaterLevel() {
		share := t.WaterLevel() / float64(len(lower))
		given := 0.0
		for _, n := range lower {
			if err := n.AddWater(share); err != nil {
				return err
			}
			given += share
		}
		return t.RemoveWater(min(given, t.WaterLevel()))
	}

	given := 0.0
	for _, n := range lower {
		delta := target - n.SurfaceElevation()
		switch {
		case delta > 0:
			if err := n.AddWater(delta); err != nil {
				return err
			}
			given += delta
		case delta < 0:
			take := min(-delta, n.WaterLevel())
			if err := n.RemoveWater(take); err != nil {
				return err
			}
			given -= take
		}
	}
	if given < 0 {
		// Only possible through rounding; the neighbors gave back a hair.
		return t.AddWater(-given)
	}
	return t.RemoveWater(min(given, t.WaterLevel()))
}

func (s *Simulator) checkBalance(t *world.Tile, before, after, sent float64) error {
	imbalance := after - before + sent
	if imbalance > s.cfg.Tolerance || imbalance < -s.cfg.Tolerance {
		return fmt.Errorf("water balance off by %g at %v (before=%g after=%g sea=%g): %w",
			imbalance, t.Position(), before, after, sent, ErrInternalInconsistency)
	}
	return nil
}

func meanSurface(t *world.Tile, ns []*world.Tile) float64 {
	sum := t.SurfaceElevation()
	for _, n := range ns {
		sum += n.SurfaceElevation()
	}
	return sum / float64(len(ns)+1)
}

func totalWater(t *world.Tile, ns []*world.Tile) float64 {
	sum := t.WaterLevel()
	for _, n := range ns {
		sum += n.WaterLevel()
	}
	return sum
}
