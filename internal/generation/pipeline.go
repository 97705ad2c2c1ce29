// Package generation turns a seed into a finished planet: it runs an ordered
// pipeline of stages over a fresh World and freezes the result.
package generation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/hex-planet/internal/hydrology"
	"github.com/talgya/hex-planet/internal/noise"
	"github.com/talgya/hex-planet/internal/world"
)

// StageTiming records how long one stage took.
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// Report collects what each stage produced.
type Report struct {
	Seed  int64
	Tiles int

	ElevationObserved noise.Range
	HumidityObserved  noise.Range

	OceanBodies int
	Continents  int
	Beaches     int
	Cliffs      int
	Hydrology   hydrology.Report

	Stages []StageTiming
	Total  time.Duration
}

// Pipeline is an ordered list of stages.
type Pipeline struct {
	stages []Stage
}

// NewPipeline returns a pipeline running stages in the given order.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: append([]Stage(nil), stages...)}
}

// DefaultPipeline returns the standard stage order.
func DefaultPipeline() *Pipeline {
	return NewPipeline(
		NewStage("elevation", applyElevation),
		NewStage("humidity", applyHumidity),
		NewStage("ocean", applyOceans),
		NewStage("biome", applyBiomes),
		NewStage("continents", applyContinents),
		NewStage("shores", applyShores),
		NewStage("hydrology", applyHydrology),
		NewStage("rivers", applyRivers),
	)
}

// Stages returns the stage names in run order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run applies every stage to w in order and stops at the first error.
func (p *Pipeline) Run(w *world.World, cfg Config) (*Report, error) {
	if w.Frozen() {
		return nil, world.ErrFrozen
	}
	rep := &Report{Seed: cfg.Seed, Tiles: w.Index().Len()}
	st := &State{World: w, Config: cfg, Report: rep}

	start := time.Now()
	for _, s := range p.stages {
		t0 := time.Now()
		if err := s.Apply(st); err != nil {
			return rep, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		d := time.Since(t0)
		rep.Stages = append(rep.Stages, StageTiming{Name: s.Name(), Duration: d})
		slog.Info("generation stage complete", "stage", s.Name(), "elapsed", d)
	}
	rep.Total = time.Since(start)
	return rep, nil
}
