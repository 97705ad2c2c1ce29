package generation

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/talgya/hex-planet/internal/world"
)

// Generate builds a world from seed with default parameters.
func Generate(seed int64, chunkRadius int) (*world.Snapshot, error) {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.ChunkRadius = chunkRadius
	snap, _, err := GenerateWithConfig(cfg)
	return snap, err
}

// GenerateWithConfig runs the default pipeline over a fresh world and
// freezes it. The same config always yields the same snapshot.
func GenerateWithConfig(cfg Config) (*world.Snapshot, *Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("generation config: %w", err)
	}
	w, err := world.New(cfg.Seed, cfg.ChunkRadius, cfg.ChunkSize)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("generating world", "seed", cfg.Seed, "chunk_radius", cfg.ChunkRadius, "tiles", w.Index().Len())
	rep, err := DefaultPipeline().Run(w, cfg)
	if err != nil {
		return nil, rep, err
	}
	snap, err := w.Freeze()
	if err != nil {
		return nil, rep, err
	}
	slog.Info("world generated",
		"seed", cfg.Seed,
		"continents", rep.Continents,
		"lakes", rep.Hydrology.Lakes,
		"river_tiles", rep.Hydrology.RiverTiles,
		"elapsed", rep.Total,
	)
	return snap, rep, nil
}

// Regenerator produces snapshots on a background goroutine and publishes the
// most recent one atomically. Readers never block on generation.
type Regenerator struct {
	latest  atomic.Pointer[world.Snapshot]
	report  atomic.Pointer[Report]
	err     atomic.Pointer[error]
	pending chan Config
	done    chan struct{}
}

// NewRegenerator starts the worker. It stops when ctx is cancelled.
func NewRegenerator(ctx context.Context) *Regenerator {
	r := &Regenerator{
		pending: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go r.loop(ctx)
	return r
}

// Request queues a generation run. A request still waiting is replaced, so
// only the newest config is built.
func (r *Regenerator) Request(cfg Config) {
	for {
		select {
		case r.pending <- cfg:
			return
		default:
		}
		select {
		case <-r.pending:
		default:
		}
	}
}

// Latest returns the most recently published snapshot, or nil.
func (r *Regenerator) Latest() *world.Snapshot { return r.latest.Load() }

// LatestReport returns the report of the most recent successful run, or nil.
func (r *Regenerator) LatestReport() *Report { return r.report.Load() }

// Err returns the error of the most recent failed run, if the last run failed.
func (r *Regenerator) Err() error {
	if p := r.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Done is closed once the worker has exited.
func (r *Regenerator) Done() <-chan struct{} { return r.done }

func (r *Regenerator) loop(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case cfg := <-r.pending:
			snap, rep, err := GenerateWithConfig(cfg)
			if err != nil {
				slog.Error("regeneration failed", "seed", cfg.Seed, "error", err)
				r.err.Store(&err)
				continue
			}
			r.report.Store(rep)
			r.latest.Store(snap)
			r.err.Store(nil)
		}
	}
}
