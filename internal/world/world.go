// Package world holds the planet's spatial model: tiles grouped into chunks,
// the coordinate index over them, flood-fill clustering and continents.
// A World is mutable while the generation pipeline runs and is then frozen
// into a read-only Snapshot.
package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hex-planet/internal/hex"
)

// ErrFrozen is returned when something tries to mutate a frozen World.
var ErrFrozen = errors.New("world is frozen")

// World is the aggregate root of one generation run.
type World struct {
	Seed        int64
	ChunkRadius int

	index      *Index
	continents []*Continent
	frozen     bool
}

// New creates a World whose chunks form a hex disk of chunkRadius around the
// origin in chunk space. Every tile starts at elevation 0, biome None.
func New(seed int64, chunkRadius, chunkSize int) (*World, error) {
	if chunkRadius < 0 {
		return nil, fmt.Errorf("chunk radius %d: %w", chunkRadius, ErrInvalidArgument)
	}
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size %d: %w", chunkSize, ErrInvalidArgument)
	}

	coords := hex.Disk(hex.New(0, 0), chunkRadius)
	chunks := make([]*Chunk, 0, len(coords))
	for _, c := range coords {
		chunks = append(chunks, NewChunk(c, chunkSize))
	}
	idx, err := NewIndex(chunks, chunkSize)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	slog.Debug("world allocated", "seed", seed, "chunks", len(chunks), "tiles", idx.Len())
	return &World{
		Seed:        seed,
		ChunkRadius: chunkRadius,
		index:       idx,
	}, nil
}

// Index returns the spatial tile index.
func (w *World) Index() *Index { return w.index }

// Tiles returns every tile in coordinate order.
func (w *World) Tiles() []*Tile { return w.index.Tiles() }

// Continents returns the current continent list.
func (w *World) Continents() []*Continent { return w.continents }

// SetContinents replaces the continent list.
func (w *World) SetContinents(cs []*Continent) error {
	if w.frozen {
		return ErrFrozen
	}
	w.continents = cs
	return nil
}

// Frozen reports whether Freeze has been called.
func (w *World) Frozen() bool { return w.frozen }

// Freeze ends the mutable phase and hands the tiles to a read-only Snapshot.
// The World must not be used for generation afterwards.
func (w *World) Freeze() (*Snapshot, error) {
	if w.frozen {
		return nil, ErrFrozen
	}
	w.frozen = true
	for _, c := range w.continents {
		c.Refresh()
	}
	return newSnapshot(w), nil
}

// BiomeCounts returns the number of tiles per biome.
func BiomeCounts(tiles []*Tile) map[Biome]int {
	counts := make(map[Biome]int)
	for _, t := range tiles {
		counts[t.biome]++
	}
	return counts
}

func (w *World) String() string {
	return fmt.Sprintf("World(seed=%d, chunkRadius=%d, tiles=%d, continents=%d)",
		w.Seed, w.ChunkRadius, w.index.Len(), len(w.continents))
}
