package generation

import (
	"errors"
	"fmt"

	"github.com/talgya/hex-planet/internal/hydrology"
	"github.com/talgya/hex-planet/internal/noise"
	"github.com/talgya/hex-planet/internal/world"
)

// NoiseConfig shapes one noise field.
type NoiseConfig struct {
	Kind        noise.Kind
	Scale       float64 // coordinate divisor
	Octaves     int
	Persistence float64 // amplitude falloff per octave
}

// Config holds world generation parameters.
type Config struct {
	Seed        int64
	ChunkRadius int // chunks form a hex disk of this radius in chunk space
	ChunkSize   int // tiles per chunk side

	Elevation   NoiseConfig
	Humidity    NoiseConfig
	EdgeFalloff float64 // exponent of the rim falloff on elevation; 0 disables

	SeaLevel            int // tiles below this elevation are ocean candidates
	MinOceanSize        int // below-sea clusters smaller than this stay land
	GuaranteedOceanSize int // clusters at least this large always become ocean
	CoastDepth          int // ocean tiles within this depth of sea level are Coast

	BeachMaxElevation int // coastal land at or below this becomes Beach
	CliffMinElevation int // coastal land at or above this becomes Cliff

	Biomes    BiomeRules
	Hydrology hydrology.Config
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		Seed:        42,
		ChunkRadius: 1,
		ChunkSize:   world.DefaultChunkSize,
		Elevation: NoiseConfig{
			Kind:        noise.KindSimplex,
			Scale:       40,
			Octaves:     4,
			Persistence: 0.5,
		},
		Humidity: NoiseConfig{
			Kind:        noise.KindSimplex,
			Scale:       60,
			Octaves:     3,
			Persistence: 0.5,
		},
		SeaLevel:            0,
		MinOceanSize:        15,
		GuaranteedOceanSize: 50,
		CoastDepth:          120,
		BeachMaxElevation:   40,
		CliffMinElevation:   300,
		Biomes:              DefaultBiomeRules(),
		Hydrology:           hydrology.DefaultConfig(),
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() Config {
	cfg := DefaultConfig()
	cfg.ChunkRadius = 1
	cfg.ChunkSize = 12
	cfg.Elevation.Scale = 10
	cfg.Humidity.Scale = 14
	cfg.MinOceanSize = 4
	cfg.GuaranteedOceanSize = 12
	return cfg
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.ChunkRadius < 0 {
		errs = append(errs, fmt.Errorf("chunk radius must not be negative, got %d", c.ChunkRadius))
	}
	if c.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("chunk size must be at least 1, got %d", c.ChunkSize))
	}
	if c.MinOceanSize < 1 {
		errs = append(errs, fmt.Errorf("min ocean size must be at least 1, got %d", c.MinOceanSize))
	}
	if c.GuaranteedOceanSize <= c.MinOceanSize {
		errs = append(errs, fmt.Errorf("guaranteed ocean size %d must exceed min ocean size %d",
			c.GuaranteedOceanSize, c.MinOceanSize))
	}
	if c.EdgeFalloff < 0 {
		errs = append(errs, fmt.Errorf("edge falloff must not be negative, got %g", c.EdgeFalloff))
	}
	if c.CoastDepth < 0 {
		errs = append(errs, fmt.Errorf("coast depth must not be negative, got %d", c.CoastDepth))
	}
	if c.Biomes.Len() == 0 {
		errs = append(errs, errors.New("at least one biome rule is required"))
	}
	if _, err := noise.ParseKind(string(c.Elevation.Kind)); err != nil {
		errs = append(errs, fmt.Errorf("elevation noise: %w", err))
	}
	if _, err := noise.ParseKind(string(c.Humidity.Kind)); err != nil {
		errs = append(errs, fmt.Errorf("humidity noise: %w", err))
	}
	if err := c.Hydrology.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// OceanChance is the probability that a below-sea cluster of size tiles
// becomes ocean: 0 below minSize, rising linearly to 1 at guaranteed.
func OceanChance(size, minSize, guaranteed int) float64 {
	if size >= guaranteed {
		return 1
	}
	if size < minSize {
		return 0
	}
	return float64(size-minSize+1) / float64(guaranteed-minSize+1)
}
