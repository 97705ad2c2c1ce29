package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hex-planet/internal/generation"
	"github.com/talgya/hex-planet/internal/hydrology"
	"github.com/talgya/hex-planet/internal/noise"
	"github.com/talgya/hex-planet/internal/world"
)

// Config holds all world generator configuration
type Config struct {
	World     WorldConfig      `yaml:"world"`
	Noise     NoiseConfig      `yaml:"noise"`
	Terrain   TerrainConfig    `yaml:"terrain"`
	Biomes    []BiomeRule      `yaml:"biomes"` // empty keeps the default table
	Hydrology hydrology.Config `yaml:"hydrology"`
	Archive   ArchiveConfig    `yaml:"archive"`
}

// WorldConfig holds the size and seed of the planet
type WorldConfig struct {
	Seed        int64 `yaml:"seed"`
	ChunkRadius int   `yaml:"chunk_radius"` // Number of chunk rings around the origin
	ChunkSize   int   `yaml:"chunk_size"`   // Tiles per chunk side
}

// FieldConfig shapes one noise field
type FieldConfig struct {
	Kind        string  `yaml:"kind"` // simplex or perlin
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
}

// NoiseConfig holds the elevation and humidity fields
type NoiseConfig struct {
	Elevation   FieldConfig `yaml:"elevation"`
	Humidity    FieldConfig `yaml:"humidity"`
	EdgeFalloff float64     `yaml:"edge_falloff"`
}

// TerrainConfig holds sea, ocean and shore thresholds
type TerrainConfig struct {
	SeaLevel            int `yaml:"sea_level"`
	MinOceanSize        int `yaml:"min_ocean_size"`
	GuaranteedOceanSize int `yaml:"guaranteed_ocean_size"`
	CoastDepth          int `yaml:"coast_depth"`
	BeachMaxElevation   int `yaml:"beach_max_elevation"`
	CliffMinElevation   int `yaml:"cliff_min_elevation"`
}

// BiomeRule is one entry of a biome override table. Omitted bounds cover
// the full range.
type BiomeRule struct {
	Biome        string   `yaml:"biome"`
	MinElevation *int     `yaml:"min_elevation"`
	MaxElevation *int     `yaml:"max_elevation"`
	MinHumidity  *float64 `yaml:"min_humidity"`
	MaxHumidity  *float64 `yaml:"max_humidity"`
}

// ArchiveConfig holds the optional SQLite atlas location
type ArchiveConfig struct {
	Path string `yaml:"path"` // empty disables archiving
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	g := generation.DefaultConfig()
	return &Config{
		World: WorldConfig{
			Seed:        g.Seed,
			ChunkRadius: g.ChunkRadius,
			ChunkSize:   g.ChunkSize,
		},
		Noise: NoiseConfig{
			Elevation:   fieldFrom(g.Elevation),
			Humidity:    fieldFrom(g.Humidity),
			EdgeFalloff: g.EdgeFalloff,
		},
		Terrain: TerrainConfig{
			SeaLevel:            g.SeaLevel,
			MinOceanSize:        g.MinOceanSize,
			GuaranteedOceanSize: g.GuaranteedOceanSize,
			CoastDepth:          g.CoastDepth,
			BeachMaxElevation:   g.BeachMaxElevation,
			CliffMinElevation:   g.CliffMinElevation,
		},
		Hydrology: g.Hydrology,
	}
}

// Load reads configuration from a YAML file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	g, err := c.Generation()
	if err != nil {
		return err
	}
	return g.Validate()
}

// Generation converts the file layout into generation parameters.
func (c *Config) Generation() (generation.Config, error) {
	g := generation.DefaultConfig()
	g.Seed = c.World.Seed
	g.ChunkRadius = c.World.ChunkRadius
	g.ChunkSize = c.World.ChunkSize
	g.EdgeFalloff = c.Noise.EdgeFalloff
	g.SeaLevel = c.Terrain.SeaLevel
	g.MinOceanSize = c.Terrain.MinOceanSize
	g.GuaranteedOceanSize = c.Terrain.GuaranteedOceanSize
	g.CoastDepth = c.Terrain.CoastDepth
	g.BeachMaxElevation = c.Terrain.BeachMaxElevation
	g.CliffMinElevation = c.Terrain.CliffMinElevation
	g.Hydrology = c.Hydrology

	var errs []error
	var err error
	if g.Elevation, err = c.Noise.Elevation.toGeneration(); err != nil {
		errs = append(errs, fmt.Errorf("elevation noise: %w", err))
	}
	if g.Humidity, err = c.Noise.Humidity.toGeneration(); err != nil {
		errs = append(errs, fmt.Errorf("humidity noise: %w", err))
	}
	if len(c.Biomes) > 0 {
		if g.Biomes, err = biomeRules(c.Biomes); err != nil {
			errs = append(errs, err)
		}
	}
	return g, errors.Join(errs...)
}

func fieldFrom(n generation.NoiseConfig) FieldConfig {
	return FieldConfig{
		Kind:        string(n.Kind),
		Scale:       n.Scale,
		Octaves:     n.Octaves,
		Persistence: n.Persistence,
	}
}

func (f FieldConfig) toGeneration() (generation.NoiseConfig, error) {
	kind, err := noise.ParseKind(f.Kind)
	if err != nil {
		return generation.NoiseConfig{}, err
	}
	if f.Scale <= 0 || f.Octaves < 1 || f.Persistence <= 0 {
		return generation.NoiseConfig{}, fmt.Errorf("scale, octaves and persistence must be positive (got %g, %d, %g)",
			f.Scale, f.Octaves, f.Persistence)
	}
	return generation.NoiseConfig{
		Kind:        kind,
		Scale:       f.Scale,
		Octaves:     f.Octaves,
		Persistence: f.Persistence,
	}, nil
}

func biomeRules(entries []BiomeRule) (generation.BiomeRules, error) {
	rules := make([]generation.BiomeRule, 0, len(entries))
	for i, e := range entries {
		b, ok := world.ParseBiome(e.Biome)
		if !ok {
			return generation.BiomeRules{}, fmt.Errorf("biome rule %d: unknown biome %q", i, e.Biome)
		}
		rules = append(rules, generation.BiomeRule{
			Biome:        b,
			MinElevation: orDefault(e.MinElevation, world.ElevationMin),
			MaxElevation: orDefault(e.MaxElevation, world.ElevationMax),
			MinHumidity:  orDefault(e.MinHumidity, world.HumidityMin),
			MaxHumidity:  orDefault(e.MaxHumidity, world.HumidityMax),
		})
	}
	return generation.NewBiomeRules(rules...)
}

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
