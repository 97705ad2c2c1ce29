package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/hex-planet/internal/generation"
	"github.com/talgya/hex-planet/internal/noise"
	"github.com/talgya/hex-planet/internal/world"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worldgen.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
world:
  seed: 0
  chunk_radius: 3
noise:
  humidity:
    kind: perlin
hydrology:
  rainfall: 2.5
archive:
  path: atlas.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g, err := cfg.Generation()
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	def := generation.DefaultConfig()

	if g.Seed != 0 || g.ChunkRadius != 3 {
		t.Fatalf("seed=%d radius=%d, want 0 and 3", g.Seed, g.ChunkRadius)
	}
	if g.ChunkSize != def.ChunkSize {
		t.Fatalf("chunk size = %d, want default %d", g.ChunkSize, def.ChunkSize)
	}
	if g.Humidity.Kind != noise.KindPerlin || g.Humidity.Scale != def.Humidity.Scale {
		t.Fatalf("humidity = %+v", g.Humidity)
	}
	if g.Elevation != def.Elevation {
		t.Fatalf("elevation = %+v, want %+v", g.Elevation, def.Elevation)
	}
	if g.Hydrology.Rainfall != 2.5 || g.Hydrology.Iterations != def.Hydrology.Iterations {
		t.Fatalf("hydrology = %+v", g.Hydrology)
	}
	if g.Biomes.Len() != def.Biomes.Len() {
		t.Fatalf("biome rules = %d, want defaults", g.Biomes.Len())
	}
	if cfg.Archive.Path != "atlas.db" {
		t.Fatalf("archive path = %q", cfg.Archive.Path)
	}
}

func TestLoadBiomeOverrides(t *testing.T) {
	path := writeConfig(t, `
biomes:
  - biome: Snow
    min_elevation: 500
  - biome: Plains
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g, err := cfg.Generation()
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Biomes.Classify(600, 0.1); got != world.BiomeSnow {
		t.Fatalf("Classify(600, 0.1) = %v, want Snow", got)
	}
	if got := g.Biomes.Classify(499, 0.9); got != world.BiomePlains {
		t.Fatalf("Classify(499, 0.9) = %v, want Plains", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"ocean sizes", "terrain:\n  min_ocean_size: 50\n  guaranteed_ocean_size: 50\n", "guaranteed ocean size"},
		{"rainfall", "hydrology:\n  rainfall: 0\n", "rainfall"},
		{"chunk size", "world:\n  chunk_size: 0\n", "chunk size"},
		{"noise kind", "noise:\n  elevation:\n    kind: worley\n", "unknown noise kind"},
		{"biome", "biomes:\n  - biome: Swamp\n", "unknown biome"},
		{"water rule", "biomes:\n  - biome: Lake\n", "not a land biome"},
		{"yaml", "world: [", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultMatchesGeneration(t *testing.T) {
	g, err := Default().Generation()
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	def := generation.DefaultConfig()
	if g.Seed != def.Seed || g.Elevation != def.Elevation || g.Hydrology != def.Hydrology ||
		g.CoastDepth != def.CoastDepth || g.CliffMinElevation != def.CliffMinElevation {
		t.Fatal("Default() does not round-trip to generation.DefaultConfig()")
	}
}
