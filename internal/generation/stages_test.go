package generation

import (
	"math"
	"testing"

	"github.com/talgya/hex-planet/internal/hex"
	"github.com/talgya/hex-planet/internal/world"
)

func TestOceanChance(t *testing.T) {
	tests := []struct {
		size, min, guaranteed int
		want                  float64
	}{
		{14, 15, 50, 0},
		{15, 15, 50, 1.0 / 36},
		{20, 15, 50, 6.0 / 36},
		{49, 15, 50, 35.0 / 36},
		{50, 15, 50, 1},
		{500, 15, 50, 1},
	}
	for _, tt := range tests {
		if got := OceanChance(tt.size, tt.min, tt.guaranteed); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("OceanChance(%d, %d, %d) = %v, want %v", tt.size, tt.min, tt.guaranteed, got, tt.want)
		}
	}
}

func TestBiomeRulesFirstMatchWins(t *testing.T) {
	rules := DefaultBiomeRules()
	tests := []struct {
		elevation int
		humidity  float64
		want      world.Biome
	}{
		{800, 0.1, world.BiomeSnow}, // also a desert, snow comes first
		{800, 0.9, world.BiomeSnow},
		{500, 0.1, world.BiomeDesert},
		{500, 0.5, world.BiomeAlpine},
		{100, 0.9, world.BiomeJungle},
		{300, 0.9, world.BiomeForest},
		{100, 0.5, world.BiomeForest},
		{0, 0.3, world.BiomePlains},
	}
	for _, tt := range tests {
		if got := rules.Classify(tt.elevation, tt.humidity); got != tt.want {
			t.Errorf("Classify(%d, %v) = %v, want %v", tt.elevation, tt.humidity, got, tt.want)
		}
	}
}

func TestBiomeRulesValidation(t *testing.T) {
	if _, err := NewBiomeRules(BiomeRule{Biome: world.BiomeOcean, MaxElevation: 10, MaxHumidity: 1}); err == nil {
		t.Fatal("water biome accepted as a rule")
	}
	if _, err := NewBiomeRules(BiomeRule{Biome: world.BiomeForest, MinElevation: 10, MaxElevation: 0}); err == nil {
		t.Fatal("empty region accepted")
	}

	only, err := NewBiomeRules(BiomeRule{Biome: world.BiomeDesert, MinElevation: 0, MaxElevation: 100, MaxHumidity: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := only.Classify(500, 0.5); got != world.BiomeNone {
		t.Fatalf("unmatched point classified as %v", got)
	}

	rs := only.Rules()
	rs[0].Biome = world.BiomeSnow
	if only.Classify(50, 0.5) != world.BiomeDesert {
		t.Fatal("Rules leaked internal storage")
	}
}

// stateFor returns a single-chunk world of the given size at elevation 100.
func stateFor(t *testing.T, size int, cfg Config) *State {
	t.Helper()
	w, err := world.New(cfg.Seed, 0, size)
	if err != nil {
		t.Fatal(err)
	}
	for _, tile := range w.Tiles() {
		tile.SetElevation(100)
	}
	return &State{World: w, Config: cfg, Report: &Report{}}
}

func at(t *testing.T, st *State, x, y int) *world.Tile {
	t.Helper()
	tile, ok := st.World.Index().Get(hex.New(x, y))
	if !ok {
		t.Fatalf("no tile at (%d,%d)", x, y)
	}
	return tile
}

func TestApplyOceans(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.MinOceanSize = 2
	cfg.GuaranteedOceanSize = 4
	st := stateFor(t, 8, cfg)

	// A deep four-tile basin, a shallow four-tile basin and a lone pit.
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		at(t, st, p[0], p[1]).SetElevation(-500)
	}
	for _, p := range [][2]int{{5, 0}, {6, 0}, {5, 1}, {6, 1}} {
		at(t, st, p[0], p[1]).SetElevation(-50)
	}
	at(t, st, 4, 5).SetElevation(-300)

	if err := applyOceans(st); err != nil {
		t.Fatal(err)
	}
	if got := at(t, st, 0, 0).Biome(); got != world.BiomeOcean {
		t.Fatalf("deep basin = %v, want Ocean", got)
	}
	if got := at(t, st, 6, 1).Biome(); got != world.BiomeCoast {
		t.Fatalf("shallow basin = %v, want Coast", got)
	}
	if got := at(t, st, 4, 5).Biome(); got != world.BiomeNone {
		t.Fatalf("lone pit = %v, want it left for the biome stage", got)
	}
	if st.Report.OceanBodies != 2 {
		t.Fatalf("ocean bodies = %d, want 2", st.Report.OceanBodies)
	}
}

func TestApplyShores(t *testing.T) {
	cfg := SmallTestConfig()
	st := stateFor(t, 6, cfg)
	for _, tile := range st.World.Tiles() {
		tile.SetBiome(world.BiomePlains)
	}
	for y := 0; y < 6; y++ {
		sea := at(t, st, 0, y)
		sea.SetBiome(world.BiomeOcean)
		sea.SetElevation(-400)
	}
	at(t, st, 1, 1).SetElevation(cfg.BeachMaxElevation)
	at(t, st, 1, 3).SetElevation(cfg.CliffMinElevation)
	at(t, st, 4, 4).SetElevation(0)

	if err := applyShores(st); err != nil {
		t.Fatal(err)
	}
	if got := at(t, st, 1, 1).Biome(); got != world.BiomeBeach {
		t.Fatalf("low shore = %v, want Beach", got)
	}
	if got := at(t, st, 1, 3).Biome(); got != world.BiomeCliff {
		t.Fatalf("high shore = %v, want Cliff", got)
	}
	if got := at(t, st, 1, 4).Biome(); got != world.BiomePlains {
		t.Fatalf("mid shore = %v, want Plains", got)
	}
	if got := at(t, st, 4, 4).Biome(); got != world.BiomePlains {
		t.Fatalf("inland low tile = %v, want Plains", got)
	}
	if st.Report.Beaches != 1 || st.Report.Cliffs != 1 {
		t.Fatalf("beaches=%d cliffs=%d, want 1 and 1", st.Report.Beaches, st.Report.Cliffs)
	}
}

func TestApplyElevationEdgeFalloff(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.EdgeFalloff = 2
	w, err := world.New(cfg.Seed, 1, cfg.ChunkSize)
	if err != nil {
		t.Fatal(err)
	}
	st := &State{World: w, Config: cfg, Report: &Report{}}
	if err := applyElevation(st); err != nil {
		t.Fatal(err)
	}

	// The tile farthest from the center is pulled all the way down.
	var far *world.Tile
	best := -1.0
	for _, tile := range w.Tiles() {
		x, y := tile.Position().ToCartesian()
		if d := math.Hypot(x, y); d > best {
			best, far = d, tile
		}
	}
	if far.Elevation() != world.ElevationMin {
		t.Fatalf("rim tile %v at elevation %d, want %d", far.Position(), far.Elevation(), world.ElevationMin)
	}

	// The shaped field still spans the whole elevation range.
	top := world.ElevationMin
	for _, tile := range w.Tiles() {
		top = max(top, tile.Elevation())
	}
	if top != world.ElevationMax {
		t.Fatalf("highest tile at %d, want %d", top, world.ElevationMax)
	}
	if obs := st.Report.ElevationObserved; obs.Max <= obs.Min {
		t.Fatalf("observed elevation range %v is empty", obs)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if err := SmallTestConfig().Validate(); err != nil {
		t.Fatalf("small config invalid: %v", err)
	}
	cfg := DefaultConfig()
	cfg.GuaranteedOceanSize = cfg.MinOceanSize
	cfg.Elevation.Kind = "fractal"
	cfg.Biomes = BiomeRules{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation errors")
	}
}
