package generation

import (
	"fmt"

	"github.com/talgya/hex-planet/internal/world"
)

// BiomeRule is a rectangular region of (elevation, humidity) space, bounds
// inclusive, that paints land tiles with Biome.
type BiomeRule struct {
	Biome        world.Biome
	MinElevation int
	MaxElevation int
	MinHumidity  float64
	MaxHumidity  float64
}

// Matches reports whether the point lies in the rule's region.
func (r BiomeRule) Matches(elevation int, humidity float64) bool {
	return elevation >= r.MinElevation && elevation <= r.MaxElevation &&
		humidity >= r.MinHumidity && humidity <= r.MaxHumidity
}

// BiomeRules is an ordered, immutable rule list; earlier rules win.
type BiomeRules struct {
	rules []BiomeRule
}

// NewBiomeRules validates and copies rules.
func NewBiomeRules(rules ...BiomeRule) (BiomeRules, error) {
	for i, r := range rules {
		if !r.Biome.IsLand() {
			return BiomeRules{}, fmt.Errorf("rule %d: %v is not a land biome", i, r.Biome)
		}
		if r.MinElevation > r.MaxElevation || r.MinHumidity > r.MaxHumidity {
			return BiomeRules{}, fmt.Errorf("rule %d (%v): empty region", i, r.Biome)
		}
	}
	cp := make([]BiomeRule, len(rules))
	copy(cp, rules)
	return BiomeRules{rules: cp}, nil
}

// DefaultBiomeRules returns the standard ordering: Snow, Desert, Alpine,
// Jungle, Forest and finally Plains as the catch-all.
func DefaultBiomeRules() BiomeRules {
	const lo, hi = world.ElevationMin, world.ElevationMax
	rules, err := NewBiomeRules(
		BiomeRule{Biome: world.BiomeSnow, MinElevation: 700, MaxElevation: hi, MinHumidity: 0, MaxHumidity: 1},
		BiomeRule{Biome: world.BiomeDesert, MinElevation: lo, MaxElevation: hi, MinHumidity: 0, MaxHumidity: 0.2},
		BiomeRule{Biome: world.BiomeAlpine, MinElevation: 450, MaxElevation: hi, MinHumidity: 0, MaxHumidity: 1},
		BiomeRule{Biome: world.BiomeJungle, MinElevation: lo, MaxElevation: 200, MinHumidity: 0.75, MaxHumidity: 1},
		BiomeRule{Biome: world.BiomeForest, MinElevation: lo, MaxElevation: hi, MinHumidity: 0.45, MaxHumidity: 1},
		BiomeRule{Biome: world.BiomePlains, MinElevation: lo, MaxElevation: hi, MinHumidity: 0, MaxHumidity: 1},
	)
	if err != nil {
		panic(err) // static table
	}
	return rules
}

// Classify returns the biome of the first matching rule, or BiomeNone.
func (br BiomeRules) Classify(elevation int, humidity float64) world.Biome {
	for _, r := range br.rules {
		if r.Matches(elevation, humidity) {
			return r.Biome
		}
	}
	return world.BiomeNone
}

// Rules returns a copy of the rule list.
func (br BiomeRules) Rules() []BiomeRule {
	cp := make([]BiomeRule, len(br.rules))
	copy(cp, br.rules)
	return cp
}

// Len returns the number of rules.
func (br BiomeRules) Len() int { return len(br.rules) }
