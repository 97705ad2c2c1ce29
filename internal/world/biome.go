package world

// Biome classifies a tile's surface.
type Biome uint8

const (
	BiomeNone Biome = iota
	BiomeOcean
	BiomeCoast
	BiomeLake
	BiomeSnow
	BiomeDesert
	BiomeAlpine
	BiomeJungle
	BiomeForest
	BiomePlains
	BiomeBeach
	BiomeCliff

	biomeCount
)

type biomeInfo struct {
	name  string
	water bool
	land  bool
}

// biomeTable replaces per-variant methods; add a row when adding a biome.
var biomeTable = [biomeCount]biomeInfo{
	BiomeNone:   {name: "None"},
	BiomeOcean:  {name: "Ocean", water: true},
	BiomeCoast:  {name: "Coast", water: true},
	BiomeLake:   {name: "Lake", water: true},
	BiomeSnow:   {name: "Snow", land: true},
	BiomeDesert: {name: "Desert", land: true},
	BiomeAlpine: {name: "Alpine", land: true},
	BiomeJungle: {name: "Jungle", land: true},
	BiomeForest: {name: "Forest", land: true},
	BiomePlains: {name: "Plains", land: true},
	BiomeBeach:  {name: "Beach", land: true},
	BiomeCliff:  {name: "Cliff", land: true},
}

// Biomes lists every biome in declaration order.
func Biomes() []Biome {
	out := make([]Biome, 0, biomeCount)
	for b := Biome(0); b < biomeCount; b++ {
		out = append(out, b)
	}
	return out
}

func (b Biome) String() string {
	if b >= biomeCount {
		return "Unknown"
	}
	return biomeTable[b].name
}

// IsWater reports whether the biome is a body of water (ocean, coast, lake).
func (b Biome) IsWater() bool {
	return b < biomeCount && biomeTable[b].water
}

// IsLand reports whether the biome belongs to a continent.
func (b Biome) IsLand() bool {
	return b < biomeCount && biomeTable[b].land
}

// IsSea reports whether the biome is open sea.
func (b Biome) IsSea() bool {
	return b == BiomeOcean || b == BiomeCoast
}

// ParseBiome looks a biome up by its String name.
func ParseBiome(name string) (Biome, bool) {
	for b := Biome(0); b < biomeCount; b++ {
		if biomeTable[b].name == name {
			return b, true
		}
	}
	return BiomeNone, false
}
