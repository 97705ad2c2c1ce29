package noise

import (
	"math"
	"testing"

	"github.com/talgya/hex-planet/internal/hex"
	"github.com/talgya/hex-planet/internal/world"
)

func testTiles(t *testing.T) []*world.Tile {
	t.Helper()
	w, err := world.New(3, 1, 12)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return w.Tiles()
}

func TestMapToHitsBothBounds(t *testing.T) {
	for _, kind := range []Kind{KindSimplex, KindPerlin} {
		src, err := NewSource(kind, 99)
		if err != nil {
			t.Fatalf("NewSource(%s): %v", kind, err)
		}
		field := NewField(src, 0, 4, 0.5)
		samples := field.GenerateAll(testTiles(t))

		target := Range{Min: -1000, Max: 1000}
		sawMin, sawMax := false, false
		for _, v := range samples.Values {
			m := samples.Observed.MapTo(v, target)
			if !target.Contains(m) {
				t.Fatalf("%s: mapped value %v outside %v", kind, m, target)
			}
			if math.Abs(m-target.Min) < 1e-9 {
				sawMin = true
			}
			if math.Abs(m-target.Max) < 1e-9 {
				sawMax = true
			}
		}
		if !sawMin || !sawMax {
			t.Fatalf("%s: remap did not reach both bounds (min=%v max=%v)", kind, sawMin, sawMax)
		}
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	a, _ := NewSource(KindSimplex, 1234)
	b, _ := NewSource(KindSimplex, 1234)
	fa := NewField(a, 16, 3, 0.5)
	fb := NewField(b, 16, 3, 0.5)
	for _, c := range hex.Disk(hex.New(0, 0), 6) {
		if fa.Sample(c) != fb.Sample(c) {
			t.Fatalf("sample at %v differs between identically seeded fields", c)
		}
	}
}

func TestGenerateAllMatchesSample(t *testing.T) {
	src, _ := NewSource(KindSimplex, 8)
	field := NewField(src, 10, 2, 0.5)
	tiles := testTiles(t)
	samples := field.GenerateAll(tiles)
	if len(samples.Values) != len(tiles) {
		t.Fatalf("got %d samples for %d tiles", len(samples.Values), len(tiles))
	}
	for _, tile := range tiles[:50] {
		if samples.Values[tile.Position()] != field.Sample(tile.Position()) {
			t.Fatalf("parallel sample at %v differs from direct sample", tile.Position())
		}
	}
}

func TestRescanTracksEditedValues(t *testing.T) {
	src, _ := NewSource(KindPerlin, 5)
	samples := NewField(src, 10, 3, 0.5).GenerateAll(testTiles(t))
	before := samples.Observed

	for p, v := range samples.Values {
		samples.Values[p] = before.Min + (v-before.Min)*0.5
	}
	samples.Rescan()

	want := before.Min + (before.Max-before.Min)*0.5
	if samples.Observed.Min != before.Min || math.Abs(samples.Observed.Max-want) > 1e-12 {
		t.Fatalf("observed %v after halving, want [%v,%v]", samples.Observed, before.Min, want)
	}

	empty := &Samples{Values: map[hex.Coord]float64{}}
	empty.Rescan()
	if empty.Observed != (Range{}) {
		t.Fatalf("empty samples observed %v", empty.Observed)
	}
}

func TestMapToDegenerateRange(t *testing.T) {
	r := Range{Min: 0.4, Max: 0.4}
	if got := r.MapTo(0.4, Range{Min: 0, Max: 1}); got != 0.5 {
		t.Fatalf("degenerate MapTo = %v, want 0.5", got)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("Perlin"); err != nil || k != KindPerlin {
		t.Fatalf("ParseKind(Perlin) = %v, %v", k, err)
	}
	if k, err := ParseKind(""); err != nil || k != KindSimplex {
		t.Fatalf("ParseKind(\"\") = %v, %v", k, err)
	}
	if _, err := ParseKind("worley"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestDeriveSeedDecorrelates(t *testing.T) {
	for _, s := range []int64{0, 1, 42, -7} {
		if DeriveSeed(s, 17) == s {
			t.Fatalf("DeriveSeed(%d) returned the seed itself", s)
		}
	}
}
