// Package noise samples coherent noise over hex coordinates and remaps the
// observed values onto a semantic range (elevation, humidity).
package noise

import (
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Source is a seeded coherent-noise function of the plane.
type Source interface {
	Eval2(x, y float64) float64
}

// Kind selects a noise backend.
type Kind string

const (
	KindSimplex Kind = "simplex"
	KindPerlin  Kind = "perlin"
)

// ParseKind accepts a backend name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSimplex, "":
		return KindSimplex, nil
	case KindPerlin:
		return KindPerlin, nil
	}
	return "", fmt.Errorf("unknown noise kind %q", s)
}

// Perlin parameters: alpha is the weight divisor per octave, beta the
// frequency multiplier, n the internal octave count.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
)

// NewSource builds the backend for kind seeded with seed.
func NewSource(kind Kind, seed int64) (Source, error) {
	switch kind {
	case KindSimplex, "":
		return opensimplex.NewNormalized(seed), nil
	case KindPerlin:
		return perlinSource{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)}, nil
	}
	return nil, fmt.Errorf("unknown noise kind %q", kind)
}

type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Eval2(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

// DeriveSeed decorrelates a secondary field from the world seed by squaring
// it; the salt keeps seeds 0 and 1 from mapping onto themselves.
func DeriveSeed(seed int64, salt int64) int64 {
	return seed*seed + salt
}
