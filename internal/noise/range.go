package noise

import "fmt"

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Span returns Max-Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Clamp coerces v into the range.
func (r Range) Clamp(v float64) float64 {
	return min(max(v, r.Min), r.Max)
}

// MapTo linearly maps v from r onto target, so r.Min lands on target.Min and
// r.Max on target.Max. A degenerate source range maps to target's midpoint.
func (r Range) MapTo(v float64, target Range) float64 {
	span := r.Span()
	if span <= 0 {
		return (target.Min + target.Max) / 2
	}
	t := (v - r.Min) / span
	return target.Clamp(target.Min + t*target.Span())
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}
