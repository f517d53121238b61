// Package interval implements half-open real intervals used throughout the
// sketch engine to describe bin extents and query windows.
//
// A Range is always half-open, [Start, End): the start boundary belongs to
// the range, the end boundary does not. This matches the bin convention used
// by cmap.Cmap, so a value that lands exactly on a divider always resolves to
// the bin that starts there, never the one that ends there.
package interval

import "math"

// Range is the half-open interval [Start, End). Start must be <= End.
// Start and End may be infinite at the two outer sentinel bins; dividers
// themselves are always finite, so Start and End are never both infinite
// with opposite signs in a well-formed Range.
type Range struct {
	Start float64
	End   float64
}

// Of constructs a Range from its two endpoints.
func Of(start, end float64) Range {
	return Range{Start: start, End: end}
}

// Length returns End - Start. It is +Inf for a sentinel bin.
func (r Range) Length() float64 {
	return r.End - r.Start
}

// IsPoint reports whether the range has zero length.
func (r Range) IsPoint() bool {
	return r.Start == r.End
}

// Middle returns the arithmetic midpoint. For a sentinel bin (one infinite
// endpoint) this is +Inf or -Inf, which is never used as an interpolation
// input by the rest of the engine.
func (r Range) Middle() float64 {
	return (r.Start + r.End) / 2
}

// Contains reports whether x falls in [Start, End).
func (r Range) Contains(x float64) bool {
	return x >= r.Start && x < r.End
}

// Intersect returns the overlap of r and other. ok is false if the ranges
// are disjoint.
func (r Range) Intersect(other Range) (Range, bool) {
	start := math.Max(r.Start, other.Start)
	end := math.Min(r.End, other.End)
	if start >= end {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// OverlapPercent returns the fraction of r covered by its intersection with
// other, in [0, 1]. It is 0 when r is a point or the ranges are disjoint.
//
// r with infinite length (a sentinel outer bin) is a special case: a finite
// intersection is always 0% of an infinite bin (dividing a finite quantity
// by infinity), which would otherwise make a query that exactly reproduces
// the whole sentinel bin compute Inf/Inf = NaN instead of the 100% it
// actually is. That exact-containment case is checked directly instead of
// going through the general ratio.
func (r Range) OverlapPercent(other Range) float64 {
	if r.IsPoint() {
		return 0
	}
	inter, ok := r.Intersect(other)
	if !ok {
		return 0
	}
	if math.IsInf(r.Length(), 1) {
		if inter.Start == r.Start && inter.End == r.End {
			return 1
		}
		return 0
	}
	return inter.Length() / r.Length()
}
