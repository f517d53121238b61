// Package cmap implements the partition ("Cmap") that divides the real line
// into indexed bins for the sketch engine.
//
// A Cmap is a sorted, deduplicated sequence of k-1 finite dividers inducing k
// half-open bins: (-Inf, d1), [d1, d2), ..., [dk-1, +Inf). Binary search over
// the divider slice resolves Apply in O(log k); the two outer bins carry
// infinite Range endpoints and are skipped wherever the engine needs a
// finite density (see plot.DensityPlot construction in the sketch package).
package cmap

import (
	"math"
	"sort"

	"github.com/hungnguyengoc/flip/internal/interval"
)

// Cmap is an immutable partition of the real line. The zero value is not
// valid; construct with Divider.
type Cmap struct {
	dividers []float64
}

// Divider builds a Cmap from an arbitrary (possibly unsorted, possibly
// duplicated) slice of finite dividers. The input is sorted and deduplicated
// by value before use; the Cmap does not retain a reference to ds.
func Divider(ds []float64) Cmap {
	out := make([]float64, len(ds))
	copy(out, ds)
	sort.Float64s(out)

	deduped := out[:0]
	for i, d := range out {
		if i == 0 || d != deduped[len(deduped)-1] {
			deduped = append(deduped, d)
		}
	}
	return Cmap{dividers: deduped}
}

// Equal reports whether two Cmaps have identical divider sequences.
func Equal(a, b Cmap) bool {
	if len(a.dividers) != len(b.dividers) {
		return false
	}
	for i := range a.dividers {
		if a.dividers[i] != b.dividers[i] {
			return false
		}
	}
	return true
}

// Size returns the number of bins, dividers+1.
func (c Cmap) Size() int {
	return len(c.dividers) + 1
}

// Dividers returns a copy of the sorted divider slice.
func (c Cmap) Dividers() []float64 {
	out := make([]float64, len(c.dividers))
	copy(out, c.dividers)
	return out
}

// Apply returns the bin index containing x: the largest i such that
// d_i <= x, with d_0 = -Inf. Ties at a divider go to the right, matching the
// half-open [d_i, d_{i+1}) bin convention.
func (c Cmap) Apply(x float64) int {
	// sort.Search finds the first index i where dividers[i] > x; everything
	// before that index is <= x, so that index is exactly the bin number.
	return sort.Search(len(c.dividers), func(i int) bool {
		return c.dividers[i] > x
	})
}

// Range returns the half-open Range of bin i. The outer bins saturate to
// +/-Inf.
func (c Cmap) Range(i int) interval.Range {
	start := math.Inf(-1)
	if i > 0 {
		start = c.dividers[i-1]
	}
	end := math.Inf(1)
	if i < len(c.dividers) {
		end = c.dividers[i]
	}
	return interval.Of(start, end)
}

// Bins returns the ordered list of every bin's Range.
func (c Cmap) Bins() []interval.Range {
	out := make([]interval.Range, c.Size())
	for i := range out {
		out[i] = c.Range(i)
	}
	return out
}
