// Package plot implements the piecewise density, count, and cumulative
// functions the sketch engine interpolates, integrates, and inverts.
//
// DensityPlot and CountPlot are both piecewise-constant functions over a
// disjoint, sorted set of Ranges; they differ only in what the caller's
// values mean (a density that integrates to probability mass, versus a raw
// count). CumulativePlot is the piecewise-linear integral of a DensityPlot,
// and its Inverse is the piecewise-linear quantile function the CDF-inversion
// updater walks to build an equal-mass partition.
package plot

import (
	"math"
	"sort"

	"github.com/hungnguyengoc/flip/internal/interval"
)

// Record is one (Range, value) pair of a piecewise-constant plot.
type Record struct {
	Range interval.Range
	Value float64
}

// DensityPlot is a piecewise-constant density: Value is mass per unit
// length over Range, so the area under a record is Value*Range.Length().
type DensityPlot struct {
	records []Record // sorted by Range.Start, pairwise disjoint
}

// DisjointDensity builds a DensityPlot from non-overlapping records, sorting
// them by range start. Records are not deduplicated or merged; the caller is
// responsible for disjointness.
func DisjointDensity(records []Record) DensityPlot {
	out := make([]Record, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
	return DensityPlot{records: out}
}

// Records returns the plot's underlying records in sorted order.
func (p DensityPlot) Records() []Record {
	out := make([]Record, len(p.records))
	copy(out, p.records)
	return out
}

// Empty reports whether the plot has no records.
func (p DensityPlot) Empty() bool {
	return len(p.records) == 0
}

// Interpolation returns the value of the record containing x, or 0 if x
// falls in a gap or outside every record.
func (p DensityPlot) Interpolation(x float64) float64 {
	for _, r := range p.records {
		if r.Range.Contains(x) {
			return r.Value
		}
	}
	return 0
}

// Scale multiplies every record's value by s.
func (p DensityPlot) Scale(s float64) DensityPlot {
	out := make([]Record, len(p.records))
	for i, r := range p.records {
		out[i] = Record{Range: r.Range, Value: r.Value * s}
	}
	return DensityPlot{records: out}
}

// Add returns the pointwise sum of p and other over the union of their
// breakpoints. Zero-length resulting intervals are skipped.
func (p DensityPlot) Add(other DensityPlot) DensityPlot {
	bps := breakpoints(p.records, other.records)
	if len(bps) < 2 {
		return DensityPlot{}
	}

	out := make([]Record, 0, len(bps)-1)
	for i := 0; i+1 < len(bps); i++ {
		lo, hi := bps[i], bps[i+1]
		if hi <= lo {
			continue
		}
		mid := midpoint(lo, hi)
		v := p.Interpolation(mid) + other.Interpolation(mid)
		if v == 0 {
			continue
		}
		out = append(out, Record{Range: interval.Of(lo, hi), Value: v})
	}
	return DensityPlot{records: out}
}

// midpoint avoids Inf-Inf by falling back to the finite endpoint when one
// side is infinite; dividers (and therefore all breakpoints reaching this
// function) are always finite in a well-formed plot, but defensive here
// costs nothing.
func midpoint(lo, hi float64) float64 {
	if math.IsInf(lo, 0) {
		return hi
	}
	if math.IsInf(hi, 0) {
		return lo
	}
	return (lo + hi) / 2
}

func breakpoints(a, b []Record) []float64 {
	set := make(map[float64]struct{}, 2*(len(a)+len(b)))
	for _, r := range a {
		set[r.Range.Start] = struct{}{}
		set[r.Range.End] = struct{}{}
	}
	for _, r := range b {
		set[r.Range.Start] = struct{}{}
		set[r.Range.End] = struct{}{}
	}
	out := make([]float64, 0, len(set))
	for x := range set {
		if !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	sort.Float64s(out)
	return out
}

// Cumulative integrates the density left to right into a CumulativePlot.
// Records with an infinite endpoint are skipped (they contribute no finite
// area) — callers that need to include sentinel bins must already have
// excluded them, per the sketch package's densityPlot construction.
func (p DensityPlot) Cumulative() CumulativePlot {
	running := 0.0
	var xs, ys []float64

	appendPoint := func(x, y float64) {
		if len(xs) > 0 && xs[len(xs)-1] == x {
			ys[len(ys)-1] = y
			return
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	for _, r := range p.records {
		if math.IsInf(r.Range.Start, 0) || math.IsInf(r.Range.End, 0) {
			continue
		}
		appendPoint(r.Range.Start, running)
		running += r.Value * r.Range.Length()
		appendPoint(r.Range.End, running)
	}

	return CumulativePlot{xs: xs, ys: ys, total: running}
}

// CountPlot is a piecewise-constant count: Interpolation returns the raw
// stored value with no division by range length.
type CountPlot struct {
	records []Record
}

// DisjointCount builds a CountPlot from non-overlapping records.
func DisjointCount(records []Record) CountPlot {
	out := make([]Record, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
	return CountPlot{records: out}
}

// Interpolation returns the raw count of the record containing x, or 0.
func (p CountPlot) Interpolation(x float64) float64 {
	for _, r := range p.records {
		if r.Range.Contains(x) {
			return r.Value
		}
	}
	return 0
}

// CumulativePlot is a monotone, piecewise-linear function produced by
// integrating a DensityPlot. Interpolation saturates to 0 below the first
// breakpoint and to Total above the last.
type CumulativePlot struct {
	xs, ys []float64
	total  float64
}

// Total returns the cumulative value at +Inf.
func (c CumulativePlot) Total() float64 {
	return c.total
}

// Interpolation linearly interpolates between the two breakpoints bracketing
// x, saturating outside [xs[0], xs[last]].
func (c CumulativePlot) Interpolation(x float64) float64 {
	if len(c.xs) == 0 {
		return 0
	}
	if math.IsInf(x, 1) || x >= c.xs[len(c.xs)-1] {
		return c.total
	}
	if x <= c.xs[0] {
		return 0
	}

	i := sort.Search(len(c.xs), func(i int) bool { return c.xs[i] >= x })
	// c.xs[i] >= x > c.xs[0], so i > 0.
	x0, x1 := c.xs[i-1], c.xs[i]
	y0, y1 := c.ys[i-1], c.ys[i]
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// Inverse swaps x and y and re-sorts by the new x (the old cumulative
// value), producing the quantile function for mass in [0, Total()]. Flat
// segments in the source (zero-density gaps) produce duplicate x values in
// the inverse; Interpolation resolves ties by picking the first breakpoint
// at that mass, the conventional left-continuous generalized inverse.
func (c CumulativePlot) Inverse() CumulativePlot {
	n := len(c.xs)
	pairs := make([][2]float64, n)
	for i := 0; i < n; i++ {
		pairs[i] = [2]float64{c.ys[i], c.xs[i]}
	}
	// Stable: ties at the same mass must keep their original (x-ascending)
	// order so Interpolation's left-continuous tie-break is guaranteed, not
	// incidental to sort.Slice's small-slice insertion-sort fallback.
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, pr := range pairs {
		xs[i] = pr[0]
		ys[i] = pr[1]
	}

	total := 0.0
	if n > 0 {
		total = ys[n-1]
	}
	return CumulativePlot{xs: xs, ys: ys, total: total}
}
