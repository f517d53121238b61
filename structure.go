package flip

import (
	"math"

	"github.com/hungnguyengoc/flip/internal/cmap"
	"github.com/hungnguyengoc/flip/internal/hcounter"
	"github.com/hungnguyengoc/flip/internal/interval"
	"github.com/hungnguyengoc/flip/internal/plot"
)

// structure is one (Cmap, HCounter) generation. It is never mutated in
// place: narrow updates and rearrangement both build a new structure value.
type structure struct {
	cmap    cmap.Cmap
	counter hcounter.HCounter
}

// equalSpacedCmap seeds the initial Cmap with cmapSize-1 equally spaced
// dividers between start and end.
func equalSpacedCmap(cmapSize int, start, end float64) cmap.Cmap {
	n := cmapSize - 1
	if n <= 0 {
		return cmap.Divider(nil)
	}
	step := (end - start) / float64(cmapSize)
	dividers := make([]float64, n)
	for i := 0; i < n; i++ {
		dividers[i] = start + step*float64(i+1)
	}
	return cmap.Divider(dividers)
}

// narrowUpdate applies (bin, weight) writes to this structure's counter,
// leaving the Cmap untouched.
func (s structure) narrowUpdate(writes []hcounter.Update) structure {
	return structure{cmap: s.cmap, counter: s.counter.Updates(writes)}
}

// densityPlot converts this structure into a DensityPlot over its finite
// bins, skipping the two infinite outer sentinel bins.
func (s structure) densityPlot() plot.DensityPlot {
	bins := s.cmap.Bins()
	records := make([]plot.Record, 0, len(bins))
	for i, r := range bins {
		if isInfiniteRange(r) {
			continue
		}
		records = append(records, plot.Record{
			Range: r,
			Value: s.counter.Get(i) / r.Length(),
		})
	}
	return plot.DisjointDensity(records)
}

func isInfiniteRange(r interval.Range) bool {
	return math.IsInf(r.Start, 0) || math.IsInf(r.End, 0)
}

// rangeOf is a small local alias for interval.Of, used throughout the
// package wherever an ad hoc Range literal is built for an OverlapPercent
// or Contains check.
func rangeOf(start, end float64) interval.Range {
	return interval.Of(start, end)
}
