package flip

import (
	"math"
	"sort"
)

// KLDivergence estimates the Kullback-Leibler divergence D(s || ref) between
// this sketch's density estimate and ref's, a diagnostic for tracking how far
// an Adaptive sketch has drifted from a reference snapshot (a supplement
// beyond the seed scenarios: not queried by Query/Update, only by callers
// benchmarking drift). It integrates over the union of both sketches'
// breakpoints, treating each as piecewise-constant between them.
//
// Returns +Inf if s assigns positive mass somewhere ref assigns none. Returns
// 0 for two empty sketches.
func (s Sketch[A]) KLDivergence(ref Sketch[A]) float64 {
	pa, okA := s.densityPlot()
	pb, okB := ref.densityPlot()
	if !okA || !okB {
		return 0
	}

	bps := make(map[float64]struct{})
	for _, r := range pa.Records() {
		bps[r.Range.Start] = struct{}{}
		bps[r.Range.End] = struct{}{}
	}
	for _, r := range pb.Records() {
		bps[r.Range.Start] = struct{}{}
		bps[r.Range.End] = struct{}{}
	}

	xs := make([]float64, 0, len(bps))
	for x := range bps {
		if !math.IsInf(x, 0) {
			xs = append(xs, x)
		}
	}
	sort.Float64s(xs)

	total := 0.0
	for i := 0; i+1 < len(xs); i++ {
		lo, hi := xs[i], xs[i+1]
		if hi <= lo {
			continue
		}
		mid := (lo + hi) / 2
		p := pa.Interpolation(mid)
		q := pb.Interpolation(mid)

		if p == 0 {
			continue
		}
		if q == 0 {
			return math.Inf(1)
		}
		total += p * math.Log(p/q) * (hi - lo)
	}
	return total
}
