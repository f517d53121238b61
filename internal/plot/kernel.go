package plot

import (
	"math"
	"sort"

	"github.com/hungnguyengoc/flip/internal/interval"
)

func rangeOf(lo, hi float64) interval.Range {
	return interval.Of(lo, hi)
}

// Sample is one (value, weight) observation fed to a smoothing kernel.
type Sample struct {
	Value  float64
	Weight float64
}

// SquareKernel converts sparse samples into a density by spreading each
// sample's weight uniformly over a window-wide box centered on its value:
// height w_i/window over [x_i-window/2, x_i+window/2). Overlapping boxes are
// summed via a sweep over the union of their endpoints, avoiding the O(n^2)
// cost of folding DensityPlot.Add pairwise.
func SquareKernel(samples []Sample, window float64) DensityPlot {
	if len(samples) == 0 || window <= 0 {
		return DensityPlot{}
	}

	type edge struct {
		x    float64
		delta float64 // height added (start) or removed (end) at x
	}
	edges := make([]edge, 0, 2*len(samples))
	for _, s := range samples {
		if s.Weight == 0 {
			continue
		}
		h := s.Weight / window
		edges = append(edges,
			edge{x: s.Value - window/2, delta: h},
			edge{x: s.Value + window/2, delta: -h},
		)
	}
	if len(edges) == 0 {
		return DensityPlot{}
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].x < edges[j].x })

	records := make([]Record, 0, len(edges))
	height := 0.0
	for i := 0; i < len(edges); {
		x := edges[i].x
		for i < len(edges) && edges[i].x == x {
			height += edges[i].delta
			i++
		}
		if i < len(edges) {
			next := edges[i].x
			if next > x && height != 0 {
				records = append(records, Record{Range: rangeOf(x, next), Value: height})
			}
		}
	}

	return DisjointDensity(records)
}

// EqualSpaceSmoothingPs sorts samples by value and emits a piecewise
// density over each consecutive pair [p_i, p_{i+1}]: height
// (w_i+w_{i+1})/(2*length). When extrapolate is true and there are at least
// two samples, a zero-weight head point p1-(p2-p1) and tail point
// pn+(pn-pn-1) are added first so the density extends one gap beyond the
// outermost samples on each side. Zero-length intervals are skipped.
func EqualSpaceSmoothingPs(samples []Sample, extrapolate bool) DensityPlot {
	if len(samples) == 0 {
		return DensityPlot{}
	}

	ps := make([]Sample, len(samples))
	copy(ps, samples)
	sort.Slice(ps, func(i, j int) bool { return ps[i].Value < ps[j].Value })

	if extrapolate && len(ps) >= 2 {
		head := Sample{Value: ps[0].Value - (ps[1].Value - ps[0].Value), Weight: 0}
		n := len(ps)
		tail := Sample{Value: ps[n-1].Value + (ps[n-1].Value - ps[n-2].Value), Weight: 0}
		ps = append([]Sample{head}, append(ps, tail)...)
	}

	records := make([]Record, 0, len(ps))
	for i := 0; i+1 < len(ps); i++ {
		lo, hi := ps[i].Value, ps[i+1].Value
		length := hi - lo
		if length <= 0 || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			continue
		}
		v := (ps[i].Weight + ps[i+1].Weight) / (2 * length)
		records = append(records, Record{Range: rangeOf(lo, hi), Value: v})
	}

	return DisjointDensity(records)
}

// NormalSmoothingPs discretizes a sum of Gaussians, one per sample, each
// carrying that sample's weight as its total mass. bandwidth is the
// standard deviation of every kernel; support is truncated at +/-4*bandwidth
// and discretized into equal steps of bandwidth/binsPerSide (binsPerSide
// steps per standard deviation, 8*binsPerSide in all), matching spec's "treated
// abstractly... implementers may discretize over a fixed support".
func NormalSmoothingPs(samples []Sample, bandwidth float64) DensityPlot {
	const binsPerSide = 64

	if len(samples) == 0 || bandwidth <= 0 {
		return DensityPlot{}
	}

	step := bandwidth / float64(binsPerSide)
	result := DensityPlot{}

	for _, s := range samples {
		if s.Weight == 0 {
			continue
		}
		lo := s.Value - 4*bandwidth
		records := make([]Record, 0, 8*binsPerSide)
		for x := lo; x < s.Value+4*bandwidth; x += step {
			hi := x + step
			mid := (x + hi) / 2
			density := s.Weight * gaussianPDF(mid, s.Value, bandwidth)
			records = append(records, Record{Range: rangeOf(x, hi), Value: density})
		}
		result = result.Add(DisjointDensity(records))
	}

	return result
}

func gaussianPDF(x, mean, stddev float64) float64 {
	z := (x - mean) / stddev
	return math.Exp(-0.5*z*z) / (stddev * math.Sqrt(2*math.Pi))
}
