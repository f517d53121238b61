package flip

import (
	"github.com/hungnguyengoc/flip/internal/plot"
)

// effNo is the size of the "effective" (narrow-update-receiving) prefix of
// the Structure list, per §4.6: the oldest generation is held as a frozen
// reference once the sketch is saturated.
func effNo(cmapNo int) int {
	if cmapNo > 1 {
		if cmapNo-1 > 1 {
			return cmapNo - 1
		}
		return 1
	}
	return cmapNo
}

// decayWeights returns decayRate(lambda, i) for i in [0, n).
func (s Sketch[A]) decayWeights(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = s.decay.rate(s.conf.DecayFactor, i)
	}
	return out
}

func sumWeights(ws []float64) float64 {
	total := 0.0
	for _, w := range ws {
		total += w
	}
	return total
}

// sumForStr is the decay-weighted, normalized total mass across every
// Structure (§4.5). The normalization denominator only ever sums as many
// decay terms as there are Structures present.
func (s Sketch[A]) sumForStr() float64 {
	n := len(s.structures)
	weights := s.decayWeights(n)
	denom := sumWeights(weights)
	if denom == 0 {
		return 0
	}

	num := 0.0
	for i, st := range s.structures {
		num += weights[i] * st.counter.Sum()
	}
	return num / denom
}

// singleCount is the range-count inside one Structure, §4.5.
func singleCount(st structure, pFrom, pTo float64) float64 {
	sb := st.cmap.Apply(pFrom)
	eb := st.cmap.Apply(pTo)

	if sb == eb {
		return st.counter.Get(sb) * st.cmap.Range(sb).OverlapPercent(rangeOf(pFrom, pTo))
	}

	interior := 0.0
	if eb-sb > 1 {
		interior = st.counter.Count(sb+1, eb-1)
	}

	startRange := st.cmap.Range(sb)
	boundary := st.counter.Get(sb) * startRange.OverlapPercent(rangeOf(pFrom, startRange.End))

	endRange := st.cmap.Range(eb)
	boundary += st.counter.Get(eb) * endRange.OverlapPercent(rangeOf(endRange.Start, pTo))

	return interior + boundary
}

// primCountForStr is the decay-weighted, normalized range count across
// every Structure (§4.5).
func (s Sketch[A]) primCountForStr(pFrom, pTo float64) float64 {
	n := len(s.structures)
	weights := s.decayWeights(n)
	denom := sumWeights(weights)
	if denom == 0 {
		return 0
	}

	num := 0.0
	for i, st := range s.structures {
		num += weights[i] * singleCount(st, pFrom, pTo)
	}
	return num / denom
}

// densityPlot projects the newest Structure's finite bins into a
// DensityPlot. It returns ok=false when the sketch has no Structures
// (which cannot happen for a well-formed Sketch, but the updater checks
// this explicitly per §7's EmptySketch case).
func (s Sketch[A]) densityPlot() (plot.DensityPlot, bool) {
	if len(s.structures) == 0 {
		return plot.DensityPlot{}, false
	}
	return s.structures[0].densityPlot(), true
}

// Sum returns the sketch's total effective weight (base behavior; the
// Adaptive arm adds the queue's contribution in adaptive.go).
func (s Sketch[A]) Sum() float64 {
	total := s.sumForStr()
	if s.queue != nil {
		total += s.queueCorrection() * s.sumForQueue()
	}
	return total
}

// Count returns the cumulative weight over [measure(aLo), measure(aHi)].
func (s Sketch[A]) Count(aLo, aHi A) float64 {
	pFrom, pTo := s.measure.To(aLo), s.measure.To(aHi)
	total := s.primCountForStr(pFrom, pTo)
	if s.queue != nil {
		total += s.queueCorrection() * s.countForQueue(pFrom, pTo)
	}
	return total
}

// Probability returns Count(aLo, aHi) / Sum(), 0 when Sum() is 0.
func (s Sketch[A]) Probability(aLo, aHi A) float64 {
	sum := s.Sum()
	if sum == 0 {
		return 0
	}
	return s.Count(aLo, aHi) / sum
}

// PDF returns the estimated density at a.
func (s Sketch[A]) PDF(a A) float64 {
	p := s.measure.To(a)
	if s.queue != nil {
		return s.pdfForQueue(p)
	}
	d, ok := s.densityPlot()
	if !ok {
		return 0
	}
	return d.Interpolation(p)
}
