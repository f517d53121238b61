package flip

import (
	"math"

	"github.com/hungnguyengoc/flip/internal/cmap"
	"github.com/hungnguyengoc/flip/internal/plot"
)

// updateCmap derives a fresh Cmap via CDF inversion, §4.8. It blends the
// current sketch's density estimate with the incoming batch's smoothed
// density (weighted mixingRatio:1 in the batch's favor, so mixingRatio==0
// ignores the batch entirely), integrates to a CDF, inverts it, and reads
// off cmapSize-1 equal-mass dividers.
func updateCmap[A any](s Sketch[A], ps []primSample, cmapSize int, mixingRatio, window float64) (cmap.Cmap, error) {
	if cmapSize < 2 {
		return cmap.Cmap{}, ErrInvalidConfig
	}

	sketchPlot, ok := s.densityPlot()
	if !ok {
		return cmap.Cmap{}, ErrEmptySketch
	}

	mu := mixingRatio
	mixed := sketchPlot.Scale(1 / (mu + 1))
	if len(ps) > 0 {
		samples := make([]plot.Sample, len(ps))
		for i, p := range ps {
			samples[i] = plot.Sample{Value: p.value, Weight: p.weight}
		}
		batchDensity := plot.SquareKernel(samples, window)
		mixed = mixed.Add(batchDensity.Scale(mu / (mu + 1)))
	}

	cdf := mixed.Cumulative()
	total := cdf.Total()
	switch {
	case math.IsNaN(total) || total <= 0:
		return cmap.Cmap{}, ErrDegenerateInput
	case math.IsInf(total, 0):
		return cmap.Cmap{}, ErrNumericOverflow
	}

	invCdf := cdf.Inverse()
	unit := total / float64(cmapSize)

	dividers := make([]float64, 0, cmapSize-1)
	for i := 1; i < cmapSize; i++ {
		d := invCdf.Interpolation(unit * float64(i))
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return cmap.Cmap{}, ErrNumericOverflow
		}
		dividers = append(dividers, d)
	}
	return cmap.Divider(dividers), nil
}
