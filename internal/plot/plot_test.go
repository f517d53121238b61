package plot

import (
	"math"
	"testing"

	"github.com/hungnguyengoc/flip/internal/interval"
)

func TestDensityInterpolation(t *testing.T) {
	p := DisjointDensity([]Record{
		{Range: interval.Of(0, 1), Value: 2},
		{Range: interval.Of(1, 2), Value: 3},
	})
	if p.Interpolation(0.5) != 2 {
		t.Errorf("Interpolation(0.5): got %v, want 2", p.Interpolation(0.5))
	}
	if p.Interpolation(1.5) != 3 {
		t.Errorf("Interpolation(1.5): got %v, want 3", p.Interpolation(1.5))
	}
	if p.Interpolation(5) != 0 {
		t.Errorf("Interpolation(5): got %v, want 0", p.Interpolation(5))
	}
}

func TestScale(t *testing.T) {
	p := DisjointDensity([]Record{{Range: interval.Of(0, 1), Value: 2}})
	scaled := p.Scale(3)
	if got := scaled.Interpolation(0.5); got != 6 {
		t.Errorf("Scale: got %v, want 6", got)
	}
}

func TestAddUnionOfBreakpoints(t *testing.T) {
	a := DisjointDensity([]Record{{Range: interval.Of(0, 2), Value: 1}})
	b := DisjointDensity([]Record{{Range: interval.Of(1, 3), Value: 2}})
	sum := a.Add(b)

	tests := []struct {
		x, want float64
	}{
		{0.5, 1},
		{1.5, 3},
		{2.5, 2},
	}
	for _, tt := range tests {
		if got := sum.Interpolation(tt.x); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Add.Interpolation(%v): got %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestCumulativeMonotoneAndTotal(t *testing.T) {
	p := DisjointDensity([]Record{
		{Range: interval.Of(0, 1), Value: 1},
		{Range: interval.Of(1, 2), Value: 2},
	})
	cdf := p.Cumulative()

	if cdf.Interpolation(0) != 0 {
		t.Errorf("cdf(0): got %v, want 0", cdf.Interpolation(0))
	}
	if math.Abs(cdf.Interpolation(1)-1) > 1e-9 {
		t.Errorf("cdf(1): got %v, want 1", cdf.Interpolation(1))
	}
	if math.Abs(cdf.Interpolation(2)-3) > 1e-9 {
		t.Errorf("cdf(2): got %v, want 3", cdf.Interpolation(2))
	}
	if got := cdf.Interpolation(math.Inf(1)); math.Abs(got-3) > 1e-9 {
		t.Errorf("cdf(+Inf): got %v, want 3", got)
	}
	if math.Abs(cdf.Total()-3) > 1e-9 {
		t.Errorf("Total: got %v, want 3", cdf.Total())
	}

	prev := -1.0
	for x := -1.0; x <= 3; x += 0.1 {
		v := cdf.Interpolation(x)
		if v < prev-1e-12 {
			t.Fatalf("cumulative not monotone at x=%v: %v < %v", x, v, prev)
		}
		prev = v
	}
}

func TestInverseRoundTrip(t *testing.T) {
	p := DisjointDensity([]Record{
		{Range: interval.Of(0, 1), Value: 1},
		{Range: interval.Of(1, 2), Value: 1},
	})
	cdf := p.Cumulative()
	inv := cdf.Inverse()

	for _, x := range []float64{0, 0.5, 1, 1.5, 2} {
		mass := cdf.Interpolation(x)
		got := inv.Interpolation(mass)
		if math.Abs(got-x) > 1e-9 {
			t.Errorf("invCdf(cdf(%v)): got %v, want %v", x, got, x)
		}
	}
}

func TestCountPlotInterpolationNoLengthDivision(t *testing.T) {
	p := DisjointCount([]Record{{Range: interval.Of(0, 10), Value: 7}})
	if got := p.Interpolation(5); got != 7 {
		t.Errorf("CountPlot.Interpolation: got %v, want 7 (raw, not divided by length)", got)
	}
}

func TestSquareKernelSinglePointMass(t *testing.T) {
	d := SquareKernel([]Sample{{Value: 5, Weight: 2}}, 1.0)
	cdf := d.Cumulative()
	total := cdf.Total()
	if math.Abs(total-2) > 1e-9 {
		t.Errorf("single point mass: got %v, want 2", total)
	}
}

func TestSquareKernelOverlap(t *testing.T) {
	d := SquareKernel([]Sample{
		{Value: 0, Weight: 1},
		{Value: 0.5, Weight: 1},
	}, 1.0)
	total := d.Cumulative().Total()
	if math.Abs(total-2) > 1e-6 {
		t.Errorf("overlapping kernels total mass: got %v, want 2", total)
	}
}

func TestEqualSpaceSmoothingBasicMass(t *testing.T) {
	d := EqualSpaceSmoothingPs([]Sample{
		{Value: 0, Weight: 1},
		{Value: 1, Weight: 1},
		{Value: 2, Weight: 1},
	}, false)
	total := d.Cumulative().Total()
	// Two intervals, each contributing (1+1)/2 average height * length 1 = 1.
	if math.Abs(total-2) > 1e-9 {
		t.Errorf("EqualSpaceSmoothingPs mass: got %v, want 2", total)
	}
}

func TestEqualSpaceSmoothingExtrapolate(t *testing.T) {
	without := EqualSpaceSmoothingPs([]Sample{{Value: 0, Weight: 1}, {Value: 1, Weight: 1}}, false)
	with := EqualSpaceSmoothingPs([]Sample{{Value: 0, Weight: 1}, {Value: 1, Weight: 1}}, true)
	if len(with.Records()) <= len(without.Records()) {
		t.Error("extrapolate=true should add head/tail records")
	}
}

func TestNormalSmoothingMassApproximatesWeight(t *testing.T) {
	d := NormalSmoothingPs([]Sample{{Value: 0, Weight: 5}}, 1.0)
	total := d.Cumulative().Total()
	if math.Abs(total-5) > 0.1*5 {
		t.Errorf("NormalSmoothingPs mass: got %v, want ~5", total)
	}
}
