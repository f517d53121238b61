package flip

import (
	"math"
	"testing"

	"github.com/hungnguyengoc/flip/internal/hcounter"
)

func TestEqualSpacedCmapProducesEvenDividers(t *testing.T) {
	c := equalSpacedCmap(4, 0, 10)
	want := []float64{2.5, 5, 7.5}
	got := c.Dividers()
	if len(got) != len(want) {
		t.Fatalf("Dividers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dividers()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEqualSpacedCmapDegenerateSize(t *testing.T) {
	c := equalSpacedCmap(1, 0, 10)
	if got := len(c.Dividers()); got != 0 {
		t.Errorf("equalSpacedCmap(1, ...) has %d dividers, want 0", got)
	}
	if got := c.Size(); got != 1 {
		t.Errorf("equalSpacedCmap(1, ...).Size() = %d, want 1", got)
	}
}

func TestStructureNarrowUpdateIsImmutableAndAdditive(t *testing.T) {
	st := structure{
		cmap:    equalSpacedCmap(4, 0, 10),
		counter: hcounter.NewSeeded(8, 2, 0),
	}

	updated := st.narrowUpdate([]hcounter.Update{{Bin: 2, Weight: 3}})

	if got := st.counter.Sum(); got != 0 {
		t.Errorf("narrowUpdate mutated the receiver: Sum() = %v, want 0", got)
	}
	if got := updated.counter.Sum(); got != 3 {
		t.Errorf("updated.counter.Sum() = %v, want 3", got)
	}
}

func TestStructureDensityPlotSkipsInfiniteBins(t *testing.T) {
	st := structure{
		cmap:    equalSpacedCmap(4, 0, 10),
		counter: hcounter.NewSeeded(8, 2, 0).Updates([]hcounter.Update{{Bin: 1, Weight: 5}}),
	}

	dp := st.densityPlot()
	records := dp.Records()
	if len(records) != 2 {
		t.Fatalf("len(Records()) = %d, want 2 (only the two finite bins of a 4-bin Cmap)", len(records))
	}
	for _, r := range records {
		if math.IsInf(r.Range.Start, 0) || math.IsInf(r.Range.End, 0) {
			t.Errorf("densityPlot retained an infinite-ended bin: %+v", r.Range)
		}
	}
}

func TestIsInfiniteRange(t *testing.T) {
	if !isInfiniteRange(rangeOf(math.Inf(-1), 5)) {
		t.Error("isInfiniteRange(-Inf, 5) = false, want true")
	}
	if !isInfiniteRange(rangeOf(5, math.Inf(1))) {
		t.Error("isInfiniteRange(5, +Inf) = false, want true")
	}
	if isInfiniteRange(rangeOf(2, 5)) {
		t.Error("isInfiniteRange(2, 5) = true, want false")
	}
}
