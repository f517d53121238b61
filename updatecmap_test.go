package flip

import (
	"errors"
	"math"
	"testing"
)

func TestUpdateCmapEmptySketchHasNoStructures(t *testing.T) {
	var s Sketch[float64]
	if _, err := updateCmap(s, nil, 4, 1, 1); !errors.Is(err, ErrEmptySketch) {
		t.Errorf("updateCmap on a structure-less sketch returned %v, want ErrEmptySketch", err)
	}
}

func TestUpdateCmapDegenerateInputOnAllZeroDensity(t *testing.T) {
	conf := scenarioConf()
	s := mustEmpty(t, conf)

	if _, err := updateCmap(s, nil, conf.CmapSize, conf.MixingRatio, conf.Window); !errors.Is(err, ErrDegenerateInput) {
		t.Errorf("updateCmap with no prior mass and no batch returned %v, want ErrDegenerateInput", err)
	}
}

func TestUpdateCmapNumericOverflowOnInfiniteWeight(t *testing.T) {
	conf := scenarioConf()
	s := mustEmpty(t, conf)

	ps := []primSample{{value: 5, weight: math.Inf(1)}}
	if _, err := updateCmap(s, ps, conf.CmapSize, conf.MixingRatio, conf.Window); !errors.Is(err, ErrNumericOverflow) {
		t.Errorf("updateCmap with an infinite-weight sample returned %v, want ErrNumericOverflow", err)
	}
}

func TestUpdateCmapProducesSortedEqualMassDividers(t *testing.T) {
	conf := scenarioConf()
	s := mustEmpty(t, conf)

	ps := []primSample{
		{value: 2, weight: 1},
		{value: 4, weight: 1},
		{value: 6, weight: 1},
		{value: 8, weight: 1},
	}
	c, err := updateCmap(s, ps, conf.CmapSize, conf.MixingRatio, conf.Window)
	if err != nil {
		t.Fatalf("updateCmap returned error: %v", err)
	}

	ds := c.Dividers()
	if len(ds) != conf.CmapSize-1 {
		t.Fatalf("len(Dividers()) = %d, want %d", len(ds), conf.CmapSize-1)
	}
	for i := 1; i < len(ds); i++ {
		if ds[i] <= ds[i-1] {
			t.Errorf("dividers not strictly increasing: %v", ds)
		}
	}
}
