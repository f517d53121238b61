package flip

import "testing"

func TestUpdateIsImmutableAndAdditive(t *testing.T) {
	s := mustEmpty(t, scenarioConf())
	s1 := s.Update([]Sample[float64]{{Value: 1, Weight: 1}})
	s2 := s1.Update([]Sample[float64]{{Value: 1, Weight: 1}})

	if s1.Sum() != 1 {
		t.Errorf("s1.Sum() = %v, want 1 (s1 must be unaffected by the later s2 update)", s1.Sum())
	}
	if s2.Sum() != 2 {
		t.Errorf("s2.Sum() = %v, want 2", s2.Sum())
	}
}

func TestNarrowUpdateLeavesReferenceStructureUntouched(t *testing.T) {
	conf := scenarioConf()
	conf.CmapNo = 2
	s := mustEmpty(t, conf)

	// Force a second Structure to exist via an empty-batch Rearrange, so
	// effNo(2)=1 actually excludes a reference generation.
	s = s.Rearrange()
	if s.NumStructures() != 2 {
		t.Fatalf("Rearrange from a fresh sketch did not grow to 2 Structures, got %d", s.NumStructures())
	}

	before := s.structures[1].counter.Sum()
	s = s.Update([]Sample[float64]{{Value: 5, Weight: 1}})
	after := s.structures[1].counter.Sum()

	if before != after {
		t.Errorf("reference Structure's counter sum changed: %v -> %v", before, after)
	}
	if s.structures[0].counter.Sum() != 1 {
		t.Errorf("effective Structure did not absorb the update: sum = %v, want 1", s.structures[0].counter.Sum())
	}
}

func TestRearrangeNeverExceedsCmapNo(t *testing.T) {
	conf := scenarioConf()
	conf.CmapNo = 2
	s := mustEmpty(t, conf)

	for i := 0; i < 5; i++ {
		s = s.Update([]Sample[float64]{{Value: float64(i), Weight: 1}})
		s = s.Rearrange()
		if n := s.NumStructures(); n > conf.CmapNo {
			t.Fatalf("after %d rearrangements, NumStructures() = %d, exceeds CmapNo %d", i+1, n, conf.CmapNo)
		}
	}
}

// A Base sketch's Rearrange always passes an empty batch to deepUpdate (only
// the Adaptive layer has a queue to forward, §4.7's rearrange), so the
// freshly prepended generation starts empty. Sum() is a decay-weighted
// average across generations, not a running total, so introducing an empty
// newest generation can only hold Sum() steady or pull it down — it can
// never push it up. This is the Base-layer half of invariant 7; the
// Adaptive-layer half (mass actually carried forward through the queue) is
// covered in adaptive_test.go.
func TestRearrangeWithNoPendingBatchNeverIncreasesSum(t *testing.T) {
	s := mustEmpty(t, scenarioConf())
	s = s.Update([]Sample[float64]{{Value: 5, Weight: 3}})

	before := s.Sum()
	s = s.Rearrange()
	after := s.Sum()

	if after > before+1e-9 {
		t.Errorf("Rearrange with no pending batch increased Sum(): %v -> %v", before, after)
	}
}

// A batch of one sample (or several samples all sharing one value) smooths
// to an empty density: EqualSpaceSmoothingPs has no consecutive pair to draw
// a record between. projectOntoBins must not read that as "no mass to
// redistribute" and drop the batch; it falls back to the batch itself,
// unprojected, per §7's DegenerateInput handling.
func TestProjectOntoBinsFallsBackOnSingleSample(t *testing.T) {
	conf := scenarioConf()
	c := equalSpacedCmap(conf.CmapSize, conf.CmapStart, conf.CmapEnd)
	ps := []primSample{{value: 5, weight: 3}}

	out := projectOntoBins(c, smoothBatch(ps, conf), ps)
	if len(out) != 1 || out[0].value != 5 || out[0].weight != 3 {
		t.Errorf("projectOntoBins(single sample) = %+v, want the batch unchanged", out)
	}
}

func TestProjectOntoBinsFallsBackWhenAllSamplesEqual(t *testing.T) {
	conf := scenarioConf()
	c := equalSpacedCmap(conf.CmapSize, conf.CmapStart, conf.CmapEnd)
	ps := []primSample{{value: 6, weight: 1}, {value: 6, weight: 1}}

	out := projectOntoBins(c, smoothBatch(ps, conf), ps)
	total := 0.0
	for _, p := range out {
		total += p.weight
	}
	if total != 2 {
		t.Errorf("projectOntoBins(all-equal batch) dropped mass: total weight = %v, want 2", total)
	}
}

// Reproduces the scenario TestRearrangePeriodTriggersAutomatically already
// exercises (two same-valued queued updates forcing an automatic Rearrange)
// but checks the mass actually survives it, guarding the projectOntoBins
// fallback above against regressing back to silently dropping it.
func TestAutomaticRearrangeOfDegenerateBatchDoesNotDropMass(t *testing.T) {
	conf := scenarioConf()
	conf.QueueSize = 100
	conf.RearrangePeriod = 2
	s := mustEmpty(t, conf)

	s = s.Update([]Sample[float64]{{Value: 6, Weight: 1}})
	s = s.Update([]Sample[float64]{{Value: 6, Weight: 1}})

	if got := s.Sum(); got < 0.5 {
		t.Errorf("Sum() after an automatic Rearrange of a same-valued batch = %v, want >= 0.5 (mass was dropped)", got)
	}
}

func BenchmarkDeepUpdate(b *testing.B) {
	conf := scenarioConf()
	s, err := Empty(conf, Float64())
	if err != nil {
		b.Fatalf("Empty returned error: %v", err)
	}
	s = s.Update([]Sample[float64]{{Value: 5, Weight: 3}})

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s = s.Rearrange()
	}
}
