package flip

import (
	"math"

	"github.com/hungnguyengoc/flip/internal/cmap"
	"github.com/hungnguyengoc/flip/internal/hcounter"
	"github.com/hungnguyengoc/flip/internal/plot"
)

// Sample is one (value, weight) update the caller submits to Update.
type Sample[A any] struct {
	Value  A
	Weight float64
}

type primSample struct {
	value  float64
	weight float64
}

func toPrimSamples[A any](samples []Sample[A], m Measure[A]) []primSample {
	out := make([]primSample, len(samples))
	for i, s := range samples {
		out[i] = primSample{value: m.To(s.Value), weight: s.Weight}
	}
	return out
}

// Update applies a batch of (value, weight) samples. On a Base sketch this
// is exactly narrowUpdateForStr (§4.6): the newest effNo Structures absorb
// the weight, the frozen reference suffix is untouched. On an Adaptive
// sketch the batch is appended to the FIFO queue instead (§4.7); entries
// evicted by that append are forwarded into narrowUpdateForStr, same as the
// base path.
func (s Sketch[A]) Update(samples []Sample[A]) Sketch[A] {
	ps := toPrimSamples(samples, s.measure)

	if s.queue == nil {
		return s.narrowUpdateForStr(ps)
	}
	return s.adaptiveUpdate(ps)
}

// applyNarrowUpdate writes ps into the effective (newest effN) prefix of
// structs, leaving the reference suffix untouched. It is shared by the base
// narrow-update path and deepUpdate's post-rearrangement mass projection
// (§4.6 step 4), since both are "bin ps against each structure's own cmap
// and accumulate".
func applyNarrowUpdate(structs []structure, effN int, ps []primSample) []structure {
	if len(ps) == 0 {
		return structs
	}
	if effN > len(structs) {
		effN = len(structs)
	}

	next := make([]structure, len(structs))
	for i, st := range structs {
		if i >= effN {
			next[i] = st
			continue
		}
		writes := make([]hcounter.Update, len(ps))
		for j, p := range ps {
			writes[j] = hcounter.Update{Bin: st.cmap.Apply(p.value), Weight: p.weight}
		}
		next[i] = st.narrowUpdate(writes)
	}
	return next
}

func (s Sketch[A]) narrowUpdateForStr(ps []primSample) Sketch[A] {
	next := applyNarrowUpdate(s.structures, effNo(s.conf.CmapNo), ps)
	return s.clone(next)
}

// Rearrange runs deepUpdate with the current queue's contents as the batch
// (Adaptive sketches) or with no batch at all (Base sketches, where it
// simply re-derives the Cmap from the current density estimate with no
// incoming batch to mix in). The queue, if any, is cleared afterward.
func (s Sketch[A]) Rearrange() Sketch[A] {
	var ps []primSample
	if s.queue != nil {
		ps = make([]primSample, len(s.queue.entries))
		for i, e := range s.queue.entries {
			ps[i] = primSample{value: e.value, weight: e.weight}
		}
	}

	out := s.deepUpdate(ps)

	if out.queue != nil {
		out.queue.entries = out.queue.entries[:0]
		out.queue.sinceRearrange = 0
	}
	return out
}

// deepUpdate is the rearrangement algorithm, §4.6.
func (s Sketch[A]) deepUpdate(ps []primSample) Sketch[A] {
	logger := s.conf.logger()

	utdCmap, err := updateCmap(s, ps, s.conf.CmapSize, s.conf.MixingRatio, s.conf.Window)
	if err != nil {
		logger.Warn("deep update skipped, reusing prior cmap", "reason", err)
		utdCmap = s.structures[0].cmap
	}

	seed := s.nextCounterSeed(ps)
	fresh := structure{
		cmap:    utdCmap,
		counter: hcounter.NewSeeded(s.conf.CounterSize, s.conf.CounterNo, seed),
	}

	next := append([]structure{fresh}, s.structures...)
	if len(next) > s.conf.CmapNo {
		evicted := next[s.conf.CmapNo:]
		logger.Debug("deep update evicted generation", "count", len(evicted))
		next = next[:s.conf.CmapNo]
	}

	out := s.clone(next)

	if len(ps) == 0 {
		return out
	}

	d := smoothBatch(ps, out.conf)
	synthetic := projectOntoBins(utdCmap, d, ps)

	finalStructs := applyNarrowUpdate(out.structures, effNo(out.conf.CmapNo), synthetic)
	return out.clone(finalStructs)
}

// nextCounterSeed derives the deterministic seed for a freshly rearranged
// Structure's HCounter from the sketch's current total sum, the batch's
// first value (ps.head, per §4.6 step 2; the exact hash avoids the source
// quirk in §9 where (sum+head)*1000 cast to int silently overflows for
// large sums), and the sketch's own prng stream (§5: sketch-local, never
// global, but still fully deterministic given the sketch's update
// history).
func (s *Sketch[A]) nextCounterSeed(ps []primSample) uint64 {
	head := 0.0
	if len(ps) > 0 {
		head = ps[0].value
	}
	h := floatBits(s.sumForStr()) ^ floatBits(head)
	h = mixSeed(h ^ s.rng.next())
	return h
}

// smoothBatch converts a raw batch into a density using the configured
// kernel (§4.6 step 4 / §4.9).
func smoothBatch(ps []primSample, c Conf) plot.DensityPlot {
	samples := make([]plot.Sample, len(ps))
	for i, p := range ps {
		samples[i] = plot.Sample{Value: p.value, Weight: p.weight}
	}
	switch c.Kernel {
	case SquareKernel:
		return plot.SquareKernel(samples, c.Window)
	default:
		return plot.EqualSpaceSmoothingPs(samples, true)
	}
}

// projectOntoBins computes, for every bin of utdCmap, a synthetic sample at
// the bin's midpoint carrying d's share of the batch's total weight — the
// "project the batch's mass onto the new grid" step of §4.6 step 4. The two
// outer sentinel bins take part too: their midpoint is -Inf/+Inf, which
// Apply maps back to the same outer bin, so the synthetic weights add up to
// the batch's total weight. When d
// collapses to an empty density (too few distinct values to smooth: a single
// sample, or several samples all equal), the §7 DegenerateInput fallback
// applies here too: the batch is placed unprojected, each sample binned
// directly against c by the caller's subsequent applyNarrowUpdate, rather
// than silently dropping its weight.
func projectOntoBins(c cmap.Cmap, d plot.DensityPlot, ps []primSample) []primSample {
	totalWeight := 0.0
	for _, p := range ps {
		totalWeight += p.weight
	}
	if totalWeight == 0 {
		return nil
	}

	cdf := d.Cumulative()
	total := cdf.Total()
	if total == 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return ps
	}

	bins := c.Bins()
	out := make([]primSample, 0, len(bins))
	for _, r := range bins {
		massFraction := (cdf.Interpolation(r.End) - cdf.Interpolation(r.Start)) / total
		out = append(out, primSample{value: r.Middle(), weight: massFraction * totalWeight})
	}
	return out
}
