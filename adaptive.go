package flip

import (
	"math"

	"github.com/hungnguyengoc/flip/internal/plot"
)

// queueCorrection normalizes queue-based count/sum contributions to the
// same decay scale the effective (non-reference) Structures use, §4.7. It
// is 1 until the sketch has saturated to conf.CmapNo Structures, per the
// spec's explicit hardcoded boundary for the half-filled regime (§9 open
// question: this is the source's own documented choice, not a gap).
func (s Sketch[A]) queueCorrection() float64 {
	if len(s.structures) < s.conf.CmapNo {
		return 1
	}

	num := sumWeights(s.decayWeights(effNo(s.conf.CmapNo)))
	denom := sumWeights(s.decayWeights(s.conf.CmapNo))
	if denom == 0 {
		return 1
	}
	return num / denom
}

// sumForQueue is the total raw weight currently buffered in the queue.
func (s Sketch[A]) sumForQueue() float64 {
	total := 0.0
	for _, e := range s.queue.entries {
		total += e.weight
	}
	return total
}

// countForQueue is a linear scan of the queue summing weights whose
// measured value lies in [pFrom, pTo], §4.7.
func (s Sketch[A]) countForQueue(pFrom, pTo float64) float64 {
	total := 0.0
	for _, e := range s.queue.entries {
		if e.value >= pFrom && e.value <= pTo {
			total += e.weight
		}
	}
	return total
}

// flatDensity is the fallback density pdfForQueue reports when the queue
// is empty: a uniform density over the sketch's configured seed range.
func (s Sketch[A]) flatDensity() float64 {
	length := s.conf.CmapEnd - s.conf.CmapStart
	if length <= 0 {
		return 0
	}
	return 1 / length
}

// pdfForQueue is the Adaptive layer's density estimate at a, §4.7: locate
// a's bin in the newest Cmap, build a three-range CountPlot from the
// queue's occupancy of that bin and its two neighbors, and normalize.
func (s Sketch[A]) pdfForQueue(a float64) float64 {
	newest := s.structures[0].cmap
	adim := newest.Apply(a)

	sumQ := s.sumForQueue()
	if sumQ == 0 {
		return s.flatDensity()
	}

	records := make([]plot.Record, 0, 3)
	for bin := adim - 1; bin <= adim+1; bin++ {
		if bin < 0 || bin >= newest.Size() {
			continue
		}
		r := newest.Range(bin)
		c := 0.0
		for _, e := range s.queue.entries {
			if r.Contains(e.value) {
				c += e.weight
			}
		}
		records = append(records, plot.Record{Range: r, Value: c})
	}

	cp := plot.DisjointCount(records)
	localCount := cp.Interpolation(a)

	adimRange := newest.Range(adim)
	if adimRange.IsPoint() {
		if localCount != 0 {
			return math.Inf(1)
		}
		return 0
	}
	if localCount == 0 {
		return 0
	}
	return localCount / (sumQ * adimRange.Length())
}

// adaptiveUpdate is the Adaptive layer's Update path, §4.7: the batch is
// prepended to the queue; any entries the append evicts at the tail are
// forwarded into narrowUpdateForStr, exactly like a direct Base update.
// The RearrangePeriod supplement (SPEC_FULL.md) then fires Rearrange
// unconditionally once enough updates have accumulated since the last one.
func (s Sketch[A]) adaptiveUpdate(ps []primSample) Sketch[A] {
	incoming := make([]queueEntry, len(ps))
	for i, p := range ps {
		incoming[i] = queueEntry{value: p.value, weight: p.weight}
	}

	merged := append(incoming, s.queue.entries...)

	var evicted []queueEntry
	if len(merged) > s.conf.QueueSize {
		evicted = merged[s.conf.QueueSize:]
		merged = merged[:s.conf.QueueSize]
	}

	next := s.clone(s.structures)
	next.queue.entries = merged
	next.queue.sinceRearrange = s.queue.sinceRearrange + 1

	if len(evicted) > 0 {
		s.conf.logger().Debug("queue evicted, forwarding to narrow update", "count", len(evicted))
		evictedPs := make([]primSample, len(evicted))
		for i, e := range evicted {
			evictedPs[i] = primSample{value: e.value, weight: e.weight}
		}
		next = next.narrowUpdateForStr(evictedPs)
	}

	if next.conf.RearrangePeriod > 0 && next.queue.sinceRearrange >= next.conf.RearrangePeriod {
		next = next.Rearrange()
	}

	return next
}
