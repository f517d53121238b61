// Package flip implements the Flip/Adaptive Sketch: a streaming
// probability-density sketch that estimates the distribution of a
// univariate numeric stream under concept drift, answering range-count,
// point-density, and total-sum queries in sublinear memory.
//
// A Sketch holds an ordered list of Structures (newest first), each a
// (Cmap, HCounter) generation, combined with exponential generation decay.
// When Conf.QueueSize > 0 the sketch additionally buffers raw samples in a
// bounded FIFO and folds their contribution into every query (the
// "Adaptive" layer); when it is 0 the sketch behaves as the plain,
// non-adaptive core. Both behaviors live on the same Sketch[A] type — which
// one is active is a config choice, not a type choice, the tagged-variant
// re-architecture the design notes call for: queue == nil is the Base arm,
// queue != nil is the Adaptive arm, and every method checks it exactly
// once rather than dispatching through an interface.
package flip

import "github.com/hungnguyengoc/flip/internal/hcounter"

// Sketch is a streaming density sketch over elements of type A. The zero
// value is not usable; construct with Empty.
type Sketch[A any] struct {
	structures []structure // newest first, 0 < len <= conf.CmapNo
	conf       Conf
	measure    Measure[A]
	decay      *decayCache
	rng        prng
	queue      *queueState // nil: Base sketch. non-nil: Adaptive sketch.
}

// queueState is the Adaptive layer's bounded FIFO plus periodic-rearrange
// bookkeeping (the RearrangePeriod supplement, SPEC_FULL.md).
type queueState struct {
	entries       []queueEntry // newest first, len <= conf.QueueSize
	sinceRearrange int
}

type queueEntry struct {
	value  float64
	weight float64
}

// Empty builds a fresh Sketch from conf and measure. Conf is validated;
// an invalid Conf returns ErrInvalidConfig (wrapped with detail). The
// initial Structure carries an equally spaced Cmap across
// [conf.CmapStart, conf.CmapEnd) and an empty HCounter. The Adaptive layer
// activates automatically when conf.QueueSize > 0.
func Empty[A any](conf Conf, measure Measure[A]) (Sketch[A], error) {
	if err := conf.Validate(); err != nil {
		return Sketch[A]{}, err
	}

	initial := structure{
		cmap:    equalSpacedCmap(conf.CmapSize, conf.CmapStart, conf.CmapEnd),
		counter: hcounter.NewSeeded(conf.CounterSize, conf.CounterNo, 0),
	}

	s := Sketch[A]{
		structures: []structure{initial},
		conf:       conf,
		measure:    measure,
		decay:      newDecayCache(),
		rng:        newPRNG(conf),
	}

	if conf.QueueSize > 0 {
		s.queue = &queueState{entries: make([]queueEntry, 0, conf.QueueSize)}
	}

	return s, nil
}

// IsAdaptive reports whether the Adaptive (queue-buffered) layer is active.
func (s Sketch[A]) IsAdaptive() bool {
	return s.queue != nil
}

// NumStructures returns the number of Structures currently retained,
// 0 < n <= conf.CmapNo.
func (s Sketch[A]) NumStructures() int {
	return len(s.structures)
}

// Conf returns the sketch's frozen configuration.
func (s Sketch[A]) Conf() Conf {
	return s.conf
}

// clone returns a shallow copy of s with structures replaced by next. The
// decay cache is shared by reference (copy-on-write suffix sharing, §5);
// the rng is a plain value and is copied with its current state; the queue,
// if present, is deep-copied since it is the part that mutates
// independently of the Structure list.
func (s Sketch[A]) clone(next []structure) Sketch[A] {
	out := s
	out.structures = next
	if s.queue != nil {
		q := &queueState{
			entries:        append([]queueEntry(nil), s.queue.entries...),
			sinceRearrange: s.queue.sinceRearrange,
		}
		out.queue = q
	}
	return out
}
