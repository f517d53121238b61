// Package hcounter implements the HCounter abstraction: a fixed-width,
// collision-lossy map from bin index to accumulated weight.
//
// The hashing scheme is lifted directly from the teacher's Count-Min Sketch
// (double hashing with xxhash as the primary hash and a SplitMix64 finisher
// to decorrelate the second), but the counters themselves are float64
// weights rather than uint32 item frequencies, and HCounter is immutable by
// contract: Updates returns a new HCounter, never mutating the receiver.
// There is no Conservative-Update floor here — sum-over-rows range queries
// need a true additive accumulator, so every row absorbs the full weight on
// every update and Query (Get) takes the row minimum, same as a standard
// (non-conservative) Count-Min Sketch.
package hcounter

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// HCounter is an immutable probabilistic counter over bin indices 0..width-1
// hashed into depth rows of an underlying width-wide table. Collisions
// within a row cause overestimation; taking the minimum across rows (the
// standard Count-Min Sketch estimator) bounds that overestimation.
type HCounter struct {
	width, depth uint32
	seed         uint64
	rows         []float64 // depth rows of width counters, row-major
	total        float64
}

// New creates an empty, unsalted HCounter with the given table dimensions.
func New(width, depth uint32) HCounter {
	return NewSeeded(width, depth, 0)
}

// NewSeeded creates an empty HCounter whose hash is salted with seed. Two
// HCounters built with different seeds hash the same bin index to
// independent rows, which is how the sketch package diversifies collision
// patterns across generations (see the deterministic seed derivation in
// update.go's deepUpdate).
func NewSeeded(width, depth uint32, seed uint64) HCounter {
	if width == 0 {
		width = 1
	}
	if depth == 0 {
		depth = 1
	}
	return HCounter{
		width: width,
		depth: depth,
		seed:  seed,
		rows:  make([]float64, uint64(width)*uint64(depth)),
	}
}

// Width returns the table width.
func (c HCounter) Width() uint32 { return c.width }

// Depth returns the table depth.
func (c HCounter) Depth() uint32 { return c.depth }

// Seed returns the hash salt this HCounter was constructed with.
func (c HCounter) Seed() uint64 { return c.seed }

// hashes returns the two decorrelated hash components for a bin index,
// matching the teacher's CMS double-hashing derivation, salted by seed so
// distinct HCounter instances spread collisions differently.
func hashes(bin int, seed uint64) (uint64, uint64) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(bin))
	binary.LittleEndian.PutUint64(buf[8:16], seed)
	h1 := xxhash.Sum64(buf[:])

	h2 := h1
	h2 ^= h2 >> 30
	h2 *= 0xbf58476d1ce4e5b9
	h2 ^= h2 >> 27
	h2 *= 0x94d049bb133111eb
	h2 ^= h2 >> 31

	return h1, h2
}

func (c HCounter) index(row uint32, h1, h2 uint64) uint32 {
	return uint32((h1 + uint64(row)*h2) % uint64(c.width))
}

// Get returns the estimated weight at bin, the minimum across all rows.
// It is always >= the true accumulated weight (never an underestimate).
func (c HCounter) Get(bin int) float64 {
	h1, h2 := hashes(bin, c.seed)
	minVal := math.Inf(1)
	for row := uint32(0); row < c.depth; row++ {
		idx := c.index(row, h1, h2)
		v := c.rows[uint64(row)*uint64(c.width)+uint64(idx)]
		if v < minVal {
			minVal = v
		}
	}
	return minVal
}

// Update is a single (bin, weight) increment for Updates.
type Update struct {
	Bin    int
	Weight float64
}

// Updates returns a new HCounter with every (bin, weight) pair in us applied
// additively across all depth rows. The receiver is left untouched.
func (c HCounter) Updates(us []Update) HCounter {
	rows := make([]float64, len(c.rows))
	copy(rows, c.rows)
	total := c.total

	for _, u := range us {
		if u.Weight == 0 {
			continue
		}
		h1, h2 := hashes(u.Bin, c.seed)
		for row := uint32(0); row < c.depth; row++ {
			idx := c.index(row, h1, h2)
			off := uint64(row)*uint64(c.width) + uint64(idx)
			rows[off] += u.Weight
		}
		total += u.Weight
	}

	return HCounter{width: c.width, depth: c.depth, seed: c.seed, rows: rows, total: total}
}

// Count returns the inclusive range sum Get(lo) + ... + Get(hi).
func (c HCounter) Count(lo, hi int) float64 {
	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += c.Get(i)
	}
	return sum
}

// Sum returns the total weight ever applied via Updates. It is monotone
// non-decreasing and always >= any single Get result (modulo the collision
// noise the estimator already folds into Get).
func (c HCounter) Sum() float64 {
	return c.total
}
