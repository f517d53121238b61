package flip

import "math"

// prng is the sketch's own pseudo-random generator handle (§5: "each sketch
// carries its own ... handle for HCounter seeding ... never from global
// state"). It is the same xorshift64 step and SplitMix64 finisher the
// teacher's internal/pds/topk package uses for its decay-check RNG
// (fastDecayCheck) and hash decorrelation (mix) — reused here for the same
// purpose: producing a deterministic, sketch-local stream of seeds for
// freshly rearranged Structures' HCounters.
type prng struct {
	state uint64
}

// newPRNG seeds a prng deterministically from conf, never from a clock or
// other global source, so two sketches built from the same Conf produce
// the same seed stream.
func newPRNG(c Conf) prng {
	seed := mixSeed(uint64(c.CmapSize))
	seed ^= mixSeed(uint64(c.CmapNo) << 32)
	seed ^= mixSeed(floatBits(c.CmapStart))
	seed ^= mixSeed(floatBits(c.CmapEnd))
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15 // avoid the xorshift fixed point at 0
	}
	return prng{state: seed}
}

// next advances the generator one xorshift64 step and returns the new
// state, matching topk.go's fastDecayCheck inner loop.
func (p *prng) next() uint64 {
	x := p.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	p.state = x
	return x
}

// floatBits reinterprets a float64 as its raw bit pattern for hashing.
func floatBits(x float64) uint64 {
	return math.Float64bits(x)
}

// mixSeed applies SplitMix64, the same finisher topk.go's mix function and
// hcounter's double-hashing use to decorrelate bits.
func mixSeed(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
