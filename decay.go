package flip

import (
	"math"
	"sync"
)

// decayCacheLimit bounds the memoization cache to ~100 entries, per §5.
const decayCacheLimit = 100

// decayKey identifies one (lambda, generation index) decay-rate lookup.
type decayKey struct {
	lambda float64
	i      int
}

// decayCache memoizes decayRate(lambda, i) = exp(-lambda*i). It is a field
// of the sketch rather than process-wide state (Design Notes §9, option a):
// its lifetime tracks whichever Sketch value holds it, and every Sketch
// derived from another by narrow/deep update shares the same cache pointer,
// so memoized rates survive across the value-oriented update chain. The
// values are a pure deterministic function of the key, so sharing the
// pointer across sketch versions (including ones logically "concurrent",
// e.g. a caller still holding the pre-update Sketch) is benign per §5.
type decayCache struct {
	mu     sync.Mutex
	order  []decayKey // insertion order, oldest first, for eviction
	values map[decayKey]float64
}

func newDecayCache() *decayCache {
	return &decayCache{values: make(map[decayKey]float64)}
}

// rate returns exp(-lambda*i), memoized. Ties are broken deterministically:
// repeated calls with the same key always return the literal exp() result,
// never a drifted approximation, per invariant 8.
func (c *decayCache) rate(lambda float64, i int) float64 {
	key := decayKey{lambda: lambda, i: i}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.values[key]; ok {
		return v
	}

	v := math.Exp(-lambda * float64(i))

	if len(c.order) >= decayCacheLimit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.values, oldest)
	}
	c.order = append(c.order, key)
	c.values[key] = v

	return v
}
