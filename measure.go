package flip

// Measure carries the pair of functions the spec's §6 "Measure" external
// collaborator defines for element type A: To maps a domain value down to
// the engine's internal Prim (float64) coordinate, From is its inverse. The
// core only ever calls To — From exists for callers that want to map a
// query result's breakpoints back into A, e.g. to report the divider
// positions of a fitted Cmap in the caller's own units.
type Measure[A any] struct {
	To   func(A) float64
	From func(float64) A
}

// Float64 is the identity Measure for a stream whose values are already
// float64, the common case exercised by the package's own tests.
func Float64() Measure[float64] {
	return Measure[float64]{
		To:   func(v float64) float64 { return v },
		From: func(v float64) float64 { return v },
	}
}
