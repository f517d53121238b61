package flip

import "errors"

// Sentinel errors, one per §7 error kind. ErrInvalidConfig is the only one
// that ever reaches a caller: it is returned (wrapped) from Conf.Validate
// and therefore from Empty.
// The other three are recovered locally inside the CDF-inversion updater —
// they are logged (see Conf.Logger) and never returned.
var (
	// ErrInvalidConfig is returned when a Conf fails Validate.
	ErrInvalidConfig = errors.New("flip: invalid config")

	// ErrEmptySketch signals that densityPlot was requested on a sketch with
	// no Structures; the updater treats this as "keep the prior Cmap".
	ErrEmptySketch = errors.New("flip: empty sketch")

	// ErrDegenerateInput signals a deep update batch whose primitive values
	// are all equal, collapsing the smoothed density to a single point.
	ErrDegenerateInput = errors.New("flip: degenerate input")

	// ErrNumericOverflow signals that the mixed density's total mass was
	// non-finite; the updater aborts and keeps the prior Cmap.
	ErrNumericOverflow = errors.New("flip: numeric overflow")
)
