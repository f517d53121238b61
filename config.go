package flip

import (
	"fmt"
	"log/slog"
)

// Kernel selects which §4.9 smoothing kernel deepUpdate uses to project a
// batch's mass onto the freshly rearranged partition (§4.6 step 4). Both
// kernels are fully implemented and tested (internal/plot/kernel.go); this
// only picks the default production path. updateCmap's own mixing step
// (§4.8) always uses the square kernel, per spec, regardless of this
// setting.
type Kernel int

const (
	// EqualSpaceKernel smooths via consecutive-pair trapezoidal density.
	EqualSpaceKernel Kernel = iota
	// SquareKernel smooths via uniform boxes of width Conf.Window.
	SquareKernel
)

// Conf is the sketch's frozen configuration (spec's SketchConf). Following
// the teacher's main.go, this is a plain struct with validated fields, not
// a builder: the caller populates it directly and passes it to Empty.
type Conf struct {
	// CmapSize is the number of bins per Structure. Must be >= 2.
	CmapSize int
	// CmapNo is the number of Structures retained. Must be >= 1; when >= 2
	// the oldest Structure is a frozen reference generation.
	CmapNo int
	// CmapStart, CmapEnd seed the initial Cmap with equal-spaced dividers.
	CmapStart, CmapEnd float64
	// CounterSize, CounterNo are the HCounter's width and depth.
	CounterSize, CounterNo uint32
	// QueueSize is the Adaptive layer's FIFO capacity; 0 disables it.
	QueueSize int
	// DecayFactor is lambda in exp(-lambda*i); 0 disables decay.
	DecayFactor float64
	// MixingRatio is mu in the CDF-inversion updater's density mix.
	MixingRatio float64
	// Window is the square-kernel width used by the CDF-inversion updater
	// (and, if Kernel == SquareKernel, by deepUpdate's batch projection).
	Window float64
	// RearrangePeriod, if > 0, makes Update on an Adaptive sketch trigger
	// Rearrange every RearrangePeriod calls regardless of queue occupancy. 0
	// (the default) means rearrangement only happens when the caller calls
	// Rearrange explicitly; a queue overflow never rearranges, it only
	// forwards the evicted entries to the narrow update path.
	RearrangePeriod int
	// Kernel picks the smoothing kernel for deepUpdate's batch projection.
	Kernel Kernel
	// Logger receives Debug/Warn records for update decisions. A nil Logger
	// falls back to slog.Default() the way the teacher's application struct
	// always has a non-nil *slog.Logger by construction.
	Logger *slog.Logger
}

// DefaultConf returns sensible defaults: 32 bins, 3 generations, a counter
// table of width 256/depth 4, adaptive layer disabled (QueueSize 0), decay
// factor 0.1, mixing ratio 1 (equal weight to history and new batch), and a
// window of 1% of the seed range.
func DefaultConf(start, end float64) Conf {
	window := (end - start) / 100
	if window <= 0 {
		window = 1
	}
	return Conf{
		CmapSize:    32,
		CmapNo:      3,
		CmapStart:   start,
		CmapEnd:     end,
		CounterSize: 256,
		CounterNo:   4,
		QueueSize:   0,
		DecayFactor: 0.1,
		MixingRatio: 1.0,
		Window:      window,
		Kernel:      EqualSpaceKernel,
	}
}

// Validate runs the §7 InvalidConfig checks.
func (c Conf) Validate() error {
	if c.CmapSize < 2 {
		return fmt.Errorf("%w: cmapSize must be >= 2, got %d", ErrInvalidConfig, c.CmapSize)
	}
	if c.CmapNo < 1 {
		return fmt.Errorf("%w: cmapNo must be >= 1, got %d", ErrInvalidConfig, c.CmapNo)
	}
	if c.CmapStart > c.CmapEnd {
		return fmt.Errorf("%w: cmapStart must be <= cmapEnd", ErrInvalidConfig)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be > 0, got %v", ErrInvalidConfig, c.Window)
	}
	if c.DecayFactor < 0 {
		return fmt.Errorf("%w: decayFactor must be >= 0, got %v", ErrInvalidConfig, c.DecayFactor)
	}
	if c.MixingRatio < 0 {
		return fmt.Errorf("%w: mixingRatio must be >= 0, got %v", ErrInvalidConfig, c.MixingRatio)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("%w: queueSize must be >= 0, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.CounterSize == 0 || c.CounterNo == 0 {
		return fmt.Errorf("%w: counterSize and counterNo must be > 0", ErrInvalidConfig)
	}
	return nil
}

// logger returns c.Logger, or the process default if none was set.
func (c Conf) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
