// Package monitor runs the frame loop that drives the blink engine:
// capture, detect, extract, observe. It owns the one async boundary in
// the system (detector initialization) and the engine's locking.
package monitor

import (
	"time"

	"github.com/okulo/go-okulo/pkg/blink"
)

// Config holds all tunable parameters for the monitoring loop.
type Config struct {
	// Thresholds configures the blink engine.
	Thresholds blink.Thresholds

	// SampleInterval is how often a frame is captured and observed.
	SampleInterval time.Duration

	// StatsInterval is how often a snapshot is pushed to listeners even
	// when no blink fired.
	StatsInterval time.Duration

	// OpennessSmoothing is the exponential smoothing weight of the
	// newest openness sample (0-1, higher = trust new reading more).
	// Values well below 1 can smooth a one-frame blink away entirely.
	OpennessSmoothing float64

	// MissThreshold is how many consecutive failed detections flip the
	// face-visible flag off.
	MissThreshold int
}

// DefaultConfig returns the recommended monitoring configuration.
func DefaultConfig() Config {
	return Config{
		Thresholds:        blink.DefaultThresholds(),
		SampleInterval:    100 * time.Millisecond, // 10 samples per second
		StatsInterval:     time.Second,
		OpennessSmoothing: 0.8,
		MissThreshold:     5,
	}
}

// RelaxedConfig samples less often for constrained hardware.
func RelaxedConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleInterval = 250 * time.Millisecond
	cfg.StatsInterval = 2 * time.Second
	return cfg
}

// ResponsiveConfig samples fast and trusts raw readings, for short
// blinks at the cost of more jitter.
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleInterval = 50 * time.Millisecond
	cfg.OpennessSmoothing = 1.0 // No smoothing
	cfg.MissThreshold = 3
	return cfg
}
