// Package blink implements the real-time eye-state and blink-detection
// engine: it derives per-eye openness from facial landmarks, classifies
// open/closed state, detects open-to-closed transitions, and keeps a
// time-bounded history of blink events for rate statistics.
package blink

import "time"

// Thresholds holds all tunable parameters for blink detection.
// A Thresholds value is read-only for the lifetime of an Engine;
// construct a new Engine to change it.
type Thresholds struct {
	// EyeClosure is the openness probability at or below which an eye
	// counts as closed.
	EyeClosure float64

	// ClosedRatio and OpenRatio bound the eye-to-nose / eye-to-ear
	// distance ratio used to normalize openness. At ClosedRatio the
	// openness probability is 0, at OpenRatio it is 1.
	ClosedRatio float64
	OpenRatio   float64

	// Window is how long blink events are retained. Events older than
	// this are dropped on the next prune.
	Window time.Duration

	// AvgBlinkDuration is the fixed duration reported in Stats.
	// Per-event durations are not tracked; this is a configured
	// constant, not a measured average.
	AvgBlinkDuration time.Duration
}

// DefaultThresholds returns the production detection parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EyeClosure:       0.4,
		ClosedRatio:      0.3,
		OpenRatio:        0.5,
		Window:           60 * time.Second,
		AvgBlinkDuration: 150 * time.Millisecond,
	}
}

// SensitiveThresholds counts partial closures as blinks.
// Useful in poor lighting where the landmark geometry flattens.
func SensitiveThresholds() Thresholds {
	t := DefaultThresholds()
	t.EyeClosure = 0.5
	return t
}

// ConservativeThresholds only counts pronounced closures.
func ConservativeThresholds() Thresholds {
	t := DefaultThresholds()
	t.EyeClosure = 0.3
	return t
}
