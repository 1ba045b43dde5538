package blink

import (
	"time"

	"github.com/okulo/go-okulo/pkg/face"
)

// EyeState is the binary open/closed classification of both eyes.
// True means open.
type EyeState struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Result reports blink transitions for one observed sample.
type Result struct {
	LeftBlink  bool `json:"left_blink"`
	RightBlink bool `json:"right_blink"`
	AnyBlink   bool `json:"any_blink"`
}

// Engine ties eye-state tracking, blink detection, and the blink
// history together for one monitoring session.
//
// An Engine is single-goroutine by contract: there is no internal
// locking, and callers must not invoke Observe concurrently. Wrap it
// in a mutex (as pkg/monitor does) if it is shared.
type Engine struct {
	thresholds Thresholds
	state      EyeState
	history    *History
}

// New creates an engine with both eyes classified open and an empty
// blink history.
func New(t Thresholds) *Engine {
	return &Engine{
		thresholds: t,
		state:      EyeState{Left: true, Right: true},
		history:    NewHistory(t.Window, t.AvgBlinkDuration),
	}
}

// classify converts an instantaneous openness probability into a binary
// open/closed decision.
func classify(openProb, threshold float64) bool {
	return openProb > threshold
}

// fallingEdge reports an open-to-closed transition between two
// consecutive classifications.
func fallingEdge(wasOpen, isOpen bool) bool {
	return wasOpen && !isOpen
}

// Observe processes one sample of per-eye openness probabilities.
// A blink fires only on the open-to-closed edge; consecutive closed
// samples do not re-trigger. State is updated unconditionally, so a
// recovery above the threshold re-arms detection. On a blink the event
// is appended to history and stale entries are pruned; non-blink
// samples never touch the history.
func (e *Engine) Observe(leftOpenProb, rightOpenProb float64, now time.Time) Result {
	next := EyeState{
		Left:  classify(leftOpenProb, e.thresholds.EyeClosure),
		Right: classify(rightOpenProb, e.thresholds.EyeClosure),
	}

	res := Result{
		LeftBlink:  fallingEdge(e.state.Left, next.Left),
		RightBlink: fallingEdge(e.state.Right, next.Right),
	}
	res.AnyBlink = res.LeftBlink || res.RightBlink

	e.state = next

	if res.AnyBlink {
		e.history.Append(BlinkEvent{
			Timestamp:    now,
			LeftEyeOpen:  next.Left,
			RightEyeOpen: next.Right,
		})
		e.history.Prune(now)
	}

	return res
}

// ObserveGeometry is a convenience wrapper feeding an extracted
// geometry's openness probabilities into Observe.
func (e *Engine) ObserveGeometry(g FaceGeometry, now time.Time) Result {
	return e.Observe(g.LeftEyeOpenProbability, g.RightEyeOpenProbability, now)
}

// ExtractGeometry processes a batch of raw detections with this
// engine's thresholds. Malformed detections are skipped.
func (e *Engine) ExtractGeometry(dets []face.RawDetection) []FaceGeometry {
	return ExtractAll(dets, e.thresholds)
}

// State returns the current per-eye classification.
func (e *Engine) State() EyeState {
	return e.state
}

// BlinkRate returns the number of blinks recorded in the last minute.
func (e *Engine) BlinkRate(now time.Time) int {
	return e.history.BlinkRate(now)
}

// TotalBlinks returns the number of retained blink events.
func (e *Engine) TotalBlinks() int {
	return e.history.TotalBlinks()
}

// Stats summarizes the retained blink history as of now.
func (e *Engine) Stats(now time.Time) Stats {
	return e.history.Stats(now)
}

// Prune drops blink events older than the retention window.
// Observe already prunes on every recorded blink; this is for callers
// that want bounded history during long blink-free stretches.
func (e *Engine) Prune(now time.Time) {
	e.history.Prune(now)
}

// Events returns a copy of the retained blink events.
func (e *Engine) Events() []BlinkEvent {
	return e.history.Events()
}

// Thresholds returns the engine's configuration.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Reset clears the blink history and restores both eyes to open
// without ending the session.
func (e *Engine) Reset() {
	e.history.Reset()
	e.state = EyeState{Left: true, Right: true}
}
