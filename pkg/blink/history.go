package blink

import "time"

// RateWindow is the fixed window for BlinkRate. It is independent of
// the configurable retention window: if retention is shorter than a
// minute the rate is capped by what survived the last prune.
const RateWindow = time.Minute

// BlinkEvent is a snapshot of per-eye state recorded at the instant a
// blink was detected. Immutable once created.
type BlinkEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	LeftEyeOpen  bool      `json:"left_eye_open"`
	RightEyeOpen bool      `json:"right_eye_open"`
}

// Stats summarizes the retained blink history.
type Stats struct {
	BlinkRate      int `json:"blink_rate"`       // Blinks in the last minute
	TotalBlinks    int `json:"total_blinks"`     // All retained events
	LeftEyeBlinks  int `json:"left_eye_blinks"`  // Retained events with left eye closed
	RightEyeBlinks int `json:"right_eye_blinks"` // Retained events with right eye closed

	// AverageBlinkDuration is a fixed configured constant, not a value
	// computed from data. Per-event durations are not tracked.
	AverageBlinkDuration time.Duration `json:"average_blink_duration"`
}

// History is an append-only, time-bounded log of blink events.
// Entries are appended in timestamp order and removed only by pruning.
// Not safe for concurrent use; the owner serializes access.
type History struct {
	window      time.Duration
	avgDuration time.Duration
	events      []BlinkEvent
}

// NewHistory creates an empty history retaining events for window.
// A non-positive window falls back to the default one-minute retention.
func NewHistory(window, avgDuration time.Duration) *History {
	if window <= 0 {
		window = RateWindow
	}
	return &History{
		window:      window,
		avgDuration: avgDuration,
	}
}

// Append records a blink event. The caller appends with "now", so the
// log stays ordered by timestamp.
func (h *History) Append(ev BlinkEvent) {
	h.events = append(h.events, ev)
}

// Prune removes every event older than the retention window.
// After Prune, all surviving events satisfy now - timestamp < window.
func (h *History) Prune(now time.Time) {
	// Events are time-ordered, so find the first survivor and cut.
	keep := len(h.events)
	for i, ev := range h.events {
		if now.Sub(ev.Timestamp) < h.window {
			keep = i
			break
		}
	}
	if keep == 0 {
		return
	}
	h.events = append(h.events[:0], h.events[keep:]...)
}

// BlinkRate returns the number of retained events within the last
// minute. Returns 0 on empty history.
func (h *History) BlinkRate(now time.Time) int {
	count := 0
	for _, ev := range h.events {
		if now.Sub(ev.Timestamp) < RateWindow {
			count++
		}
	}
	return count
}

// TotalBlinks returns the number of retained events. This is bounded by
// the last prune, not the full session: long idle periods followed by a
// prune shrink the count. Bounded memory wins over lifetime totals.
func (h *History) TotalBlinks() int {
	return len(h.events)
}

// Stats computes rate and per-eye counts over the retained events.
func (h *History) Stats(now time.Time) Stats {
	s := Stats{
		BlinkRate:            h.BlinkRate(now),
		TotalBlinks:          len(h.events),
		AverageBlinkDuration: h.avgDuration,
	}
	for _, ev := range h.events {
		if !ev.LeftEyeOpen {
			s.LeftEyeBlinks++
		}
		if !ev.RightEyeOpen {
			s.RightEyeBlinks++
		}
	}
	return s
}

// Events returns a copy of the retained events, oldest first.
func (h *History) Events() []BlinkEvent {
	out := make([]BlinkEvent, len(h.events))
	copy(out, h.events)
	return out
}

// Reset clears all retained events.
func (h *History) Reset() {
	h.events = h.events[:0]
}
