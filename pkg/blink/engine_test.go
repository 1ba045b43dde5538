package blink

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestObserve_EdgeTriggered(t *testing.T) {
	e := New(DefaultThresholds()) // EyeClosure 0.4

	steps := []struct {
		name        string
		left, right float64
		expect      Result
	}{
		{
			name: "both open, no blink",
			left: 0.5, right: 0.5,
			expect: Result{},
		},
		{
			name: "left closes, left blink fires",
			left: 0.3, right: 0.5,
			expect: Result{LeftBlink: true, AnyBlink: true},
		},
		{
			name: "left stays closed, no re-trigger",
			left: 0.2, right: 0.5,
			expect: Result{},
		},
	}

	for i, s := range steps {
		got := e.Observe(s.left, s.right, at(i*100))
		if got != s.expect {
			t.Errorf("%s: got %+v, want %+v", s.name, got, s.expect)
		}
	}
}

func TestObserve_RecoveryRearms(t *testing.T) {
	e := New(DefaultThresholds())

	e.Observe(0.3, 0.5, at(0))   // first blink
	e.Observe(0.6, 0.5, at(100)) // recovery
	e.Observe(0.2, 0.5, at(200)) // second blink

	stats := e.Stats(at(200))
	if stats.TotalBlinks != 2 {
		t.Errorf("TotalBlinks: got %d, want 2", stats.TotalBlinks)
	}
	if stats.LeftEyeBlinks != 2 {
		t.Errorf("LeftEyeBlinks: got %d, want 2", stats.LeftEyeBlinks)
	}
	if stats.RightEyeBlinks != 0 {
		t.Errorf("RightEyeBlinks: got %d, want 0", stats.RightEyeBlinks)
	}
}

func TestObserve_BothEyes(t *testing.T) {
	e := New(DefaultThresholds())

	got := e.Observe(0.1, 0.1, at(0))
	want := Result{LeftBlink: true, RightBlink: true, AnyBlink: true}
	if got != want {
		t.Errorf("simultaneous blink: got %+v, want %+v", got, want)
	}

	// One event recorded for the simultaneous closure, both eyes closed
	ev := e.Events()
	if len(ev) != 1 {
		t.Fatalf("Events: got %d, want 1", len(ev))
	}
	if ev[0].LeftEyeOpen || ev[0].RightEyeOpen {
		t.Errorf("event should record both eyes closed: %+v", ev[0])
	}
}

func TestObserve_ThresholdBoundary(t *testing.T) {
	// Exactly at the threshold counts as closed: open requires > threshold.
	e := New(DefaultThresholds())

	got := e.Observe(0.4, 0.5, at(0))
	if !got.LeftBlink {
		t.Error("probability equal to threshold should classify closed")
	}
}

func TestObserve_StateUpdatedUnconditionally(t *testing.T) {
	e := New(DefaultThresholds())

	if s := e.State(); !s.Left || !s.Right {
		t.Fatalf("session should start open/open, got %+v", s)
	}

	e.Observe(0.2, 0.5, at(0))
	if s := e.State(); s.Left || !s.Right {
		t.Errorf("state after left closure: got %+v, want left closed", s)
	}

	e.Observe(0.2, 0.5, at(100)) // no blink fired, state still tracks
	if s := e.State(); s.Left {
		t.Errorf("state should remain closed without a blink event: %+v", s)
	}
}

func TestReset(t *testing.T) {
	e := New(DefaultThresholds())

	e.Observe(0.2, 0.2, at(0))
	if e.TotalBlinks() != 1 {
		t.Fatalf("TotalBlinks before reset: got %d, want 1", e.TotalBlinks())
	}

	e.Reset()

	if e.TotalBlinks() != 0 {
		t.Errorf("TotalBlinks after reset: got %d, want 0", e.TotalBlinks())
	}
	if s := e.State(); !s.Left || !s.Right {
		t.Errorf("state after reset: got %+v, want open/open", s)
	}

	// Eyes are open again, so a below-threshold sample immediately blinks
	got := e.Observe(0.1, 0.5, at(100))
	if !got.LeftBlink {
		t.Error("first closure after reset should fire a blink")
	}
}

func TestStats_Idempotent(t *testing.T) {
	e := New(DefaultThresholds())

	e.Observe(0.2, 0.5, at(0))
	e.Observe(0.6, 0.6, at(100))
	e.Observe(0.2, 0.1, at(200))

	a := e.Stats(at(300))
	b := e.Stats(at(300))
	if a != b {
		t.Errorf("Stats not idempotent: %+v vs %+v", a, b)
	}
}

func TestObserve_CustomThreshold(t *testing.T) {
	cfg := DefaultThresholds()
	cfg.EyeClosure = 0.6

	e := New(cfg)

	got := e.Observe(0.5, 0.7, at(0))
	if !got.LeftBlink || got.RightBlink {
		t.Errorf("with threshold 0.6: got %+v, want left blink only", got)
	}
}

func TestObserveGeometry(t *testing.T) {
	e := New(DefaultThresholds())

	open := FaceGeometry{LeftEyeOpenProbability: 0.9, RightEyeOpenProbability: 0.9}
	closed := FaceGeometry{LeftEyeOpenProbability: 0.1, RightEyeOpenProbability: 0.1}

	e.ObserveGeometry(open, at(0))
	got := e.ObserveGeometry(closed, at(100))
	if !got.AnyBlink {
		t.Errorf("ObserveGeometry: expected blink, got %+v", got)
	}
}
