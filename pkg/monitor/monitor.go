package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okulo/go-okulo/internal/log"
	"github.com/okulo/go-okulo/pkg/blink"
	"github.com/okulo/go-okulo/pkg/face"
)

// FrameSource captures JPEG frames for detection.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// DetectorFactory loads a landmark detector. Loading the model is the
// one slow, failable step per session, so it runs inside Init rather
// than at construction.
type DetectorFactory func() (face.Detector, error)

// Snapshot is a point-in-time copy of monitor state for dashboards.
type Snapshot struct {
	SessionID         string          `json:"session_id"`
	Ready             bool            `json:"ready"`
	Running           bool            `json:"running"`
	FaceVisible       bool            `json:"face_visible"`
	ConsecutiveMisses int             `json:"consecutive_misses"`
	EyeState          blink.EyeState  `json:"eye_state"`
	LeftOpenProb      float64         `json:"left_open_probability"`
	RightOpenProb     float64         `json:"right_open_probability"`
	Stats             blink.Stats     `json:"stats"`
	RateLevel         blink.RateLevel `json:"rate_level"`
	LastBlinkAt       time.Time       `json:"last_blink_at,omitempty"`
}

// Monitor drives one blink-detection session from a frame source.
// It serializes all engine access; the engine itself is lock-free.
type Monitor struct {
	config  Config
	source  FrameSource
	factory DetectorFactory

	mu       sync.Mutex
	engine   *blink.Engine
	detector face.Detector
	session  string
	ready    bool
	running  bool

	faceVisible       bool
	consecutiveMisses int
	lastBlinkAt       time.Time

	// Exponential smoothing of openness probabilities
	smoothedLeft  float64
	smoothedRight float64
	hasSmoothed   bool

	// OnUpdate fires with a fresh snapshot after every blink and on the
	// stats interval. Called from the run loop goroutine.
	OnUpdate func(Snapshot)
}

// New creates a monitor for one session. The detector is not loaded
// until Init.
func New(cfg Config, factory DetectorFactory, source FrameSource) *Monitor {
	return &Monitor{
		config:  cfg,
		source:  source,
		factory: factory,
		engine:  blink.New(cfg.Thresholds),
		session: uuid.NewString(),
	}
}

// SessionID returns the unique ID of this monitoring session.
func (m *Monitor) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Init loads the detector model. One-time; concurrent frames observe
// ErrNotInitialized until it returns. A load failure leaves the
// monitor usable with detection disabled: blink tracking is a
// best-effort enhancement, not a reason to take the session down.
func (m *Monitor) Init(ctx context.Context) error {
	type result struct {
		det face.Detector
		err error
	}
	ch := make(chan result, 1)
	go func() {
		det, err := m.factory()
		ch <- result{det, err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-ch:
		if r.err != nil {
			log.Warn("detector load failed, monitoring disabled", "error", r.err)
			return fmt.Errorf("%w: %v", ErrInitFailed, r.err)
		}
		m.mu.Lock()
		m.detector = r.det
		m.ready = true
		m.mu.Unlock()
		log.Info("detector ready", "session", m.session)
		return nil
	}
}

// Ready reports whether the detector finished loading.
func (m *Monitor) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// Run drives the sampling loop until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}
	m.running = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	sampleTicker := time.NewTicker(m.config.SampleInterval)
	statsTicker := time.NewTicker(m.config.StatsInterval)
	defer sampleTicker.Stop()
	defer statsTicker.Stop()

	log.Info("blink monitor started",
		"session", m.session,
		"sample_interval", m.config.SampleInterval,
		"eye_closure_threshold", m.config.Thresholds.EyeClosure)

	for {
		select {
		case <-ctx.Done():
			log.Info("blink monitor stopped", "session", m.session)
			return ctx.Err()

		case <-sampleTicker.C:
			m.step(time.Now())

		case <-statsTicker.C:
			m.notify()
		}
	}
}

// step runs one capture-detect-observe cycle. Capture and inference
// failures degrade to an empty detection batch so the loop stays live.
func (m *Monitor) step(now time.Time) {
	m.mu.Lock()
	ready := m.ready
	detector := m.detector
	m.mu.Unlock()

	if !ready || m.source == nil {
		return
	}

	frame, err := m.source.CaptureJPEG()
	if err != nil {
		log.Debug("frame capture failed", "error", err)
		m.recordMiss()
		return
	}

	dets, err := detector.Detect(frame)
	if err != nil {
		// Fail-open: a missed frame is cheaper than a dead session
		log.Debug("detection failed", "error", err)
		dets = nil
	}

	res, err := m.ObserveDetections(dets, now)
	if err != nil {
		// Miss already recorded; nothing usable in this frame
		return
	}

	if res.AnyBlink {
		m.notify()
	}
}

// ObserveDetections picks the best face from a detection batch,
// extracts its geometry, and feeds the openness probabilities through
// the engine. Returns ErrNotInitialized before Init completes and
// ErrNoFace when nothing usable is in the batch.
func (m *Monitor) ObserveDetections(dets []face.RawDetection, now time.Time) (blink.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return blink.Result{}, ErrNotInitialized
	}

	// Skip malformed detections, keep trying the rest of the batch
	remaining := dets
	for {
		best := face.SelectBest(remaining)
		if best == nil {
			m.missLocked()
			return blink.Result{}, ErrNoFace
		}

		g, err := blink.Extract(*best, m.config.Thresholds)
		if err != nil {
			remaining = without(remaining, best)
			continue
		}

		left, right := m.smooth(g.LeftEyeOpenProbability, g.RightEyeOpenProbability)
		res := m.engine.Observe(left, right, now)

		m.faceVisible = true
		m.consecutiveMisses = 0
		if res.AnyBlink {
			m.lastBlinkAt = now
			log.Debug("blink detected",
				"left", res.LeftBlink, "right", res.RightBlink,
				"rate", m.engine.BlinkRate(now))
		}
		return res, nil
	}
}

// smooth applies exponential smoothing to openness probabilities.
// Caller holds the lock.
func (m *Monitor) smooth(left, right float64) (float64, float64) {
	w := m.config.OpennessSmoothing
	if w <= 0 || w >= 1 || !m.hasSmoothed {
		m.smoothedLeft = left
		m.smoothedRight = right
		m.hasSmoothed = true
		return left, right
	}
	m.smoothedLeft = w*left + (1-w)*m.smoothedLeft
	m.smoothedRight = w*right + (1-w)*m.smoothedRight
	return m.smoothedLeft, m.smoothedRight
}

func (m *Monitor) recordMiss() {
	m.mu.Lock()
	m.missLocked()
	m.mu.Unlock()
}

func (m *Monitor) missLocked() {
	m.consecutiveMisses++
	if m.consecutiveMisses >= m.config.MissThreshold {
		m.faceVisible = false
	}
}

// ExtractGeometry processes a batch of raw detections with this
// session's thresholds. Malformed detections are skipped.
func (m *Monitor) ExtractGeometry(dets []face.RawDetection) []blink.FaceGeometry {
	return blink.ExtractAll(dets, m.config.Thresholds)
}

// Observe feeds one pair of openness probabilities directly into the
// engine, bypassing detection. Used by tests and replay tooling.
func (m *Monitor) Observe(leftOpenProb, rightOpenProb float64, now time.Time) blink.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := m.engine.Observe(leftOpenProb, rightOpenProb, now)
	if res.AnyBlink {
		m.lastBlinkAt = now
	}
	return res
}

// BlinkRate returns the blinks recorded in the last minute.
func (m *Monitor) BlinkRate(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.BlinkRate(now)
}

// TotalBlinks returns the retained blink count.
func (m *Monitor) TotalBlinks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.TotalBlinks()
}

// Stats summarizes the retained blink history as of now.
func (m *Monitor) Stats(now time.Time) blink.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Stats(now)
}

// Reset clears the blink history and eye state without ending the
// session.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engine.Reset()
	m.hasSmoothed = false
	m.lastBlinkAt = time.Time{}
	log.Info("session reset", "session", m.session)
}

// Snapshot returns a copy of the current monitor state.
func (m *Monitor) Snapshot() Snapshot {
	return m.snapshotAt(time.Now())
}

func (m *Monitor) snapshotAt(now time.Time) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.engine.Stats(now)
	return Snapshot{
		SessionID:         m.session,
		Ready:             m.ready,
		Running:           m.running,
		FaceVisible:       m.faceVisible,
		ConsecutiveMisses: m.consecutiveMisses,
		EyeState:          m.engine.State(),
		LeftOpenProb:      m.smoothedLeft,
		RightOpenProb:     m.smoothedRight,
		Stats:             stats,
		RateLevel:         blink.ClassifyRate(stats.BlinkRate),
		LastBlinkAt:       m.lastBlinkAt,
	}
}

func (m *Monitor) notify() {
	if m.OnUpdate == nil {
		return
	}
	m.OnUpdate(m.Snapshot())
}

// Close releases the detector if one was loaded.
func (m *Monitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detector == nil {
		return nil
	}
	err := m.detector.Close()
	m.detector = nil
	m.ready = false
	return err
}

// without returns dets minus the element best points into.
func without(dets []face.RawDetection, best *face.RawDetection) []face.RawDetection {
	out := make([]face.RawDetection, 0, len(dets)-1)
	for i := range dets {
		if &dets[i] != best {
			out = append(out, dets[i])
		}
	}
	return out
}
