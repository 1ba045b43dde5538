package face

import (
	"sync"
)

// Mock implements Detector for testing.
// Behavior can be customized via function fields.
type Mock struct {
	// DetectFunc is called when Detect is invoked.
	// If nil, returns a single well-formed frontal face.
	DetectFunc func(jpeg []byte) ([]RawDetection, error)

	// CloseFunc is called when Close is invoked.
	// If nil, returns nil.
	CloseFunc func() error

	// Tracking
	mu          sync.Mutex
	detectCalls int
	closed      bool
}

// NewMock creates a mock detector that always finds one face.
func NewMock() *Mock {
	return &Mock{}
}

// SyntheticDetection returns a plausible frontal-face detection for a
// 640x480 frame. Eye-to-nose and eye-to-ear distances put the derived
// openness ratio comfortably in the "open" band.
func SyntheticDetection() RawDetection {
	return RawDetection{
		Probability: 0.98,
		TopLeft:     Point{X: 180, Y: 100},
		BottomRight: Point{X: 460, Y: 420},
		Keypoints: []Point{
			KeypointRightEye:        {X: 250, Y: 200},
			KeypointLeftEye:         {X: 390, Y: 200},
			KeypointNoseTip:         {X: 320, Y: 280},
			KeypointMouthCenter:     {X: 320, Y: 340},
			KeypointRightEarTragion: {X: 185, Y: 205},
			KeypointLeftEarTragion:  {X: 455, Y: 205},
		},
	}
}

// Detect calls DetectFunc and records the call.
func (m *Mock) Detect(jpeg []byte) ([]RawDetection, error) {
	m.mu.Lock()
	m.detectCalls++
	fn := m.DetectFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(jpeg)
	}
	return []RawDetection{SyntheticDetection()}, nil
}

// Close calls CloseFunc and marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	fn := m.CloseFunc
	m.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return nil
}

// DetectCalls returns how many times Detect was invoked.
func (m *Mock) DetectCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detectCalls
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
