package face

import (
	"testing"
)

func TestRawDetection_Dimensions(t *testing.T) {
	tests := []struct {
		name         string
		det          RawDetection
		expectWidth  float64
		expectHeight float64
	}{
		{
			name:         "normal box",
			det:          RawDetection{TopLeft: Point{X: 10, Y: 20}, BottomRight: Point{X: 110, Y: 140}},
			expectWidth:  100,
			expectHeight: 120,
		},
		{
			name:         "swapped corners give negative size",
			det:          RawDetection{TopLeft: Point{X: 110, Y: 140}, BottomRight: Point{X: 10, Y: 20}},
			expectWidth:  -100,
			expectHeight: -120,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if w := tc.det.Width(); w != tc.expectWidth {
				t.Errorf("Width: got %v, want %v", w, tc.expectWidth)
			}
			if h := tc.det.Height(); h != tc.expectHeight {
				t.Errorf("Height: got %v, want %v", h, tc.expectHeight)
			}
		})
	}
}

func TestSelectBest(t *testing.T) {
	box := func(w, h, conf float64) RawDetection {
		return RawDetection{
			Probability: conf,
			TopLeft:     Point{X: 0, Y: 0},
			BottomRight: Point{X: w, Y: h},
		}
	}

	tests := []struct {
		name       string
		detections []RawDetection
		expectNil  bool
		expectIdx  int
	}{
		{
			name:       "empty list",
			detections: []RawDetection{},
			expectNil:  true,
		},
		{
			name:       "single detection",
			detections: []RawDetection{box(100, 100, 0.9)},
			expectIdx:  0,
		},
		{
			name: "high confidence beats larger area",
			detections: []RawDetection{
				box(200, 200, 0.5),
				box(100, 100, 0.95),
			},
			expectIdx: 1, // 0.95*0.7 + 0.25*0.3 = 0.74 vs 0.5*0.7 + 1.0*0.3 = 0.65
		},
		{
			name: "similar confidence picks larger",
			detections: []RawDetection{
				box(200, 200, 0.8),
				box(50, 50, 0.8),
			},
			expectIdx: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			best := SelectBest(tc.detections)
			if tc.expectNil {
				if best != nil {
					t.Errorf("SelectBest: expected nil, got %+v", best)
				}
				return
			}

			if best == nil {
				t.Fatal("SelectBest: expected non-nil, got nil")
			}
			if best != &tc.detections[tc.expectIdx] {
				t.Errorf("SelectBest: got %+v, want index %d", best, tc.expectIdx)
			}
		})
	}
}

func TestSyntheticDetection(t *testing.T) {
	det := SyntheticDetection()

	if len(det.Keypoints) != NumKeypoints {
		t.Fatalf("Keypoints: got %d, want %d", len(det.Keypoints), NumKeypoints)
	}
	if det.Probability <= 0 || det.Probability > 1 {
		t.Errorf("Probability should be 0-1, got %f", det.Probability)
	}
	if det.Width() <= 0 || det.Height() <= 0 {
		t.Errorf("synthetic box should be well-formed: %fx%f", det.Width(), det.Height())
	}

	// Right side of the face is on the image left for a frontal view
	if det.Keypoints[KeypointRightEye].X >= det.Keypoints[KeypointLeftEye].X {
		t.Error("right eye should be left of left eye in image space")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ModelPath == "" {
		t.Error("DefaultConfig: ModelPath should not be empty")
	}
	if cfg.ConfidenceThresh <= 0 || cfg.ConfidenceThresh > 1 {
		t.Errorf("DefaultConfig: ConfidenceThresh should be 0-1, got %f", cfg.ConfidenceThresh)
	}
	if cfg.InputWidth <= 0 || cfg.InputHeight <= 0 {
		t.Errorf("DefaultConfig: input size should be positive, got %dx%d",
			cfg.InputWidth, cfg.InputHeight)
	}
}

func TestMock_RecordsCalls(t *testing.T) {
	m := NewMock()

	dets, err := m.Detect([]byte("frame"))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(dets) != 1 {
		t.Errorf("default mock should find one face, got %d", len(dets))
	}
	if m.DetectCalls() != 1 {
		t.Errorf("DetectCalls: got %d, want 1", m.DetectCalls())
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !m.Closed() {
		t.Error("mock should report closed")
	}
}
