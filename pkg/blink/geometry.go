package blink

import (
	"math"

	"github.com/okulo/go-okulo/pkg/face"
)

const (
	// ratioEpsilon keeps the openness ratio finite when the eye and ear
	// landmarks coincide.
	ratioEpsilon = 0.1

	// defaultProbability is assumed when the detector reports no
	// confidence of its own.
	defaultProbability = 0.9
)

// FaceGeometry is the structured result of one processed detection.
// Values are copied out of the raw detection and never mutated after
// Extract returns.
type FaceGeometry struct {
	TopLeft     face.Point `json:"top_left"`
	BottomRight face.Point `json:"bottom_right"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`

	RightEye        face.Point `json:"right_eye"`
	LeftEye         face.Point `json:"left_eye"`
	NoseTip         face.Point `json:"nose_tip"`
	MouthCenter     face.Point `json:"mouth_center"`
	RightEarTragion face.Point `json:"right_ear_tragion"`
	LeftEarTragion  face.Point `json:"left_ear_tragion"`

	Probability             float64 `json:"probability"`
	LeftEyeOpenProbability  float64 `json:"left_eye_open_probability"`
	RightEyeOpenProbability float64 `json:"right_eye_open_probability"`
}

// Extract converts a raw detection into a FaceGeometry with derived
// per-eye openness probabilities. Pure and stateless. The bounding box
// is copied as-is; width and height may be negative if the detector
// returned malformed corners. Returns ErrMalformedDetection if the
// detection has fewer than six keypoints.
func Extract(det face.RawDetection, t Thresholds) (FaceGeometry, error) {
	if len(det.Keypoints) < face.NumKeypoints {
		return FaceGeometry{}, ErrMalformedDetection
	}

	g := FaceGeometry{
		TopLeft:     det.TopLeft,
		BottomRight: det.BottomRight,
		Width:       det.BottomRight.X - det.TopLeft.X,
		Height:      det.BottomRight.Y - det.TopLeft.Y,

		RightEye:        det.Keypoints[face.KeypointRightEye],
		LeftEye:         det.Keypoints[face.KeypointLeftEye],
		NoseTip:         det.Keypoints[face.KeypointNoseTip],
		MouthCenter:     det.Keypoints[face.KeypointMouthCenter],
		RightEarTragion: det.Keypoints[face.KeypointRightEarTragion],
		LeftEarTragion:  det.Keypoints[face.KeypointLeftEarTragion],

		Probability: det.Probability,
	}
	if g.Probability <= 0 {
		g.Probability = defaultProbability
	}

	g.LeftEyeOpenProbability = openness(g.LeftEye, g.LeftEarTragion, g.NoseTip, t)
	g.RightEyeOpenProbability = openness(g.RightEye, g.RightEarTragion, g.NoseTip, t)

	return g, nil
}

// ExtractAll processes a batch of detections. Malformed detections are
// skipped; the rest of the batch is still processed.
func ExtractAll(dets []face.RawDetection, t Thresholds) []FaceGeometry {
	out := make([]FaceGeometry, 0, len(dets))
	for _, det := range dets {
		g, err := Extract(det, t)
		if err != nil {
			continue
		}
		out = append(out, g)
	}
	return out
}

// openness estimates how open an eye is from relative landmark
// distances. The eye-to-nose distance grows relative to the eye-to-ear
// span as the eye opens; the ratio is normalized linearly between
// ClosedRatio and OpenRatio and clamped to [0,1].
func openness(eye, ear, nose face.Point, t Thresholds) float64 {
	eyeToEar := distance(eye, ear)
	eyeToNose := distance(eye, nose)

	ratio := eyeToNose / (eyeToEar + ratioEpsilon)

	return clamp((ratio-t.ClosedRatio)/(t.OpenRatio-t.ClosedRatio), 0, 1)
}

// distance is the Euclidean distance between two points
func distance(a, b face.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
