// Package face provides face and landmark detection for blink monitoring
package face

// Keypoint indices in a RawDetection, fixed by the detector contract.
const (
	KeypointRightEye = iota
	KeypointLeftEye
	KeypointNoseTip
	KeypointMouthCenter
	KeypointRightEarTragion
	KeypointLeftEarTragion
	NumKeypoints
)

// Point is an image-space coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawDetection represents one detected face with its landmarks.
// Keypoints follow the fixed index order above; Probability <= 0 means
// the backend did not report a confidence.
type RawDetection struct {
	Probability float64 `json:"probability"`
	TopLeft     Point   `json:"top_left"`
	BottomRight Point   `json:"bottom_right"`
	Keypoints   []Point `json:"keypoints"`
}

// Width returns the bounding box width.
// Negative if the backend returned malformed corners; not validated here.
func (d RawDetection) Width() float64 {
	return d.BottomRight.X - d.TopLeft.X
}

// Height returns the bounding box height.
func (d RawDetection) Height() float64 {
	return d.BottomRight.Y - d.TopLeft.Y
}

// Area returns the area of the bounding box
func (d RawDetection) Area() float64 {
	return d.Width() * d.Height()
}

// Detector is the interface for landmark detection backends
type Detector interface {
	// Detect finds faces in the JPEG image and returns their landmarks.
	// Returns an empty slice if no faces are detected.
	Detect(jpeg []byte) ([]RawDetection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// SelectBest picks the face to monitor from multiple detections.
// Priority: confidence * 0.7 + area * 0.3, so the user in front of the
// camera wins over a larger but uncertain background face.
func SelectBest(dets []RawDetection) *RawDetection {
	if len(dets) == 0 {
		return nil
	}

	if len(dets) == 1 {
		return &dets[0]
	}

	// Find max area for normalization
	maxArea := 0.0
	for _, d := range dets {
		if d.Area() > maxArea {
			maxArea = d.Area()
		}
	}
	if maxArea <= 0 {
		maxArea = 1
	}

	bestScore := -1.0
	var best *RawDetection

	for i := range dets {
		score := dets[i].Probability*0.7 + (dets[i].Area()/maxArea)*0.3
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}

	return best
}
