package face

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// YuNetDetector uses OpenCV's FaceDetectorYN for face and landmark detection
type YuNetDetector struct {
	detector gocv.FaceDetectorYN
	config   Config
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a new YuNet detector using GoCV's built-in FaceDetectorYN
func NewYuNet(cfg Config) (*YuNetDetector, error) {
	// Check if model file exists first
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	// Create FaceDetectorYN with initial size (will be updated per-image)
	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"", // No config file needed for ONNX
		image.Pt(cfg.InputWidth, cfg.InputHeight), // Initial input size
		float32(cfg.ConfidenceThresh),             // Score threshold
		0.3,                         // NMS threshold
		5000,                        // Top K
		int(gocv.NetBackendDefault), // Backend
		int(gocv.NetTargetCPU),      // Target
	)

	return &YuNetDetector{
		detector: detector,
		config:   cfg,
	}, nil
}

// Detect finds faces in the JPEG image and returns landmark detections
func (d *YuNetDetector) Detect(jpeg []byte) ([]RawDetection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Decode JPEG to Mat
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	// Update detector input size to match image
	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	var detections []RawDetection
	for r := 0; r < faces.Rows(); r++ {
		// YuNet output format (15 columns):
		// 0-3: x, y, w, h (bounding box in pixels)
		// 4-13: landmarks: right eye, left eye, nose tip,
		//       right mouth corner, left mouth corner (x,y pairs)
		// 14: face score
		x := float64(faces.GetFloatAt(r, 0))
		y := float64(faces.GetFloatAt(r, 1))
		w := float64(faces.GetFloatAt(r, 2))
		h := float64(faces.GetFloatAt(r, 3))

		rightEye := Point{X: float64(faces.GetFloatAt(r, 4)), Y: float64(faces.GetFloatAt(r, 5))}
		leftEye := Point{X: float64(faces.GetFloatAt(r, 6)), Y: float64(faces.GetFloatAt(r, 7))}
		noseTip := Point{X: float64(faces.GetFloatAt(r, 8)), Y: float64(faces.GetFloatAt(r, 9))}
		rightMouth := Point{X: float64(faces.GetFloatAt(r, 10)), Y: float64(faces.GetFloatAt(r, 11))}
		leftMouth := Point{X: float64(faces.GetFloatAt(r, 12)), Y: float64(faces.GetFloatAt(r, 13))}

		score := float64(faces.GetFloatAt(r, 14))

		// YuNet has no ear landmarks; estimate the tragions at the box
		// edges at eye height. The subject's right side is the image
		// left for a camera-facing user, so the right tragion sits on
		// the edge nearest the right eye.
		eyeY := (rightEye.Y + leftEye.Y) / 2
		rightTragion := Point{X: x, Y: eyeY}
		leftTragion := Point{X: x + w, Y: eyeY}
		if rightEye.X > leftEye.X {
			rightTragion.X, leftTragion.X = leftTragion.X, rightTragion.X
		}

		detections = append(detections, RawDetection{
			Probability: score,
			TopLeft:     Point{X: x, Y: y},
			BottomRight: Point{X: x + w, Y: y + h},
			Keypoints: []Point{
				KeypointRightEye:        rightEye,
				KeypointLeftEye:         leftEye,
				KeypointNoseTip:         noseTip,
				KeypointMouthCenter:     {X: (rightMouth.X + leftMouth.X) / 2, Y: (rightMouth.Y + leftMouth.Y) / 2},
				KeypointRightEarTragion: rightTragion,
				KeypointLeftEarTragion:  leftTragion,
			},
		})
	}

	return detections, nil
}

// Close releases the detector resources
func (d *YuNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}
