// Package config provides configuration helpers for go-okulo commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the monitor binaries.
const (
	DefaultPort      = "8090"
	DefaultModelPath = "models/face_detection_yunet.onnx"
	DefaultCameraID  = 0
)

// Port returns the dashboard port from OKULO_PORT or the default.
func Port() string {
	if p := os.Getenv("OKULO_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// ModelPath returns the detector model path from OKULO_MODEL or the default.
func ModelPath() string {
	if p := os.Getenv("OKULO_MODEL"); p != "" {
		return p
	}
	return DefaultModelPath
}

// CameraID returns the capture device index from OKULO_CAMERA or the default.
func CameraID() int {
	if c := os.Getenv("OKULO_CAMERA"); c != "" {
		if id, err := strconv.Atoi(c); err == nil {
			return id
		}
	}
	return DefaultCameraID
}

// LogLevel returns the log level from LOG_LEVEL, defaulting to "info".
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
