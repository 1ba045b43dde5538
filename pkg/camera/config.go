// Package camera provides local webcam capture for the blink monitor.
// It follows the same pattern as pkg/monitor for tunable parameters.
package camera

import "fmt"

// Config holds capture configuration.
type Config struct {
	// DeviceID is the V4L2/AVFoundation capture device index.
	DeviceID int `json:"device_id"`

	// Width and Height request a capture resolution. The driver may
	// pick the nearest supported mode.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Quality is the JPEG quality (1-100) for encoded frames.
	Quality int `json:"quality"`
}

// DefaultConfig returns the recommended capture configuration.
// 640x480 keeps detector latency low; landmark geometry does not need
// more resolution.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
		Width:    640,
		Height:   480,
		Quality:  85,
	}
}

// Validate returns a list of problems with the configuration.
func (c Config) Validate() []string {
	var errs []string
	if c.DeviceID < 0 {
		errs = append(errs, fmt.Sprintf("device_id must be >= 0, got %d", c.DeviceID))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Sprintf("resolution must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, fmt.Sprintf("quality must be 1-100, got %d", c.Quality))
	}
	return errs
}
