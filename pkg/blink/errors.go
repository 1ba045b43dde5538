package blink

import "errors"

// Sentinel errors for the blink package.
var (
	// ErrMalformedDetection is returned when a raw detection carries
	// fewer keypoints than the geometry extractor needs.
	ErrMalformedDetection = errors.New("blink: detection has fewer than six keypoints")
)
