package monitor

import "errors"

// Sentinel errors for the monitor package.
var (
	// ErrNotInitialized is returned when observation is requested
	// before the detector finished loading. Fatal to the call, not to
	// the session: retry after Init completes.
	ErrNotInitialized = errors.New("monitor: detector not initialized")

	// ErrInitFailed wraps a detector load failure. The monitor stays
	// usable with detection disabled.
	ErrInitFailed = errors.New("monitor: detector initialization failed")

	// ErrAlreadyRunning is returned by Run when the loop is active.
	ErrAlreadyRunning = errors.New("monitor: already running")

	// ErrNoFace is returned when a detection batch contains no usable
	// face.
	ErrNoFace = errors.New("monitor: no face in frame")
)
