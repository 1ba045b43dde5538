package blink

// RateLevel classifies a per-minute blink rate into wellness bands.
type RateLevel string

const (
	// RateLow indicates too few blinks per minute, a dry-eye risk
	// typical of prolonged screen focus.
	RateLow RateLevel = "low"

	// RateNormal is the healthy spontaneous blink range.
	RateNormal RateLevel = "normal"

	// RateHigh indicates an elevated rate, often eye strain or fatigue.
	RateHigh RateLevel = "high"
)

// Spontaneous blink rate bands in blinks per minute. Screen focus
// commonly drops the rate well below the resting 12-20 range.
const (
	LowRateThreshold  = 12
	HighRateThreshold = 25
)

// ClassifyRate maps a blinks-per-minute count to a wellness band.
// How the band is surfaced to the user is the UI's decision.
func ClassifyRate(perMinute int) RateLevel {
	switch {
	case perMinute < LowRateThreshold:
		return RateLow
	case perMinute > HighRateThreshold:
		return RateHigh
	default:
		return RateNormal
	}
}
