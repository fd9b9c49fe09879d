package services

import "math"

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// assumed travel speed: 30 km/h → 0.5 km per minute
const travelKmPerMinute = 0.5

// EtaMinutes estimates arrival time at the assumed travel speed.
func EtaMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / travelKmPerMinute))
}

// PriorityLevel is the mechanic-triage label. Close-and-fresh requests are
// High; far or stale ones are Low; everything else is Medium.
// Pure: the same (distanceKm, ageMinutes) always yields the same label.
func PriorityLevel(distanceKm, ageMinutes float64) string {
	switch {
	case distanceKm <= 3 && ageMinutes <= 30:
		return PriorityHigh
	case distanceKm > 10 || ageMinutes > 90:
		return PriorityLow
	default:
		return PriorityMedium
	}
}
