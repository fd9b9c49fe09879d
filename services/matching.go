package services

import "math"

// MatchInput feeds the mechanic match score. Zero values fall back to the
// neutral defaults used by the dashboard.
type MatchInput struct {
	Rating            float64 // 0..5
	SimilarJobsCount  int
	AvgResponseMinute float64
	DistanceKm        float64
}

// MechanicMatchScore weighs rating, experience, responsiveness and distance
// into a 0-100 score. Weights: 0.4 / 0.3 / 0.2 / 0.1.
func MechanicMatchScore(in MatchInput) int {
	normRating := in.Rating / 5
	normJobs := math.Min(float64(in.SimilarJobsCount)/20, 1)
	normResponse := 1 - math.Min(in.AvgResponseMinute/60, 1)
	normDistance := 1 - math.Min(in.DistanceKm/20, 1)

	score := 0.4*normRating + 0.3*normJobs + 0.2*normResponse + 0.1*normDistance
	return int(math.Round(score * 100))
}
