package services

import (
	"strings"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
)

// VehicleHealthScore starts at 100 and subtracts capped penalties for age,
// time since last service, mileage and recent breakdown jobs.
func VehicleHealthScore(v *entity.Vehicle, recent []entity.ServiceRecord, now time.Time) int {
	agePenalty := 0.0
	if v.Year > 0 {
		agePenalty = minf(float64(now.Year()-v.Year)*3, 25)
	}

	servicePenalty := 20.0
	if v.LastServiceDate != nil {
		months := monthsBetween(*v.LastServiceDate, now)
		servicePenalty = minf(float64(months)*2, 30)
	}

	mileagePenalty := 0.0
	if v.Mileage > 0 {
		steps := v.Mileage / 20000
		mileagePenalty = minf(float64(steps)*5, 25)
	}

	breakdowns := 0
	for _, r := range recent {
		if strings.Contains(strings.ToLower(r.Service), "breakdown") {
			breakdowns++
		}
	}
	breakdownPenalty := minf(float64(breakdowns)*8, 20)

	score := 100 - (agePenalty + servicePenalty + mileagePenalty + breakdownPenalty)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score + 0.5)
}

// HealthRecommendations turns a score into owner-facing advice lines.
func HealthRecommendations(v *entity.Vehicle, healthScore int) []string {
	var recs []string

	if v.LastServiceDate == nil {
		recs = append(recs, "No previous service recorded. Book a full service soon.")
	}

	switch {
	case healthScore < 50:
		recs = append(recs, "Vehicle health is poor. Avoid long trips and book a service immediately.")
	case healthScore < 75:
		recs = append(recs, "Consider a check-up within the next month to prevent issues.")
	default:
		recs = append(recs, "Vehicle appears healthy. Maintain regular service intervals.")
	}

	if v.Mileage > 0 && v.Mileage%10000 < 1000 {
		recs = append(recs, "You are close to a 10,000km interval. Plan an oil and filter change.")
	}
	return recs
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
