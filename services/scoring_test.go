package services

import (
	"testing"
	"time"

	"github.com/FawazNazmo/MechLink/entity"

	"github.com/stretchr/testify/assert"
)

func TestVehicleHealthScoreNewCar(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	lastService := now.AddDate(0, -1, 0)

	v := &entity.Vehicle{Year: 2026, Mileage: 5000, LastServiceDate: &lastService}
	score := VehicleHealthScore(v, nil, now)

	// only the one-month service penalty applies
	assert.Equal(t, 98, score)
}

func TestVehicleHealthScoreNeglectedCar(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	v := &entity.Vehicle{Year: 2008, Mileage: 180000} // no service on record
	recent := []entity.ServiceRecord{
		{Service: "Breakdown assistance"},
		{Service: "Breakdown assistance"},
		{Service: "Breakdown assistance"},
	}
	score := VehicleHealthScore(v, recent, now)

	// all four penalties cap out: 100 - 25 - 20 - 25 - 20
	assert.Equal(t, 10, score)
}

func TestVehicleHealthScoreNeverNegative(t *testing.T) {
	now := time.Now()
	old := now.AddDate(-10, 0, 0)
	v := &entity.Vehicle{Year: 1990, Mileage: 500000, LastServiceDate: &old}
	score := VehicleHealthScore(v, nil, now)
	assert.GreaterOrEqual(t, score, 0)
}

func TestHealthRecommendations(t *testing.T) {
	v := &entity.Vehicle{Year: 2020, Mileage: 45000}
	recs := HealthRecommendations(v, 40)
	assert.Contains(t, recs, "No previous service recorded. Book a full service soon.")
	assert.Contains(t, recs, "Vehicle health is poor. Avoid long trips and book a service immediately.")
}

func TestMechanicMatchScore(t *testing.T) {
	// perfect on every axis
	best := MechanicMatchScore(MatchInput{Rating: 5, SimilarJobsCount: 20, AvgResponseMinute: 0, DistanceKm: 0})
	assert.Equal(t, 100, best)

	// worst on every axis
	worst := MechanicMatchScore(MatchInput{Rating: 0, SimilarJobsCount: 0, AvgResponseMinute: 60, DistanceKm: 20})
	assert.Equal(t, 0, worst)

	// rating dominates with the 0.4 weight
	ratedOnly := MechanicMatchScore(MatchInput{Rating: 5, AvgResponseMinute: 60, DistanceKm: 20})
	assert.Equal(t, 40, ratedOnly)
}
