package services

import (
	"testing"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMechanicService(t *testing.T) (*MechanicService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewMechanicService(
		repository.NewUserRepository(db),
		repository.NewFeedbackRepository(db),
		repository.NewServiceRecordRepository(db),
	)
	return svc, db
}

func seedMechanicAt(t *testing.T, db *gorm.DB, username string, lat, lng float64) *entity.User {
	t.Helper()
	m := seedUser(t, db, username, "mechanic")
	require.NoError(t, db.Model(&entity.User{}).Where("id = ?", m.ID).
		Updates(map[string]any{"garage_lat": lat, "garage_lng": lng}).Error)
	return m
}

func TestNearbyMechanicsSortedByDistance(t *testing.T) {
	svc, db := newMechanicService(t)
	far := seedMechanicAt(t, db, "far", 51.53, -0.12)
	near := seedMechanicAt(t, db, "near", 51.505, -0.12)

	listings, err := svc.Nearby(51.50, -0.12, 10)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, near.ID, listings[0].ID)
	assert.Equal(t, far.ID, listings[1].ID)
	require.NotNil(t, listings[0].DistanceKm)
	assert.Less(t, *listings[0].DistanceKm, *listings[1].DistanceKm)
}

func TestNearbyMechanicsFallsBackToDirectory(t *testing.T) {
	svc, db := newMechanicService(t)
	seedMechanicAt(t, db, "remote", 55.95, -3.19) // Edinburgh
	seedUser(t, db, "unplaced", "mechanic")       // no position at all

	// nobody within 5 km of central London: full directory instead
	listings, err := svc.Nearby(51.50, -0.12, 5)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Nil(t, listings[0].DistanceKm)
}

func TestNearbyMechanicsRadiusInKilometres(t *testing.T) {
	svc, db := newMechanicService(t)
	mech := seedMechanicAt(t, db, "edgware", 51.55, -0.12) // ~5.5 km out

	// the default 50 km circle covers them, annotated with distance
	listings, err := svc.Nearby(51.50, -0.12, 0)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, mech.ID, listings[0].ID)
	require.NotNil(t, listings[0].DistanceKm)
	assert.InDelta(t, 5.5, *listings[0].DistanceKm, 0.5)

	// an explicit 50 still reaches them; 2 km does not
	listings, err = svc.Nearby(51.50, -0.12, 50)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.NotNil(t, listings[0].DistanceKm)

	listings, err = svc.Nearby(51.50, -0.12, 2)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Nil(t, listings[0].DistanceKm) // directory fallback
}

func TestIntegrityScore(t *testing.T) {
	svc, db := newMechanicService(t)
	mech := seedUser(t, db, "mech", "mechanic")
	u1 := seedUser(t, db, "u1", "user")

	// clean slate: baseline plus the full pricing and rework credit
	breakdown, err := svc.IntegrityScore(mech.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, breakdown.Score) // 60 + 0 + 10 + 5

	require.NoError(t, db.Create(&entity.Feedback{UserID: u1.ID, MechanicID: mech.ID, Rating: 5}).Error)
	breakdown, err = svc.IntegrityScore(mech.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, breakdown.Score)

	// every job overpriced and reworked drags it down
	require.NoError(t, db.Create(&entity.ServiceRecord{
		UserID: u1.ID, MechanicID: mech.ID, Service: "Brakes",
		FairFlag: FairFlagHigh, IsReturnVisit: true,
	}).Error)
	breakdown, err = svc.IntegrityScore(mech.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, breakdown.Score) // 60 + 25 + 0 + 0
	assert.Equal(t, 100.0, breakdown.OverpricedPct)

	_, err = svc.IntegrityScore(u1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveScheduleRejectsUnknownDay(t *testing.T) {
	svc, db := newMechanicService(t)
	mech := seedUser(t, db, "mech", "mechanic")

	err := svc.SaveSchedule(mech.ID, map[string]DaySchedule{
		"funday": {Start: "09:00", End: "17:00", On: true},
	})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.SaveSchedule(mech.ID, map[string]DaySchedule{
		"mon": {Start: "09:00", End: "17:00", On: true},
	})
	require.NoError(t, err)

	schedule, err := svc.GetSchedule(mech.ID)
	require.NoError(t, err)
	assert.True(t, schedule["mon"].On)
}
