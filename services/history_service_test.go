package services

import (
	"testing"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessRisk(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// no history at all reads as unknown
	risk := assessRisk(nil, 0, now)
	assert.Equal(t, 50, risk.Score)
	assert.Equal(t, RiskMedium, risk.Level)

	// serviced recently, no breakdowns
	recent := []entity.ServiceRecord{{Date: now.AddDate(0, -2, 0)}}
	risk = assessRisk(recent, 0, now)
	assert.Equal(t, 40, risk.Score)
	assert.Equal(t, RiskLow, risk.Level)

	// stale service
	stale := []entity.ServiceRecord{{Date: now.AddDate(0, -8, 0)}}
	risk = assessRisk(stale, 0, now)
	assert.Equal(t, 65, risk.Score)
	assert.Equal(t, RiskMedium, risk.Level)

	// very stale plus repeated breakdowns
	old := []entity.ServiceRecord{{Date: now.AddDate(-2, 0, 0)}}
	risk = assessRisk(old, 3, now)
	assert.Equal(t, 100, risk.Score)
	assert.Equal(t, RiskHigh, risk.Level)
}

func TestHistoryUpcomingAlerts(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(
		repository.NewServiceRecordRepository(db),
		repository.NewTokenRepository(db),
	)
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 20)
	distant := now.AddDate(0, 6, 0)
	past := now.AddDate(0, 0, -5)

	for _, due := range []time.Time{soon, distant, past} {
		d := due
		require.NoError(t, db.Create(&entity.ServiceRecord{
			UserID:          user.ID,
			MechanicID:      mech.ID,
			Service:         "Oil service",
			Date:            now.AddDate(0, -5, 0),
			NextServiceDate: &d,
		}).Error)
	}

	history, err := svc.ForUser(user.ID, now)
	require.NoError(t, err)
	assert.Len(t, history.Records, 3)

	// only the date inside the 60-day window alerts
	require.Len(t, history.Alerts, 1)
	assert.Equal(t, 20, history.Alerts[0].DaysLeft)
}
