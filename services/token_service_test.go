package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaiseValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	driver := seedUser(t, db, "driver", "user")

	_, err := svc.Raise(driver.ID, 91, 0, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Raise(driver.ID, 51.5, -181, "")
	assert.ErrorIs(t, err, ErrValidation)

	tok, err := svc.Raise(driver.ID, 51.50, -0.12, "flat tyre")
	require.NoError(t, err)
	assert.Equal(t, entity.TokenOpen, tok.Status)
	assert.Nil(t, tok.MechanicID)
}

func TestAcceptAtMostOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	driver := seedUser(t, db, "driver", "user")

	tok, err := svc.Raise(driver.ID, 51.50, -0.12, "engine smoke")
	require.NoError(t, err)

	const n = 8
	mechanics := make([]uint, n)
	for i := 0; i < n; i++ {
		mechanics[i] = seedUser(t, db, fmt.Sprintf("mech%d", i), "mechanic").ID
	}

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Accept(tok.ID, mechanics[i])
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, ErrConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, conflicts)

	final, err := svc.MyLatest(driver.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TokenAccepted, final.Status)
	require.NotNil(t, final.MechanicID)
}

func TestTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	driver := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")
	other := seedUser(t, db, "other", "mechanic")

	tok, err := svc.Raise(driver.ID, 51.50, -0.12, "")
	require.NoError(t, err)

	accepted, err := svc.Accept(tok.ID, mech.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TokenAccepted, accepted.Status)

	// only the accepting mechanic may resolve
	_, err = svc.Resolve(tok.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	resolved, err := svc.Resolve(tok.ID, mech.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TokenResolved, resolved.Status)

	// resolved is terminal
	_, err = svc.Resolve(tok.ID, mech.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.Accept(tok.ID, other.ID)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Reject(tok.ID, other.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectOpenToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	driver := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	tok, err := svc.Raise(driver.ID, 51.50, -0.12, "")
	require.NoError(t, err)

	rejected, err := svc.Reject(tok.ID, mech.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TokenRejected, rejected.Status)
	require.NotNil(t, rejected.MechanicID)
	assert.Equal(t, mech.ID, *rejected.MechanicID)
}

func TestAcceptMissingToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	mech := seedUser(t, db, "mech", "mechanic")

	_, err := svc.Accept(9999, mech.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNearbyRadiusAndOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	driver := seedUser(t, db, "driver", "user")

	// ~0 km, ~1.5 km and ~6 km north of the query point
	center := [2]float64{51.50, -0.12}
	near, err := svc.Raise(driver.ID, 51.50, -0.12, "at the spot")
	require.NoError(t, err)
	mid, err := svc.Raise(driver.ID, 51.5135, -0.12, "down the road")
	require.NoError(t, err)
	far, err := svc.Raise(driver.ID, 51.554, -0.12, "other side of town")
	require.NoError(t, err)

	now := time.Now()

	rows, err := svc.Nearby(center[0], center[1], 5000, now)
	require.NoError(t, err)
	ids := tokenIDs(rows)
	assert.Contains(t, ids, near.ID)
	assert.Contains(t, ids, mid.ID)
	assert.NotContains(t, ids, far.ID)

	rows, err = svc.Nearby(center[0], center[1], 7000, now)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// ascending by distance
	assert.Equal(t, near.ID, rows[0].Token.ID)
	assert.Equal(t, mid.ID, rows[1].Token.ID)
	assert.Equal(t, far.ID, rows[2].Token.ID)

	// annotations ride along without reordering
	for _, row := range rows {
		assert.Equal(t, EtaMinutes(row.DistanceKm), row.EtaMinutes)
		assert.NotEmpty(t, row.PriorityLevel)
	}
	assert.Equal(t, PriorityHigh, rows[0].PriorityLevel) // 0 km, fresh
}

func TestNearbyAcrossAntimeridian(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	driver := seedUser(t, db, "driver", "user")

	// ~2.2 km apart but on opposite sides of the 180 meridian
	tok, err := svc.Raise(driver.ID, 0.0, 179.99, "mid-pacific")
	require.NoError(t, err)

	rows, err := svc.Nearby(0.0, -179.99, 5000, time.Now())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tok.ID, rows[0].Token.ID)
	assert.InDelta(t, 2.2, rows[0].DistanceKm, 0.3)
}

func TestNearbySkipsNonOpen(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	driver := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	tok, err := svc.Raise(driver.ID, 51.50, -0.12, "")
	require.NoError(t, err)
	_, err = svc.Accept(tok.ID, mech.ID)
	require.NoError(t, err)

	rows, err := svc.Nearby(51.50, -0.12, 5000, time.Now())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMyLatestEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, repository.NewTokenRepository(db), consoleMailer())
	driver := seedUser(t, db, "driver", "user")

	tok, err := svc.MyLatest(driver.ID)
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func tokenIDs(rows []NearbyToken) []uint {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Token.ID)
	}
	return ids
}
