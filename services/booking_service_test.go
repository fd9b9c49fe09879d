package services

import (
	"testing"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookingService(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewBookingService(
		db,
		repository.NewBookingRepository(db),
		repository.NewUserRepository(db),
		repository.NewServiceRecordRepository(db),
		repository.NewAlertSettingRepository(db),
		NewPricingService(repository.NewPricingRepository(db)),
		consoleMailer(),
	)
	return svc, db
}

func TestCreateBooking(t *testing.T) {
	svc, db := newBookingService(t)
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	b, err := svc.Create(user.ID, CreateBookingInput{
		MechanicID:    mech.ID,
		Issue:         "Brake pads",
		PreferredDate: "2026-09-14",
		PreferredTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingRequested, b.Status)

	// same mechanic, same slot: clash
	_, err = svc.Create(user.ID, CreateBookingInput{
		MechanicID:    mech.ID,
		Issue:         "Oil change",
		PreferredDate: "2026-09-14",
		PreferredTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// unknown mechanic
	_, err = svc.Create(user.ID, CreateBookingInput{
		MechanicID:    9999,
		Issue:         "Oil change",
		PreferredDate: "2026-09-15",
		PreferredTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckSlotAgainstSchedule(t *testing.T) {
	svc, db := newBookingService(t)
	mech := seedUser(t, db, "mech", "mechanic")

	// works Monday 09:00-17:00 only
	require.NoError(t, db.Model(&entity.User{}).Where("id = ?", mech.ID).
		Update("schedule", `{"mon":{"start":"09:00","end":"17:00","on":true}}`).Error)

	// 2026-09-14 is a Monday
	check, err := svc.CheckSlot(mech.ID, "2026-09-14", "10:00")
	require.NoError(t, err)
	assert.True(t, check.OK)

	check, err = svc.CheckSlot(mech.ID, "2026-09-14", "19:00")
	require.NoError(t, err)
	assert.False(t, check.OK)

	// Tuesday is off
	check, err = svc.CheckSlot(mech.ID, "2026-09-15", "10:00")
	require.NoError(t, err)
	assert.False(t, check.OK)
}

func TestBookingTransitions(t *testing.T) {
	svc, db := newBookingService(t)
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")
	other := seedUser(t, db, "other", "mechanic")

	b, err := svc.Create(user.ID, CreateBookingInput{
		MechanicID:    mech.ID,
		Issue:         "Brake pads",
		PreferredDate: "2026-09-14",
		PreferredTime: "10:00",
	})
	require.NoError(t, err)

	// only the booked mechanic may act on it
	_, err = svc.Accept(other.ID, b.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	accepted, err := svc.Accept(mech.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingAccepted, accepted.Status)

	// accepting twice is a stale transition
	_, err = svc.Accept(mech.ID, b.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// no-show only applies to accepted bookings
	marked, err := svc.MarkNoShow(mech.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingNoShowUser, marked.Status)

	// terminal: cancel no longer possible
	_, err = svc.CancelByUser(user.ID, b.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelByMechanic(t *testing.T) {
	svc, db := newBookingService(t)
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	b, err := svc.Create(user.ID, CreateBookingInput{
		MechanicID:    mech.ID,
		Issue:         "Oil change",
		PreferredDate: "2026-09-16",
		PreferredTime: "11:00",
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelByMechanic(mech.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelledByMechanic, cancelled.Status)

	var events []entity.BookingEvent
	require.NoError(t, db.Where("booking_id = ?", b.ID).Find(&events).Error)
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, "created")
	assert.Contains(t, types, "cancelled_by_mechanic")
}

func TestCompleteBookingWithFairPricing(t *testing.T) {
	svc, db := newBookingService(t)
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	require.NoError(t, db.Create(&entity.PricingProfile{
		ServiceType:   "front_brake_pads",
		CarSize:       "small",
		BaseParts:     80,
		BaseHours:     1.5,
		LabourMin:     50,
		LabourMax:     80,
		MarginPercent: 0.25,
	}).Error)

	b, err := svc.Create(user.ID, CreateBookingInput{
		MechanicID:    mech.ID,
		Issue:         "Brakes grinding",
		PreferredDate: "2026-09-14",
		PreferredTime: "10:00",
	})
	require.NoError(t, err)
	_, err = svc.Accept(mech.ID, b.ID)
	require.NoError(t, err)

	done, rec, err := svc.Complete(mech.ID, b.ID, CompleteBookingInput{
		Service:     "Front brake pads",
		Cost:        300, // well above the 250 soft max
		ServiceType: "front_brake_pads",
		CarSize:     "small",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCompleted, done.Status)
	assert.Equal(t, FairFlagHigh, rec.FairFlag)
	require.NotNil(t, rec.NextServiceDate)
	require.NotNil(t, rec.RemindAt)
	assert.True(t, rec.RemindAt.Before(*rec.NextServiceDate))

	// completing twice fails the guarded transition
	_, _, err = svc.Complete(mech.ID, b.ID, CompleteBookingInput{Service: "again", Cost: 100})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCompleteDetectsReturnVisit(t *testing.T) {
	svc, db := newBookingService(t)
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	makeCompleted := func(date, timeOfDay string) *entity.ServiceRecord {
		b, err := svc.Create(user.ID, CreateBookingInput{
			MechanicID:    mech.ID,
			Issue:         "Oil service",
			PreferredDate: date,
			PreferredTime: timeOfDay,
		})
		require.NoError(t, err)
		_, err = svc.Accept(mech.ID, b.ID)
		require.NoError(t, err)
		_, rec, err := svc.Complete(mech.ID, b.ID, CompleteBookingInput{
			Service:     "Oil service",
			Cost:        90,
			ServiceType: "oil_service",
		})
		require.NoError(t, err)
		return rec
	}

	first := makeCompleted("2026-09-14", "10:00")
	assert.False(t, first.IsReturnVisit)

	second := makeCompleted("2026-09-20", "10:00")
	assert.True(t, second.IsReturnVisit)
	require.NotNil(t, second.LinkedRecordID)
	assert.Equal(t, first.ID, *second.LinkedRecordID)
}
