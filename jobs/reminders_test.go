package jobs

import (
	"fmt"
	"testing"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/pkg/mailer"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newJobDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:jobs_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.ServiceRecord{}, &entity.AlertSetting{}))
	return db
}

func TestReminderSweepMarksSent(t *testing.T) {
	db := newJobDB(t)
	job := NewReminderJob(
		repository.NewServiceRecordRepository(db),
		repository.NewAlertSettingRepository(db),
		mailer.New("", 0, "", "", "noreply@mechlink.test"),
	)

	user := &entity.User{Username: "driver", Email: "driver@mechlink.test", Password: "x", Role: "user"}
	require.NoError(t, db.Create(user).Error)

	now := time.Now()
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 10)

	due := &entity.ServiceRecord{UserID: user.ID, Service: "Oil service", Date: now, RemindAt: &past}
	notYet := &entity.ServiceRecord{UserID: user.ID, Service: "Brakes", Date: now, RemindAt: &future}
	require.NoError(t, db.Create(due).Error)
	require.NoError(t, db.Create(notYet).Error)

	job.RunOnce(now)

	var gotDue entity.ServiceRecord
	require.NoError(t, db.First(&gotDue, due.ID).Error)
	assert.True(t, gotDue.ReminderSent)

	var gotNotYet entity.ServiceRecord
	require.NoError(t, db.First(&gotNotYet, notYet.ID).Error)
	assert.False(t, gotNotYet.ReminderSent)
}

func TestReminderSweepMarksDisabledUsersToo(t *testing.T) {
	db := newJobDB(t)
	job := NewReminderJob(
		repository.NewServiceRecordRepository(db),
		repository.NewAlertSettingRepository(db),
		mailer.New("", 0, "", "", "noreply@mechlink.test"),
	)

	user := &entity.User{Username: "driver", Email: "driver@mechlink.test", Password: "x", Role: "user"}
	require.NoError(t, db.Create(user).Error)
	_, err := repository.NewAlertSettingRepository(db).Upsert(user.ID, "", false)
	require.NoError(t, err)

	now := time.Now()
	past := now.AddDate(0, 0, -1)
	rec := &entity.ServiceRecord{UserID: user.ID, Service: "Oil service", Date: now, RemindAt: &past}
	require.NoError(t, db.Create(rec).Error)

	job.RunOnce(now)

	// marked sent even without an email, or it would come due every day
	var reloaded entity.ServiceRecord
	require.NoError(t, db.First(&reloaded, rec.ID).Error)
	assert.True(t, reloaded.ReminderSent)
}
