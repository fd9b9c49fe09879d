package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/pkg/mailer"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The pool is pinned to
// one connection so concurrent test goroutines serialize at the driver
// instead of tripping SQLite's lock errors.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.BreakdownToken{},
		&entity.Booking{},
		&entity.BookingEvent{},
		&entity.ServiceRecord{},
		&entity.Feedback{},
		&entity.ChatMessage{},
		&entity.Vehicle{},
		&entity.VehicleReminder{},
		&entity.Payment{},
		&entity.BankAccount{},
		&entity.AlertSetting{},
		&entity.PricingProfile{},
	))
	return db
}

// consoleMailer never dials anywhere; an empty host logs instead of sending.
func consoleMailer() *mailer.Mailer {
	return mailer.New("", 0, "", "", "noreply@mechlink.test")
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		Username: username,
		Email:    username + "@mechlink.test",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
