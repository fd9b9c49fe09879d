package configs

import (
	"github.com/FawazNazmo/MechLink/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {

	// Migrate the schema
	db.AutoMigrate(
		&entity.User{},
		&entity.BreakdownToken{},
		&entity.Booking{}, &entity.BookingEvent{},
		&entity.ServiceRecord{},
		&entity.Feedback{},
		&entity.ChatMessage{},
		&entity.Vehicle{}, &entity.VehicleReminder{},
		&entity.Payment{}, &entity.BankAccount{},
		&entity.AlertSetting{},
		&entity.PricingProfile{},
	)

	// tokens are filtered by status then boxed by coordinates on every poll
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tokens_status_lat_lng ON breakdown_tokens(status, lat, lng)")
}
