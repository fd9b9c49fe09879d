package entity

import (
	"time"

	"gorm.io/gorm"
)

type BookingEvent struct {
	gorm.Model
	BookingID uint      `json:"bookingId"`
	At        time.Time `json:"at"`
	Type      string    `gorm:"not null" json:"type"` // created, accepted, completed, ...
	ByRole    string    `gorm:"not null" json:"byRole"` // user | mechanic | system
	Note      string    `json:"note"`
}
