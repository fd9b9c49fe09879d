package entity

import (
	"time"

	"gorm.io/gorm"
)

// One reminder profile per user: key legal dates for their vehicle.
type VehicleReminder struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	Registration string `json:"registration"`

	MotExpiry       *time.Time `json:"motExpiry,omitempty"`
	InsuranceExpiry *time.Time `json:"insuranceExpiry,omitempty"`
	TaxExpiry       *time.Time `json:"taxExpiry,omitempty"`
}
