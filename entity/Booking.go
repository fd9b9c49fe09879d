package entity

import (
	"gorm.io/gorm"
)

const (
	BookingRequested           = "requested"
	BookingAccepted            = "accepted"
	BookingCompleted           = "completed"
	BookingCancelledByUser     = "cancelled_by_user"
	BookingCancelledByMechanic = "cancelled_by_mechanic"
	BookingNoShowUser          = "no_show_user"
)

type Booking struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"`

	MechanicID uint `json:"mechanicId"`
	Mechanic   User `gorm:"foreignKey:MechanicID" json:"-"`

	Issue         string `gorm:"not null" json:"issue"`
	PreferredDate string `gorm:"not null" json:"preferredDate"` // YYYY-MM-DD
	PreferredTime string `gorm:"not null" json:"preferredTime"` // HH:mm
	Notes         string `json:"notes"`

	Status string `gorm:"not null;default:requested" json:"status"`

	// evidence timeline for complaints / audit
	Events []BookingEvent `gorm:"foreignKey:BookingID" json:"events,omitempty"`

	// fair-price classification, filled on completion
	ServiceType   string  `json:"serviceType,omitempty"`
	CarSize       string  `json:"carSize,omitempty"`
	EstimatedCost float64 `json:"estimatedCost,omitempty"`

	FairFlag string   `gorm:"default:unknown" json:"fairFlag"`
	FairMin  *float64 `json:"fairMin,omitempty"`
	FairMax  *float64 `json:"fairMax,omitempty"`
}
