package entity

import (
	"time"

	"gorm.io/gorm"
)

type ServiceRecord struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"`

	MechanicID uint `json:"mechanicId"`
	Mechanic   User `gorm:"foreignKey:MechanicID" json:"-"`

	Service string    `gorm:"not null" json:"service"` // e.g. "Oil change"
	Notes   string    `json:"notes"`
	Date    time.Time `json:"date"`
	Cost    float64   `json:"cost"`

	// maintenance reminder
	NextServiceDate *time.Time `json:"nextServiceDate,omitempty"`
	RemindAt        *time.Time `json:"remindAt,omitempty"`
	ReminderSent    bool       `gorm:"default:false" json:"reminderSent"`

	// fair-price classification
	ServiceType string   `json:"serviceType,omitempty"`
	CarSize     string   `json:"carSize,omitempty"`
	FairFlag    string   `gorm:"default:unknown" json:"fairFlag"`
	FairMin     *float64 `json:"fairMin,omitempty"`
	FairMax     *float64 `json:"fairMax,omitempty"`

	// return-visit detector
	IsReturnVisit  bool  `gorm:"default:false" json:"isReturnVisit"`
	LinkedRecordID *uint `json:"linkedRecord,omitempty"`
}
