package entity

import (
	"gorm.io/gorm"
)

// Breakdown token lifecycle. A token never goes back to open
// and keeps the mechanic who closed it (accept or reject).
const (
	TokenOpen     = "open"
	TokenAccepted = "accepted"
	TokenResolved = "resolved"
	TokenRejected = "rejected"
)

type BreakdownToken struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"` // preload for requester contact details

	// set on accept or reject, nil while open
	MechanicID *uint `json:"mechanicId,omitempty"`
	Mechanic   *User `gorm:"foreignKey:MechanicID" json:"-"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	Status string `gorm:"not null;default:open" json:"status"`
	Note   string `json:"note"`
}
