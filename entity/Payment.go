package entity

import (
	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"`

	MechanicID *uint `json:"mechanicId,omitempty"`
	Mechanic   *User `gorm:"foreignKey:MechanicID" json:"-"`

	BookingID *uint    `json:"bookingId,omitempty"`
	Booking   *Booking `json:"-"`

	Amount   int64  `gorm:"not null" json:"amount"` // pence
	Currency string `gorm:"default:gbp" json:"currency"`
	Kind     string `gorm:"default:deposit" json:"kind"` // deposit | final
	Status   string `gorm:"default:created" json:"status"`

	Provider    string `gorm:"default:stripe" json:"provider"`
	ProviderRef string `json:"providerRef"` // payment intent id or generated reference
}
