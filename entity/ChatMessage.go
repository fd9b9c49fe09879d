package entity

import (
	"gorm.io/gorm"
)

// A conversation is keyed (UserID, MechanicID); From says who sent this one.
type ChatMessage struct {
	gorm.Model
	UserID uint `gorm:"index:idx_chat_pair" json:"userId"` // always the car owner
	User   User `json:"-"`

	MechanicID uint `gorm:"index:idx_chat_pair" json:"mechanicId"` // always the mechanic
	Mechanic   User `gorm:"foreignKey:MechanicID" json:"-"`

	FromID uint `json:"fromId"`
	From   User `gorm:"foreignKey:FromID" json:"-"`

	Text string `gorm:"not null" json:"text"`
}
