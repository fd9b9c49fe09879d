package entity

import (
	"gorm.io/gorm"
)

// Per-user reminder preferences. A missing row means reminders are
// enabled and go to the login email.
type AlertSetting struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	// optional override address for reminder emails
	Email string `json:"email"`

	EmailReminders bool `gorm:"default:true" json:"emailReminders"`
}
