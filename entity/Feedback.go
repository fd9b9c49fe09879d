package entity

import (
	"gorm.io/gorm"
)

type Feedback struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex:idx_feedback_source" json:"userId"`
	User   User `json:"-"`

	MechanicID uint `json:"mechanicId"`
	Mechanic   User `gorm:"foreignKey:MechanicID" json:"-"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `json:"comment"`

	// optional linkage so a job can be rated only once
	SourceType string `gorm:"uniqueIndex:idx_feedback_source" json:"sourceType,omitempty"` // token | booking
	SourceID   uint   `gorm:"uniqueIndex:idx_feedback_source" json:"sourceId,omitempty"`
}
