package entity

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"`

	Make    string `gorm:"not null" json:"make"`
	VModel  string `gorm:"column:vehicle_model;not null" json:"model"`
	Year    int    `gorm:"not null" json:"year"`
	Mileage int    `gorm:"default:0" json:"mileage"` // km

	LastServiceDate *time.Time `json:"lastServiceDate,omitempty"`
	HealthScore     int        `gorm:"default:100" json:"healthScore"`

	// UK compliance
	MotDueDate       *time.Time `json:"motDueDate,omitempty"`
	InsuranceDueDate *time.Time `json:"insuranceDueDate,omitempty"`
	TaxDueDate       *time.Time `json:"taxDueDate,omitempty"`
}
