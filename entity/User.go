package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	Email       string `gorm:"uniqueIndex" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:user" json:"role"` // user | mechanic

	// user-specific
	CarDetails string `json:"carDetails,omitempty"`

	// mechanic-specific
	GarageName    string   `json:"garageName,omitempty"`
	GarageAddress string   `json:"garageAddress,omitempty"`
	GarageLat     *float64 `json:"garageLat,omitempty"`
	GarageLng     *float64 `json:"garageLng,omitempty"`

	// mechanic's live position, saved from the dashboard
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`

	// weekly schedule JSON: {"mon":{"start":"09:00","end":"17:00","on":true},...}
	Schedule string `gorm:"type:text" json:"-"`

	// Relations — preload only when needed
	Tokens         []BreakdownToken `gorm:"foreignKey:UserID" json:"-"`
	Bookings       []Booking        `gorm:"foreignKey:UserID" json:"-"`
	Feedbacks      []Feedback       `gorm:"foreignKey:UserID" json:"-"`
	Vehicles       []Vehicle        `gorm:"foreignKey:UserID" json:"-"`
	ServiceRecords []ServiceRecord  `gorm:"foreignKey:UserID" json:"-"`
}
