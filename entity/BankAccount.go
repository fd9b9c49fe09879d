package entity

import (
	"gorm.io/gorm"
)

type BankAccount struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	AccountName   string `gorm:"not null" json:"accountName"`
	AccountNumber string `gorm:"not null" json:"-"` // kept as string, masked on output
	SortCode      string `gorm:"not null" json:"sortCode"` // "12-34-56"
}
