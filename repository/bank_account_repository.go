package repository

import (
	"errors"

	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type BankAccountRepository struct{ DB *gorm.DB }

func NewBankAccountRepository(db *gorm.DB) *BankAccountRepository {
	return &BankAccountRepository{DB: db}
}

func (r *BankAccountRepository) Create(b *entity.BankAccount) error {
	return r.DB.Create(b).Error
}

// FindByUser returns nil (no error) when the mechanic has no bank details yet.
func (r *BankAccountRepository) FindByUser(userID uint) (*entity.BankAccount, error) {
	var b entity.BankAccount
	err := r.DB.Where("user_id = ?", userID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BankAccountRepository) ExistsForUser(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.BankAccount{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}
