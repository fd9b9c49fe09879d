package repository

import (
	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) Create(p *entity.Payment) error {
	return r.DB.Create(p).Error
}

func (r *PaymentRepository) ListForUser(userID uint) ([]entity.Payment, error) {
	var list []entity.Payment
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}
