package repository

import (
	"errors"
	"time"

	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type VehicleReminderRepository struct{ DB *gorm.DB }

func NewVehicleReminderRepository(db *gorm.DB) *VehicleReminderRepository {
	return &VehicleReminderRepository{DB: db}
}

// FindByUser returns nil (no error) when the user has no reminder profile yet.
func (r *VehicleReminderRepository) FindByUser(userID uint) (*entity.VehicleReminder, error) {
	var v entity.VehicleReminder
	err := r.DB.Where("user_id = ?", userID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleReminderRepository) Upsert(userID uint, registration string, mot, insurance, tax *time.Time) (*entity.VehicleReminder, error) {
	var v entity.VehicleReminder
	err := r.DB.Where(entity.VehicleReminder{UserID: userID}).
		Assign(map[string]any{
			"registration":     registration,
			"mot_expiry":       mot,
			"insurance_expiry": insurance,
			"tax_expiry":       tax,
		}).
		FirstOrCreate(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}
