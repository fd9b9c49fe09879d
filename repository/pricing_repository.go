package repository

import (
	"errors"

	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type PricingRepository struct{ DB *gorm.DB }

func NewPricingRepository(db *gorm.DB) *PricingRepository { return &PricingRepository{DB: db} }

// FindProfile prefers an exact size match, then falls back to "any".
// Returns nil (no error) when no profile covers the service type.
func (r *PricingRepository) FindProfile(serviceType, carSize string) (*entity.PricingProfile, error) {
	if serviceType == "" {
		return nil, nil
	}
	if carSize == "" {
		carSize = "any"
	}

	var p entity.PricingProfile
	err := r.DB.
		Where("service_type = ? AND car_size IN ?", serviceType, []string{carSize, "any"}).
		Order("CASE car_size WHEN 'any' THEN 1 ELSE 0 END").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
