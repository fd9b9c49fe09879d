package repository

import (
	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type VehicleRepository struct{ DB *gorm.DB }

func NewVehicleRepository(db *gorm.DB) *VehicleRepository { return &VehicleRepository{DB: db} }

func (r *VehicleRepository) Create(v *entity.Vehicle) error {
	return r.DB.Create(v).Error
}

func (r *VehicleRepository) ListForUser(userID uint) ([]entity.Vehicle, error) {
	var list []entity.Vehicle
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *VehicleRepository) GetForUser(id, userID uint) (*entity.Vehicle, error) {
	var v entity.Vehicle
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Vehicle{}).Where("id = ?", id).Updates(updates).Error
}
