package repository

import (
	"errors"

	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type AlertSettingRepository struct{ DB *gorm.DB }

func NewAlertSettingRepository(db *gorm.DB) *AlertSettingRepository {
	return &AlertSettingRepository{DB: db}
}

// FindByUser returns nil (no error) when the user has no settings row.
func (r *AlertSettingRepository) FindByUser(userID uint) (*entity.AlertSetting, error) {
	var s entity.AlertSetting
	err := r.DB.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AlertSettingRepository) Upsert(userID uint, email string, emailReminders bool) (*entity.AlertSetting, error) {
	var s entity.AlertSetting
	err := r.DB.Where(entity.AlertSetting{UserID: userID}).
		Assign(map[string]any{"email": email, "email_reminders": emailReminders}).
		FirstOrCreate(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
