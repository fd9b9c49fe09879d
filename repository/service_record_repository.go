package repository

import (
	"time"

	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type ServiceRecordRepository struct{ DB *gorm.DB }

func NewServiceRecordRepository(db *gorm.DB) *ServiceRecordRepository {
	return &ServiceRecordRepository{DB: db}
}

func (r *ServiceRecordRepository) Create(tx *gorm.DB, rec *entity.ServiceRecord) error {
	return tx.Create(rec).Error
}

func (r *ServiceRecordRepository) ListForUser(userID uint) ([]entity.ServiceRecord, error) {
	var list []entity.ServiceRecord
	err := r.DB.Preload("Mechanic").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (r *ServiceRecordRepository) ListForMechanic(mechanicID uint) ([]entity.ServiceRecord, error) {
	var list []entity.ServiceRecord
	err := r.DB.Preload("User").
		Where("mechanic_id = ?", mechanicID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}

// PreviousSameType finds the latest earlier record of the same service type
// for the same user inside the window, for the return-visit detector.
func (r *ServiceRecordRepository) PreviousSameType(tx *gorm.DB, userID uint, serviceType string, excludeID uint, since time.Time) (*entity.ServiceRecord, error) {
	var rec entity.ServiceRecord
	err := tx.
		Where("user_id = ? AND service_type = ? AND id <> ?", userID, serviceType, excludeID).
		Where("date >= ?", since).
		Order("date DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ServiceRecordRepository) MarkReturnVisit(tx *gorm.DB, recordID, linkedID uint) error {
	return tx.Model(&entity.ServiceRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]any{"is_return_visit": true, "linked_record_id": linkedID}).Error
}

// DueReminders lists unsent reminders whose remind_at has passed.
func (r *ServiceRecordRepository) DueReminders(now time.Time, limit int) ([]entity.ServiceRecord, error) {
	if limit <= 0 {
		limit = 200
	}
	var list []entity.ServiceRecord
	err := r.DB.Preload("User").
		Where("reminder_sent = ? AND remind_at IS NOT NULL AND remind_at <= ?", false, now).
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *ServiceRecordRepository) MarkReminderSent(id uint) error {
	return r.DB.Model(&entity.ServiceRecord{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

func (r *ServiceRecordRepository) RecentForVehicleOwner(userID uint, limit int) ([]entity.ServiceRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []entity.ServiceRecord
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
