package repository

import (
	"time"

	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type BookingRepository struct{ DB *gorm.DB }

func NewBookingRepository(db *gorm.DB) *BookingRepository { return &BookingRepository{DB: db} }

func (r *BookingRepository) Create(tx *gorm.DB, b *entity.Booking) error {
	return tx.Create(b).Error
}

func (r *BookingRepository) Get(id uint) (*entity.Booking, error) {
	var b entity.Booking
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetWithUser(id uint) (*entity.Booking, error) {
	var b entity.Booking
	if err := r.DB.Preload("User").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// HasClash reports whether the mechanic already has a live booking at that slot.
func (r *BookingRepository) HasClash(mechanicID uint, date, timeOfDay string) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Booking{}).
		Where("mechanic_id = ? AND preferred_date = ? AND preferred_time = ?", mechanicID, date, timeOfDay).
		Where("status IN ?", []string{entity.BookingRequested, entity.BookingAccepted}).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatusFromTo is the guarded transition: first writer wins.
func (r *BookingRepository) UpdateStatusFromTo(tx *gorm.DB, bookingID uint, from []string, to string) (bool, error) {
	res := tx.Model(&entity.Booking{}).
		Where("id = ? AND status IN ?", bookingID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingRepository) UpdatePricing(tx *gorm.DB, bookingID uint, updates map[string]any) error {
	return tx.Model(&entity.Booking{}).Where("id = ?", bookingID).Updates(updates).Error
}

func (r *BookingRepository) AddEvent(tx *gorm.DB, bookingID uint, eventType, byRole, note string) error {
	ev := entity.BookingEvent{
		BookingID: bookingID,
		At:        time.Now(),
		Type:      eventType,
		ByRole:    byRole,
		Note:      note,
	}
	return tx.Create(&ev).Error
}

func (r *BookingRepository) ListForUser(userID uint) ([]entity.Booking, error) {
	var list []entity.Booking
	err := r.DB.Preload("Mechanic").Preload("Events").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *BookingRepository) ListForMechanic(mechanicID uint) ([]entity.Booking, error) {
	var list []entity.Booking
	err := r.DB.Preload("User").Preload("Events").
		Where("mechanic_id = ?", mechanicID).
		Order("preferred_date, preferred_time").
		Find(&list).Error
	return list, err
}

func (r *BookingRepository) ListCompletedForUser(userID uint) ([]entity.Booking, error) {
	var list []entity.Booking
	err := r.DB.
		Where("user_id = ? AND status = ?", userID, entity.BookingCompleted).
		Find(&list).Error
	return list, err
}
