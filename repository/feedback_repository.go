package repository

import (
	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type FeedbackRepository struct{ DB *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository { return &FeedbackRepository{DB: db} }

func (r *FeedbackRepository) Create(fb *entity.Feedback) error {
	return r.DB.Create(fb).Error
}

func (r *FeedbackRepository) ListForMechanic(mechanicID uint, limit int) ([]entity.Feedback, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []entity.Feedback
	err := r.DB.Preload("User").
		Where("mechanic_id = ?", mechanicID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// Summary returns average rating and count for a mechanic; avg is nil with no ratings.
func (r *FeedbackRepository) Summary(mechanicID uint) (*float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := r.DB.Model(&entity.Feedback{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("mechanic_id = ?", mechanicID).
		Scan(&row).Error
	if err != nil {
		return nil, 0, err
	}
	return row.Avg, row.Count, nil
}

// RatedSourceIDs returns the source ids the user has already rated for a source type.
func (r *FeedbackRepository) RatedSourceIDs(userID uint, sourceType string) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&entity.Feedback{}).
		Where("user_id = ? AND source_type = ?", userID, sourceType).
		Pluck("source_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
