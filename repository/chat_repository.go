package repository

import (
	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type ChatRepository struct{ DB *gorm.DB }

func NewChatRepository(db *gorm.DB) *ChatRepository { return &ChatRepository{DB: db} }

func (r *ChatRepository) Create(msg *entity.ChatMessage) error {
	return r.DB.Create(msg).Error
}

// Thread returns the whole conversation between an owner and a mechanic, oldest first.
func (r *ChatRepository) Thread(userID, mechanicID uint) ([]entity.ChatMessage, error) {
	var list []entity.ChatMessage
	err := r.DB.
		Where("user_id = ? AND mechanic_id = ?", userID, mechanicID).
		Order("created_at, id").
		Find(&list).Error
	return list, err
}

// RecentForUser / RecentForMechanic feed the conversation list: newest first,
// the service keeps the first row per counterparty.
func (r *ChatRepository) RecentForUser(userID uint, limit int) ([]entity.ChatMessage, error) {
	if limit <= 0 {
		limit = 200
	}
	var list []entity.ChatMessage
	err := r.DB.Preload("Mechanic").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *ChatRepository) RecentForMechanic(mechanicID uint, limit int) ([]entity.ChatMessage, error) {
	if limit <= 0 {
		limit = 200
	}
	var list []entity.ChatMessage
	err := r.DB.Preload("User").
		Where("mechanic_id = ?", mechanicID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
