package repository

import (
	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByLogin matches either email or username, whichever is given.
func (r *UserRepository) FindByLogin(email, username string) (*entity.User, error) {
	var u entity.User
	q := r.DB
	if email != "" {
		q = q.Where("email = ?", email)
	} else {
		q = q.Where("username = ?", username)
	}
	if err := q.First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByUsernameOrEmail(username, email string) (int64, error) {
	var count int64
	q := r.DB.Model(&entity.User{}).Where("username = ?", username)
	if email != "" {
		q = q.Or("email = ?", email)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) IsMechanic(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).
		Where("id = ? AND role = ?", id, "mechanic").
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ListMechanics() ([]entity.User, error) {
	var list []entity.User
	err := r.DB.Where("role = ?", "mechanic").Find(&list).Error
	return list, err
}

// SearchMechanics filters by name/username/garage substring, case-insensitive.
func (r *UserRepository) SearchMechanics(q string) ([]entity.User, error) {
	db := r.DB.Where("role = ?", "mechanic")
	if q != "" {
		like := "%" + q + "%"
		db = db.Where(
			"first_name LIKE ? OR last_name LIKE ? OR username LIKE ? OR garage_name LIKE ?",
			like, like, like, like,
		)
	}
	var list []entity.User
	err := db.Order("garage_name, first_name").Find(&list).Error
	return list, err
}
