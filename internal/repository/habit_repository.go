package repository

import (
	"finverse_backend/internal/model"

	"gorm.io/gorm"
)

type HabitRepository struct {
	DB *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

func (r *HabitRepository) Create(habit *model.HabitTracker) error {
	return r.DB.Create(habit).Error
}

func (r *HabitRepository) FindByIDAndUser(id, userID uint) (*model.HabitTracker, error) {
	var habit model.HabitTracker
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error
	return &habit, err
}

func (r *HabitRepository) Save(habit *model.HabitTracker) error {
	return r.DB.Save(habit).Error
}

func (r *HabitRepository) Delete(habit *model.HabitTracker) error {
	return r.DB.Delete(habit).Error
}

func (r *HabitRepository) CountActiveByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.HabitTracker{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *HabitRepository) ListByUser(userID uint) ([]model.HabitTracker, error) {
	var habits []model.HabitTracker
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&habits).Error
	return habits, err
}
