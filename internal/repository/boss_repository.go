package repository

import (
	"finverse_backend/internal/model"

	"gorm.io/gorm"
)

type BossRepository struct {
	DB *gorm.DB
}

func NewBossRepository(db *gorm.DB) *BossRepository {
	return &BossRepository{DB: db}
}

func (r *BossRepository) Create(battle *model.BossBattle) error {
	return r.DB.Create(battle).Error
}

// FindByIDAndUser scopes lookup to the owning user.
func (r *BossRepository) FindByIDAndUser(id, userID uint) (*model.BossBattle, error) {
	var battle model.BossBattle
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&battle).Error
	return &battle, err
}

func (r *BossRepository) Save(battle *model.BossBattle) error {
	return r.DB.Save(battle).Error
}

func (r *BossRepository) ListByUser(userID uint, limit int) ([]model.BossBattle, error) {
	var battles []model.BossBattle
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&battles).Error
	return battles, err
}
