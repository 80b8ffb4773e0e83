package repository

import (
	"finverse_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type DuelRepository struct {
	DB *gorm.DB
}

func NewDuelRepository(db *gorm.DB) *DuelRepository {
	return &DuelRepository{DB: db}
}

func (r *DuelRepository) Create(duel *model.Duel) error {
	return r.DB.Create(duel).Error
}

func (r *DuelRepository) FindByID(id uint) (*model.Duel, error) {
	var duel model.Duel
	err := r.DB.First(&duel, id).Error
	return &duel, err
}

// FindByInviteCode matches codes case-insensitively; codes are stored
// uppercase.
func (r *DuelRepository) FindByInviteCode(code string) (*model.Duel, error) {
	var duel model.Duel
	err := r.DB.Where("invite_code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&duel).Error
	return &duel, err
}

func (r *DuelRepository) Save(duel *model.Duel) error {
	return r.DB.Save(duel).Error
}

func (r *DuelRepository) ListByUser(userID uint, limit int) ([]model.Duel, error) {
	var duels []model.Duel
	err := r.DB.Where("challenger_id = ? OR opponent_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&duels).Error
	return duels, err
}
