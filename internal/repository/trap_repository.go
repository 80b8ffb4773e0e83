package repository

import (
	"finverse_backend/internal/model"

	"gorm.io/gorm"
)

type TrapRepository struct {
	DB *gorm.DB
}

func NewTrapRepository(db *gorm.DB) *TrapRepository {
	return &TrapRepository{DB: db}
}

func (r *TrapRepository) Create(scenario *model.TrapScenario) error {
	return r.DB.Create(scenario).Error
}

func (r *TrapRepository) FindByIDAndUser(id, userID uint) (*model.TrapScenario, error) {
	var scenario model.TrapScenario
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&scenario).Error
	return &scenario, err
}

func (r *TrapRepository) Save(scenario *model.TrapScenario) error {
	return r.DB.Save(scenario).Error
}
