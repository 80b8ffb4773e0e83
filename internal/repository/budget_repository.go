package repository

import (
	"finverse_backend/internal/model"

	"gorm.io/gorm"
)

type BudgetRepository struct {
	DB *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{DB: db}
}

func (r *BudgetRepository) Create(scenario *model.BudgetScenario) error {
	return r.DB.Create(scenario).Error
}

func (r *BudgetRepository) FindByIDAndUser(id, userID uint) (*model.BudgetScenario, error) {
	var scenario model.BudgetScenario
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&scenario).Error
	return &scenario, err
}

func (r *BudgetRepository) Save(scenario *model.BudgetScenario) error {
	return r.DB.Save(scenario).Error
}
