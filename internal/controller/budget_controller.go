package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BudgetController struct {
	budgetService *service.BudgetService
}

func NewBudgetController(budgetService *service.BudgetService) *BudgetController {
	return &BudgetController{budgetService: budgetService}
}

type startBudgetRequest struct {
	MonthlyIncome float64 `json:"monthlyIncome" binding:"required,gt=0"`
}

func (ctrl *BudgetController) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req startBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.budgetService.Start(userID, req.MonthlyIncome)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Created(c, result)
}

type submitBudgetRequest struct {
	Allocations map[string]float64 `json:"allocations" binding:"required"`
}

func (ctrl *BudgetController) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scenarioID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req submitBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.budgetService.SubmitAllocation(userID, scenarioID, req.Allocations)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, result)
}
