package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrapController struct {
	trapService *service.TrapService
}

func NewTrapController(trapService *service.TrapService) *TrapController {
	return &TrapController{trapService: trapService}
}

type startTrapRequest struct {
	ScenarioType string `json:"scenarioType" binding:"required"`
}

func (ctrl *TrapController) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req startTrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.trapService.Start(userID, req.ScenarioType)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Created(c, result)
}

type trapChooseRequest struct {
	Choice *int `json:"choice" binding:"required"`
}

func (ctrl *TrapController) Choose(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scenarioID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req trapChooseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.trapService.Choose(userID, scenarioID, *req.Choice)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, result)
}

func (ctrl *TrapController) Types(c *gin.Context) {
	util.Success(c, ctrl.trapService.ListTypes())
}
