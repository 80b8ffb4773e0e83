package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BossController struct {
	bossService *service.BossService
}

func NewBossController(bossService *service.BossService) *BossController {
	return &BossController{bossService: bossService}
}

type startBossRequest struct {
	Level int `json:"level" binding:"required,min=1"`
}

func (ctrl *BossController) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req startBossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.bossService.Start(userID, req.Level)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Created(c, result)
}

type bossTurnRequest struct {
	BattleID  uint `json:"battleId" binding:"required"`
	AnswerIdx *int `json:"answerIdx" binding:"required"`
}

func (ctrl *BossController) Turn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req bossTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.bossService.Turn(userID, req.BattleID, *req.AnswerIdx)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, result)
}
