package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DuelController struct {
	duelService *service.DuelService
}

func NewDuelController(duelService *service.DuelService) *DuelController {
	return &DuelController{duelService: duelService}
}

type createDuelRequest struct {
	Level int `json:"level" binding:"required,min=1,max=5"`
}

func (ctrl *DuelController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createDuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	duel, err := ctrl.duelService.Create(userID, req.Level)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Created(c, duel)
}

type joinDuelRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

func (ctrl *DuelController) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req joinDuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	duel, err := ctrl.duelService.Join(userID, req.InviteCode)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, duel)
}

type submitScoreRequest struct {
	Score *int `json:"score" binding:"required"`
}

func (ctrl *DuelController) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	duelID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req submitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	duel, err := ctrl.duelService.SubmitScore(userID, duelID, *req.Score)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, duel)
}

func (ctrl *DuelController) ListMy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	duels, err := ctrl.duelService.ListMy(userID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, duels)
}
