package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	habitService *service.HabitService
}

func NewHabitController(habitService *service.HabitService) *HabitController {
	return &HabitController{habitService: habitService}
}

func (ctrl *HabitController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := ctrl.habitService.List(userID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, list)
}

type createHabitRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Emoji      string `json:"emoji" binding:"max=50"`
	TargetDays int    `json:"targetDays"`
}

func (ctrl *HabitController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	habit, err := ctrl.habitService.Create(userID, req.Name, req.Emoji, req.TargetDays)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Created(c, habit)
}

func (ctrl *HabitController) CheckIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	habitID, ok := paramID(c, "id")
	if !ok {
		return
	}

	habit, err := ctrl.habitService.CheckIn(userID, habitID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, habit)
}

func (ctrl *HabitController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	habitID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.habitService.Delete(userID, habitID); err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}
