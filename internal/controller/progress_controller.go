package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	progression *service.ProgressionService
}

func NewProgressController(progression *service.ProgressionService) *ProgressController {
	return &ProgressController{progression: progression}
}

// CompleteLesson is idempotent: repeating it returns the original completion
// without granting XP twice.
func (ctrl *ProgressController) CompleteLesson(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	lessonID, ok := paramID(c, "lessonId")
	if !ok {
		return
	}

	result, err := ctrl.progression.CompleteLesson(userID, lessonID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, result)
}

// Summary godoc
// @Summary Progression dashboard summary
// @Tags progress
// @Produce json
// @Router /api/progress/summary [get]
func (ctrl *ProgressController) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary, err := ctrl.progression.Summary(userID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, summary)
}
