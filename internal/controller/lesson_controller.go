package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	lessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// List godoc
// @Summary Course catalog grouped by level and module
// @Tags lessons
// @Produce json
// @Router /api/lessons [get]
func (ctrl *LessonController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groups, err := ctrl.lessonService.List(userID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, groups)
}

func (ctrl *LessonController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	lessonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	lesson, content, err := ctrl.lessonService.Get(userID, lessonID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, gin.H{"lesson": lesson, "content": content})
}

func (ctrl *LessonController) GenerateContent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	lessonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	content, err := ctrl.lessonService.GenerateContent(c.Request.Context(), userID, lessonID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, content)
}

func (ctrl *LessonController) GetContent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	lessonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	content, err := ctrl.lessonService.GetContent(userID, lessonID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, content)
}

func (ctrl *LessonController) DeleteContent(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	lessonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.lessonService.DeleteContent(lessonID); err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}

func (ctrl *LessonController) Regenerate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	lessonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	content, err := ctrl.lessonService.Regenerate(c.Request.Context(), userID, lessonID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, content)
}
