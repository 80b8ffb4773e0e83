package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	gateway *service.AIGatewayService
}

func NewAIController(gateway *service.AIGatewayService) *AIController {
	return &AIController{gateway: gateway}
}

type coachRequest struct {
	LessonID uint   `json:"lessonId" binding:"required"`
	Message  string `json:"message" binding:"required,max=2000"`
}

// Coach answers a lesson-scoped question; on upstream failure the reply
// degrades to a canned message instead of erroring.
func (ctrl *AIController) Coach(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req coachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	reply, err := ctrl.gateway.CoachChat(c.Request.Context(), userID, req.LessonID, req.Message)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, reply)
}

type regenerateRequest struct {
	LessonID uint              `json:"lessonId" binding:"required"`
	Params   map[string]string `json:"params"`
}

func (ctrl *AIController) RegenerateLesson(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	content, err := ctrl.gateway.RegenerateLesson(c.Request.Context(), userID, req.LessonID, req.Params)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, content)
}

type lifeExampleRequest struct {
	LessonID uint `json:"lessonId" binding:"required"`
}

func (ctrl *AIController) LifeExample(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req lifeExampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	example, err := ctrl.gateway.GenerateLifeExample(c.Request.Context(), userID, req.LessonID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, example)
}

type dictionaryRequest struct {
	Term     string `json:"term" binding:"required,max=200"`
	LessonID *uint  `json:"lessonId"`
}

func (ctrl *AIController) Dictionary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dictionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	entry, err := ctrl.gateway.LookupTerm(c.Request.Context(), userID, req.Term, req.LessonID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, entry)
}
