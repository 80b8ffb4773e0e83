package controller

import (
	"finverse_backend/internal/service"
	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	authService *service.AuthService
}

func NewProfileController(authService *service.AuthService) *ProfileController {
	return &ProfileController{authService: authService}
}

// Me returns the caller's profile with embedded progression stats.
func (ctrl *ProfileController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := ctrl.authService.GetProfile(userID)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, profile)
}

type updateProfileRequest struct {
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	AvatarStyle *string `json:"avatarStyle"`
}

func (ctrl *ProfileController) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.Name, req.Bio, req.AvatarStyle)
	if err != nil {
		util.ErrorResponse(c, err)
		return
	}
	util.Success(c, user)
}
