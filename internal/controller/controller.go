package controller

import (
	"strconv"

	"finverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// paramID parses a numeric path parameter; ok is false after an error
// response has already been written.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// currentUserID pulls the authenticated user id from the JWT claims; ok is
// false after a 401 has already been written.
func currentUserID(c *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return 0, false
	}
	return claims.UserID, true
}
