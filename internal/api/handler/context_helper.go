package handler

import (
	"github.com/alexanderramin/studyplan/internal/api/middleware"
	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/gin-gonic/gin"
)

// MustGetUserID reads the caller set by JWTAuth. On false a 401 has been
// written and the handler should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		response.Unauthorized(c, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "unauthenticated")
		return "", false
	}
	return s, true
}
