package middleware

import (
	"errors"
	"strings"

	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/auth"
	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// TokenParser is satisfied by *auth.Manager.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// JWTAuth requires "Authorization: Bearer <token>" and stores the user id
// under UserIDKey.
func JWTAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := parser.Parse(parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token expired"
			}
			response.Unauthorized(c, msg)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}
