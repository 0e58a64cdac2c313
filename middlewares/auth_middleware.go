package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hatchlab/hatchery-backend/utils"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the context as user_id and role.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user ID in token"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// CurrentUser reads the authenticated identity set by AuthMiddleware.
func CurrentUser(c *gin.Context) (userID uint, role string, ok bool) {
	idVal, exists := c.Get("user_id")
	if !exists {
		return 0, "", false
	}
	id, ok := idVal.(uint)
	if !ok {
		return 0, "", false
	}
	roleVal, _ := c.Get("role")
	roleStr, _ := roleVal.(string)
	return id, roleStr, true
}
