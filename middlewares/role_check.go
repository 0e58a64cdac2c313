package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/utils"
)

// RequireRole gates a route group to the given role. Admin passes every
// gate; staff passes the staff gate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		switch role {
		case models.RoleAdmin:
			if userRole != models.RoleAdmin {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
				c.Abort()
				return
			}
		case models.RoleStaff:
			if userRole != models.RoleStaff && userRole != models.RoleAdmin {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("staff access required"))
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
