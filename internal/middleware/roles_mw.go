package middleware

import (
	"net/http"

	"volunteer_platform/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid role type in token"})
			return
		}

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// VolunteerMiddleware admits volunteers only; admins have no profile wizard
func VolunteerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleVolunteer)
}

// VolunteerOrAdminMiddleware admits both roles; survey ownership is enforced by the service
func VolunteerOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleVolunteer, model.RoleAdmin)
}
