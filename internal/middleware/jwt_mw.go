package middleware

import (
	"net/http"
	"strings"

	"volunteer_platform/internal/model"
	"volunteer_platform/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"
)

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(AuthUserKey, principal.UserID)
		c.Set(AuthRoleKey, principal.Role)

		c.Next()
	}
}

// PrincipalFromContext returns the caller resolved by JWTAuthMiddleware
func PrincipalFromContext(c *gin.Context) (model.Principal, bool) {
	userVal, ok := c.Get(AuthUserKey)
	if !ok {
		return model.Principal{}, false
	}
	userID, ok := userVal.(uuid.UUID)
	if !ok {
		return model.Principal{}, false
	}
	role, _ := c.Get(AuthRoleKey)
	roleStr, ok := role.(string)
	if !ok {
		return model.Principal{}, false
	}
	return model.Principal{UserID: userID, Role: roleStr}, true
}
