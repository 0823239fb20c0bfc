package middleware

import (
	"net/http"
	"strings"

	"crestgold_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates Bearer tokens and puts session_id and role into the
// gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		sessionID, role, err := service.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("session_id", sessionID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireOperator gates the admin surface on an operator-role token.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != service.RoleOperator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "operator access required"})
			return
		}
		c.Next()
	}
}
