package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"foodcourt/internal/config" // Token settings
	"foodcourt/internal/domain" // Role type
	"foodcourt/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// JWTAuthMiddleware validates bearer tokens and stores the caller's
// username and role in the request context
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// Username extracts the authenticated caller's username from context
func Username(c *gin.Context) string {
	val, _ := c.Get(ContextUsername)
	username, _ := val.(string)
	return username
}

// CallerRole extracts the authenticated caller's role from context
func CallerRole(c *gin.Context) domain.Role {
	val, _ := c.Get(ContextRole)
	role, _ := val.(domain.Role)
	return role
}
