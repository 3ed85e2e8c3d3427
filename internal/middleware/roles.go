package middleware

import (
	"net/http" // HTTP status codes

	"foodcourt/internal/domain"     // Role type and sentinels
	"foodcourt/internal/repository" // User lookups

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RoleRequired allows the request through only when the caller carries
// one of the given roles. Must run after JWTAuthMiddleware.
func RoleRequired(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerRole(c)
		for _, role := range roles {
			if caller == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrAuthorizationDenied.Error()})
	}
}

// StaffOnly gates the restaurant-staff surface
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerRole(c).IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrAuthorizationDenied.Error()})
			return
		}
		c.Next()
	}
}

// ActiveAccount re-checks the caller against the database so a
// deactivated account loses access at once instead of at token expiry.
// Must run after JWTAuthMiddleware.
func ActiveAccount(db *gorm.DB) gin.HandlerFunc {
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		user, err := users.FindByUsername(Username(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown account"})
			return
		}
		if !user.IsActivated {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}
		c.Next()
	}
}
