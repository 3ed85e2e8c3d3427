package api

import (
	"context"  // Context for cache operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"foodcourt/internal/domain"     // Domain models
	"foodcourt/internal/repository" // Persistence gateways
	"foodcourt/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// userListCacheKey caches the account listing for super admins
const userListCacheKey = "admin:users"

// ListUsersHandler returns every account with its role association,
// served from cache when warm (super admin only)
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.User
		if hit, err := utils.GetCache(ctx, rdb, userListCacheKey, &cached); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"count": len(cached), "users": cached, "cached": true})
			return
		}
		var users []domain.User
		if err := db.Preload("Staff").Preload("Customer").Order("id").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
			return
		}
		if err := utils.SetCache(ctx, rdb, userListCacheKey, users, time.Minute); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache user list")
		}
		c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
	}
}

// DeactivateUserHandler soft-deactivates an account: the row stays, the
// account can no longer log in (super admin only)
func DeactivateUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		userID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		if _, err := users.FindByID(userID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := users.Deactivate(userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, userListCacheKey)
		logrus.WithField("user_id", userID).Info("Account deactivated")
		c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
	}
}
