package api

import (
	"context"  // Context for cache operations
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"foodcourt/internal/domain"     // Domain models
	"foodcourt/internal/repository" // Persistence gateways
	"foodcourt/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache TTLs for the public read surface
const (
	restaurantCacheTTL = 5 * time.Minute
	menuCacheTTL       = 2 * time.Minute
)

// HealthHandler reports liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ListRestaurantsHandler returns every published restaurant, served
// from cache when warm
func ListRestaurantsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.Restaurant
		if hit, err := utils.GetCache(ctx, rdb, utils.RestaurantListCacheKey, &cached); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"restaurants": cached, "cached": true})
			return
		}
		list, err := restaurants.ListPublished()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list restaurants"})
			return
		}
		if err := utils.SetCache(ctx, rdb, utils.RestaurantListCacheKey, list, restaurantCacheTTL); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache restaurant list")
		}
		c.JSON(http.StatusOK, gin.H{"restaurants": list})
	}
}

// GetRestaurantHandler returns one published restaurant with its hours
// and closing dates, served from cache when warm
func GetRestaurantHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	return func(c *gin.Context) {
		restaurantID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant id"})
			return
		}
		ctx := context.Background()
		key := utils.RestaurantCacheKey(restaurantID)
		var cached domain.Restaurant
		if hit, err := utils.GetCache(ctx, rdb, key, &cached); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"restaurant": cached, "cached": true})
			return
		}
		restaurant, err := restaurants.FindByID(restaurantID)
		if err != nil || !restaurant.IsPublished {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		if err := utils.SetCache(ctx, rdb, key, restaurant, restaurantCacheTTL); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache restaurant")
		}
		c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
	}
}

// GetMenuHandler returns the active products of a published restaurant,
// served from cache when warm
func GetMenuHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	return func(c *gin.Context) {
		restaurantID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant id"})
			return
		}
		ctx := context.Background()
		key := utils.MenuCacheKey(restaurantID)
		var cached []domain.Product
		if hit, err := utils.GetCache(ctx, rdb, key, &cached); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"menu": cached, "cached": true})
			return
		}
		restaurant, err := restaurants.FindByID(restaurantID)
		if err != nil || !restaurant.IsPublished {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		menu, err := restaurants.Menu(restaurantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
			return
		}
		if err := utils.SetCache(ctx, rdb, key, menu, menuCacheTTL); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache menu")
		}
		c.JSON(http.StatusOK, gin.H{"menu": menu})
	}
}
