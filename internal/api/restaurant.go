package api

import (
	"context"  // Context for cache invalidation
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes
	"strconv"  // Route param parsing
	"time"     // Closing date parsing

	"foodcourt/internal/domain"     // Domain models
	"foodcourt/internal/middleware" // Context accessors
	"foodcourt/internal/repository" // Persistence gateways
	"foodcourt/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// RestaurantRequest carries the mutable restaurant fields
type RestaurantRequest struct {
	Name              string `json:"name" binding:"required"`
	AddressLine       string `json:"address_line"`
	City              string `json:"city"`
	ZipCode           string `json:"zip_code"`
	Country           string `json:"country"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	IsPublished       bool   `json:"is_published"`
	IsOpen            bool   `json:"is_open"`
	OrderLimitMinutes int    `json:"order_limit_minutes" binding:"gte=0"`
}

// ProductRequest carries the mutable product fields
type ProductRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Price       float64    `json:"price" binding:"gte=0"`
	Quantity    int        `json:"quantity" binding:"gte=0"`
	IsActive    *bool      `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CategoryIDs []uint     `json:"category_ids"`
}

// staffRestaurantID resolves the calling staff member's restaurant.
// Admins without a restaurant yet get ErrRestaurantNotCreated.
func staffRestaurantID(c *gin.Context, users *repository.UserRepository) (uint, error) {
	caller, err := users.FindByUsername(middleware.Username(c))
	if err != nil {
		return 0, err
	}
	if caller.Staff == nil || caller.Staff.RestaurantID == nil {
		return 0, domain.ErrRestaurantNotCreated
	}
	return *caller.Staff.RestaurantID, nil
}

// CreateRestaurantHandler creates the calling admin's restaurant and
// links it to their staff record in one transaction
func CreateRestaurantHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		var req RestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		caller, err := users.FindByUsername(middleware.Username(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		if caller.Staff != nil && caller.Staff.RestaurantID != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You already own a restaurant"})
			return
		}
		restaurant := &domain.Restaurant{
			Name:              req.Name,
			AddressLine:       req.AddressLine,
			City:              req.City,
			ZipCode:           req.ZipCode,
			Country:           req.Country,
			Phone:             req.Phone,
			Email:             req.Email,
			IsPublished:       req.IsPublished,
			IsOpen:            req.IsOpen,
			OrderLimitMinutes: req.OrderLimitMinutes,
			OwnerID:           caller.ID,
		}
		if err := restaurants.CreateRestaurant(restaurant); err != nil {
			if errors.Is(err, domain.ErrOwnerNotFound) {
				c.JSON(http.StatusInternalServerError, Errorf("Owner staff record not found"))
				return
			}
			logrus.WithFields(logrus.Fields{"owner_id": caller.ID, "error": err.Error()}).Error("Restaurant creation failed")
			c.JSON(http.StatusInternalServerError, Errorf("Restaurant creation failed"))
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, utils.RestaurantListCacheKey)
		logrus.WithFields(logrus.Fields{"restaurant_id": restaurant.ID, "owner_id": caller.ID}).Info("Restaurant created")
		c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
	}
}

// MyRestaurantHandler returns the calling staff member's restaurant
func MyRestaurantHandler(db *gorm.DB) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		restaurant, err := restaurants.FindByID(restaurantID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
	}
}

// UpdateRestaurantHandler edits the calling admin's restaurant.
// Published restaurants stay published: there is no delete and no
// unpublish, matching the aggregate lifecycle.
func UpdateRestaurantHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		var req RestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		restaurant, err := restaurants.FindByID(restaurantID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		restaurant.Name = req.Name
		restaurant.AddressLine = req.AddressLine
		restaurant.City = req.City
		restaurant.ZipCode = req.ZipCode
		restaurant.Country = req.Country
		restaurant.Phone = req.Phone
		restaurant.Email = req.Email
		restaurant.IsPublished = restaurant.IsPublished || req.IsPublished
		restaurant.IsOpen = req.IsOpen
		restaurant.OrderLimitMinutes = req.OrderLimitMinutes
		if err := restaurants.Update(restaurant); err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Restaurant update failed"))
			return
		}
		_ = utils.InvalidateRestaurantCache(context.Background(), rdb, restaurant.ID)
		c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
	}
}

// AddProductHandler adds a product to the calling staff's restaurant
func AddProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		categories, err := restaurants.CategoriesByIDs(restaurantID, req.CategoryIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Product creation failed"))
			return
		}
		product := &domain.Product{
			RestaurantID: restaurantID,
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			Quantity:     req.Quantity,
			IsActive:     req.IsActive == nil || *req.IsActive,
			ExpiresAt:    req.ExpiresAt,
			Categories:   categories,
		}
		if err := restaurants.AddProduct(product); err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Product creation failed"))
			return
		}
		_ = utils.InvalidateRestaurantCache(context.Background(), rdb, restaurantID)
		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}

// UpdateProductHandler edits a product of the calling staff's restaurant
func UpdateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		productID, err := parseID(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		product, err := restaurants.FindProduct(restaurantID, productID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		product.Name = req.Name
		product.Description = req.Description
		product.Price = req.Price
		product.Quantity = req.Quantity
		if req.IsActive != nil {
			product.IsActive = *req.IsActive
		}
		product.ExpiresAt = req.ExpiresAt
		// Only the restaurant's own categories can be linked
		product.Categories, err = restaurants.CategoriesByIDs(restaurantID, req.CategoryIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Product update failed"))
			return
		}
		if err := restaurants.UpdateProduct(product); err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Product update failed"))
			return
		}
		_ = utils.InvalidateRestaurantCache(context.Background(), rdb, restaurantID)
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// DeleteProductHandler removes a product from the calling staff's restaurant
func DeleteProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		productID, err := parseID(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		if err := restaurants.DeleteProduct(restaurantID, productID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, Errorf("Product deletion failed"))
			return
		}
		_ = utils.InvalidateRestaurantCache(context.Background(), rdb, restaurantID)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// CategoryRequest carries a new category label
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddCategoryHandler adds a product category to the staff's restaurant
func AddCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		category := &domain.ProductCategory{RestaurantID: restaurantID, Name: req.Name}
		if err := restaurants.AddCategory(category); err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Category creation failed"))
			return
		}
		_ = utils.InvalidateRestaurantCache(context.Background(), rdb, restaurantID)
		c.JSON(http.StatusCreated, gin.H{"category": category})
	}
}

// OpeningHoursRequest replaces the weekly schedule wholesale
type OpeningHoursRequest struct {
	Hours []struct {
		DayOfWeek int    `json:"day_of_week" binding:"gte=0,lte=6"`
		OpensAt   string `json:"opens_at" binding:"required"`
		ClosesAt  string `json:"closes_at" binding:"required"`
	} `json:"hours"`
}

// ReplaceOpeningHoursHandler swaps the staff restaurant's full weekly
// schedule in one transaction
func ReplaceOpeningHoursHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		var req OpeningHoursRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		hours := make([]domain.OpeningHours, 0, len(req.Hours))
		for _, h := range req.Hours {
			hours = append(hours, domain.OpeningHours{
				DayOfWeek: h.DayOfWeek,
				OpensAt:   h.OpensAt,
				ClosesAt:  h.ClosesAt,
			})
		}
		if err := restaurants.ReplaceOpeningHours(restaurantID, hours); err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Opening hours update failed"))
			return
		}
		_ = utils.InvalidateRestaurantCache(context.Background(), rdb, restaurantID)
		c.JSON(http.StatusOK, gin.H{"message": "Opening hours updated"})
	}
}

// ClosingDateRequest carries an exceptional closing date
type ClosingDateRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// AddClosingDateHandler records an exceptional closure
func AddClosingDateHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		var req ClosingDateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		closing := &domain.ClosingDate{RestaurantID: restaurantID, Date: req.Date}
		if err := restaurants.AddClosingDate(closing); err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Closing date creation failed"))
			return
		}
		_ = utils.InvalidateRestaurantCache(context.Background(), rdb, restaurantID)
		c.JSON(http.StatusCreated, gin.H{"closing_date": closing})
	}
}

// RemoveClosingDateHandler deletes an exceptional closure
func RemoveClosingDateHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	restaurants := repository.NewRestaurantRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		closingID, err := parseID(c.Param("closingId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid closing date id"})
			return
		}
		if err := restaurants.RemoveClosingDate(restaurantID, closingID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Closing date not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, Errorf("Closing date deletion failed"))
			return
		}
		_ = utils.InvalidateRestaurantCache(context.Background(), rdb, restaurantID)
		c.JSON(http.StatusOK, gin.H{"message": "Closing date removed"})
	}
}

// parseID parses a numeric route parameter
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
