package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes
	"time"     // Product expiration check

	"foodcourt/internal/domain"     // Domain models
	"foodcourt/internal/middleware" // Context accessors
	"foodcourt/internal/repository" // Persistence gateways

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// AddCartItemRequest carries a product to snapshot into the cart
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// customerID resolves the calling customer's id (shared with the user id)
func customerID(c *gin.Context, users *repository.UserRepository) (uint, error) {
	caller, err := users.FindByUsername(middleware.Username(c))
	if err != nil {
		return 0, err
	}
	if caller.Customer == nil {
		return 0, domain.ErrNotFound
	}
	return caller.Customer.UserID, nil
}

// GetCartHandler returns the customer's cart with its running total
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		id, err := customerID(c, users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		cart, err := orders.Cart(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
	}
}

// AddCartItemHandler snapshots a catalog product into the cart. The
// name and price recorded here survive later catalog edits.
func AddCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	restaurants := repository.NewRestaurantRepository(db)
	return func(c *gin.Context) {
		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := customerID(c, users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		product, err := restaurants.FindProductByID(req.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if !product.IsActive || (product.ExpiresAt != nil && product.ExpiresAt.Before(time.Now())) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not available"})
			return
		}
		item, err := orders.AddItem(id, product, req.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrMixedCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart items must come from a single restaurant"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"item": item})
	}
}

// RemoveCartItemHandler deletes one line item from the cart
func RemoveCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		id, err := customerID(c, users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		itemID, err := parseID(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}
		if err := orders.RemoveItem(id, itemID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
	}
}
