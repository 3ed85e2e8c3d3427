package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes

	"foodcourt/internal/domain"    // Domain models
	"foodcourt/internal/orderflow" // Status transition table
	"foodcourt/internal/repository" // Persistence gateways

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// CheckoutHandler converts the customer's cart into an order
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		id, err := customerID(c, users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		order, err := orders.Checkout(id)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
				return
			}
			logrus.WithFields(logrus.Fields{"customer_id": id, "error": err.Error()}).Error("Checkout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"customer_id": id,
			"order_id":    order.ID,
			"total":       order.TotalPrice,
		}).Info("Order placed")
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

// ListMyOrdersHandler returns the calling customer's orders
func ListMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		id, err := customerID(c, users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		list, err := orders.ListByCustomer(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
	}
}

// GetOrderHandler returns one of the calling customer's orders
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		id, err := customerID(c, users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		orderID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}
		order, err := orders.FindOrder(orderID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.CustomerID != id {
			c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// ListRestaurantOrdersHandler returns the orders placed with the
// calling staff member's restaurant
func ListRestaurantOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		list, err := orders.ListByRestaurant(restaurantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
	}
}

// UpdateOrderStatusRequest appends one status entry
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateOrderStatusHandler appends a status entry to an order of the
// calling staff member's restaurant, validated against the transition
// table. History is append-only.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		restaurantID, err := staffRestaurantID(c, users)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant for this account"})
			return
		}
		orderID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}
		order, err := orders.FindOrder(orderID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.RestaurantID != restaurantID {
			c.JSON(http.StatusForbidden, gin.H{"error": "This order belongs to another restaurant"})
			return
		}
		entry, err := orders.AppendStatus(orderID, req.Status, req.Note)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":       "Invalid status transition",
					"valid_next":  orderflow.NextStatuses(latestStatus(order)),
					"requested":   req.Status,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": entry})
	}
}

// latestStatus returns the last entry of an order's loaded history
func latestStatus(order *domain.Order) string {
	if len(order.Statuses) == 0 {
		return ""
	}
	return order.Statuses[len(order.Statuses)-1].Status
}
