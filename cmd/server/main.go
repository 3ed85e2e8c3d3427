package main

import (
	"context" // Context for the Redis connection check
	"log"     // Startup logging

	"foodcourt/internal/api"        // HTTP handlers
	"foodcourt/internal/config"     // Configuration
	"foodcourt/internal/domain"     // Role constants for route gating
	"foodcourt/internal/middleware" // JWT and role middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.GET("/health", api.HealthHandler())

	// Authentication routes
	authGroup := r.Group("/api/authentication")
	authGroup.POST("/login", api.LoginHandler(db, cfg))
	authGroup.POST("/init-super-admin/:pass", api.InitSuperAdminHandler(db, cfg))
	authGroup.POST("/register-restaurantAdmin", api.RegisterRestaurantAdminHandler(db))
	authGroup.POST("/register-customer", api.RegisterCustomerHandler(db))
	authGroup.POST("/register-super-admin",
		middleware.JWTAuthMiddleware(cfg),
		middleware.ActiveAccount(db),
		middleware.RoleRequired(domain.RoleSuperAdmin),
		api.RegisterSuperAdminHandler(db))
	authGroup.POST("/register-employee",
		middleware.JWTAuthMiddleware(cfg),
		middleware.ActiveAccount(db),
		middleware.RoleRequired(domain.RoleRestaurantAdmin),
		api.RegisterEmployeeHandler(db))
	authGroup.GET("/current-user",
		middleware.JWTAuthMiddleware(cfg),
		api.CurrentUserHandler(db))

	// Public restaurant browsing (redis-cached)
	r.GET("/api/restaurants", api.ListRestaurantsHandler(db, redisClient))
	r.GET("/api/restaurants/:id", api.GetRestaurantHandler(db, redisClient))
	r.GET("/api/restaurants/:id/menu", api.GetMenuHandler(db, redisClient))

	// Restaurant management (admin only)
	adminGroup := r.Group("/api/restaurant")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg), middleware.ActiveAccount(db), middleware.RoleRequired(domain.RoleRestaurantAdmin))
	adminGroup.POST("", api.CreateRestaurantHandler(db, redisClient))
	adminGroup.PUT("", api.UpdateRestaurantHandler(db, redisClient))

	// Catalog and order management (admin or employee of the restaurant)
	staffGroup := r.Group("/api/staff")
	staffGroup.Use(middleware.JWTAuthMiddleware(cfg), middleware.ActiveAccount(db), middleware.StaffOnly())
	staffGroup.GET("/restaurant", api.MyRestaurantHandler(db))
	staffGroup.POST("/products", api.AddProductHandler(db, redisClient))
	staffGroup.PUT("/products/:productId", api.UpdateProductHandler(db, redisClient))
	staffGroup.DELETE("/products/:productId", api.DeleteProductHandler(db, redisClient))
	staffGroup.POST("/categories", api.AddCategoryHandler(db, redisClient))
	staffGroup.PUT("/opening-hours", api.ReplaceOpeningHoursHandler(db, redisClient))
	staffGroup.POST("/closing-dates", api.AddClosingDateHandler(db, redisClient))
	staffGroup.DELETE("/closing-dates/:closingId", api.RemoveClosingDateHandler(db, redisClient))
	staffGroup.GET("/orders", api.ListRestaurantOrdersHandler(db))
	staffGroup.PUT("/orders/:id/status", api.UpdateOrderStatusHandler(db))

	// Account administration (super admin only)
	superGroup := r.Group("/api/admin")
	superGroup.Use(middleware.JWTAuthMiddleware(cfg), middleware.ActiveAccount(db), middleware.RoleRequired(domain.RoleSuperAdmin))
	superGroup.GET("/users", api.ListUsersHandler(db, redisClient))
	superGroup.PUT("/users/:id/deactivate", api.DeactivateUserHandler(db, redisClient))

	// Customer cart and orders
	customerGroup := r.Group("/api")
	customerGroup.Use(middleware.JWTAuthMiddleware(cfg), middleware.ActiveAccount(db), middleware.RoleRequired(domain.RoleCustomer))
	customerGroup.GET("/cart", api.GetCartHandler(db))
	customerGroup.POST("/cart/items", api.AddCartItemHandler(db))
	customerGroup.DELETE("/cart/items/:itemId", api.RemoveCartItemHandler(db))
	customerGroup.POST("/orders", api.CheckoutHandler(db))
	customerGroup.GET("/orders", api.ListMyOrdersHandler(db))
	customerGroup.GET("/orders/:id", api.GetOrderHandler(db))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort) // Start the server on port cfg.AppPort
}
