package db

import (
	"foodcourt/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Structured logging

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Models lists every persisted aggregate, in dependency order
func Models() []any {
	return []any{
		&domain.User{},
		&domain.RestaurantStaff{},
		&domain.Restaurant{},
		&domain.Product{},
		&domain.ProductCategory{},
		&domain.ClosingDate{},
		&domain.OpeningHours{},
		&domain.Customer{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.OrderStatus{},
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := conn.AutoMigrate(Models()...); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
