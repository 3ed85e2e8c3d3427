package main

import (
	"foodcourt/internal/config" // Configuration
	"foodcourt/internal/db"     // Schema migration
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration against MySQL
}
