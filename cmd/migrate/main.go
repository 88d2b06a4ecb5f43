package main

import (
	"log"
	"os"

	"storefront-be/internal/model"
	"storefront-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: extensions GORM AutoMigrate doesn't handle
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate all models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Coupon{},
		&model.Invoice{},
		&model.InvoiceLine{},
		&model.ReturnRequest{},
		&model.ReturnItem{},
		&model.ShippingRule{},
		&model.NotificationType{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: partial indexes GORM tags can't express.
	// One active return per order, enforced at the database so two
	// concurrent submissions cannot both insert.
	log.Println("Step 3: Ensuring partial indexes...")

	postSQL := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_return_requests_one_active_per_order
			ON return_requests (order_id)
			WHERE status NOT IN ('rejected', 'cancelled', 'completed');`,
	}

	for _, sql := range postSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Error: Failed to create index: %v", err)
		}
	}

	log.Printf("Migration complete: %d tables ensured.", len(models))
}
