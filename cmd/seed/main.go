package main

import (
	"log"
	"os"
	"time"

	"storefront-be/internal/model"
	"storefront-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Shipping Rules...")

	rules := []model.ShippingRule{
		{
			Name:                  "Mumbai Metro",
			Priority:              1,
			PincodeType:           "list",
			Pincodes:              datatypes.NewJSONSlice([]string{"400001", "400002", "400003", "400004", "400005"}),
			Charge:                30,
			FreeShippingThreshold: 500,
			MinDeliveryDays:       1,
			MaxDeliveryDays:       2,
			Active:                true,
		},
		{
			Name:                  "Maharashtra Zone",
			Priority:              10,
			PincodeType:           "range",
			Ranges:                datatypes.JSON([]byte(`[{"start":"400000","end":"449999"}]`)),
			Charge:                50,
			FreeShippingThreshold: 750,
			MinDeliveryDays:       2,
			MaxDeliveryDays:       4,
			Active:                true,
		},
		{
			Name:                  "Rest of India",
			Priority:              100,
			PincodeType:           "all",
			Charge:                80,
			FreeShippingThreshold: 1000,
			MinDeliveryDays:       4,
			MaxDeliveryDays:       8,
			Active:                true,
		},
	}

	for _, r := range rules {
		var existing model.ShippingRule
		if err := db.Where("name = ?", r.Name).First(&existing).Error; err == nil {
			log.Printf("Shipping rule '%s' already exists, skipping...", r.Name)
			continue
		}

		if err := db.Create(&r).Error; err != nil {
			log.Printf("Error creating shipping rule '%s': %v", r.Name, err)
		} else {
			log.Printf("Created shipping rule: %s (priority %d)", r.Name, r.Priority)
		}
	}

	log.Println("Seeding Sample Coupons...")

	now := time.Now()
	coupons := []model.Coupon{
		{
			Code:              "WELCOME10",
			DiscountType:      "percentage",
			DiscountValue:     10,
			MinOrderAmount:    500,
			MaxDiscount:       100,
			UsageLimit:        0,
			FirstPurchaseOnly: true,
			MaxUsesPerUser:    1,
			ValidFrom:         now,
			ValidUntil:        now.AddDate(1, 0, 0),
			Active:            true,
		},
		{
			Code:           "FLAT50",
			DiscountType:   "fixed",
			DiscountValue:  50,
			MinOrderAmount: 300,
			UsageLimit:     1000,
			MaxUsesPerUser: 3,
			ValidFrom:      now,
			ValidUntil:     now.AddDate(0, 3, 0),
			Active:         true,
		},
		{
			Code:           "FESTIVE20",
			DiscountType:   "percentage",
			DiscountValue:  20,
			MinOrderAmount: 1000,
			MaxDiscount:    300,
			UsageLimit:     500,
			MaxUsesPerUser: 1,
			ValidFrom:      now,
			ValidUntil:     now.AddDate(0, 1, 0),
			Active:         true,
		},
	}

	for _, c := range coupons {
		var existing model.Coupon
		if err := db.Where("code = ?", c.Code).First(&existing).Error; err == nil {
			log.Printf("Coupon '%s' already exists, skipping...", c.Code)
			continue
		}

		if err := db.Create(&c).Error; err != nil {
			log.Printf("Error creating coupon '%s': %v", c.Code, err)
		} else {
			log.Printf("Created coupon: %s", c.Code)
		}
	}

	log.Println("Seeding Notification Types...")
	SeedNotificationTypes(db)

	log.Println("Seeding completed!")
}
