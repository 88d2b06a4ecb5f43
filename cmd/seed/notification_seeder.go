package main

import (
	"log"

	"storefront-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "ORDER_CREATED",
			DisplayName: "Order Placed",
			Template:    "Your order {order_number} has been placed. Total: {grand_total}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "ORDER_STATUS_CHANGED",
			DisplayName: "Order Status Update",
			Template:    "Your order {order_number} is now {status}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "PAYMENT_SUCCEEDED",
			DisplayName: "Payment Received",
			Template:    "Payment of {amount} for order {order_number} was successful",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "PAYMENT_FAILED",
			DisplayName: "Payment Failed",
			Template:    "Payment for order {order_number} failed. Reason: {reason}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		// --- Administrative Notifications ---
		{
			Code:        "RETURN_REQUESTED",
			DisplayName: "New Return Request",
			Template:    "Return requested for order {order_number} by {user_id}. Reason: {reason}",
			TargetType:  "ADMIN",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "RETURN_STATUS_CHANGED",
			DisplayName: "Return Status Update",
			Template:    "Your return for order {order_number} is now {status}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "REFUND_PROCESSED",
			DisplayName: "Refund Processed",
			Template:    "Your refund of {amount} for order {order_number} has been processed via {method}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
	}

	for _, t := range types {
		err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error
		if err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("Notification types seeded successfully.")
}
