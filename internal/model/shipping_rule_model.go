package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ShippingRule struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Priority    int       `gorm:"not null;default:100;index"`
	PincodeType string    `gorm:"type:varchar(20);not null"` // list, range, all

	// Pincodes is the explicit list; Ranges holds [{"start","end"}] pairs.
	Pincodes              datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Ranges                datatypes.JSON              `gorm:"type:jsonb"`
	Charge                float64                     `gorm:"type:decimal(12,2);not null"`
	FreeShippingThreshold float64                     `gorm:"type:decimal(12,2);not null;default:0"`
	MinDeliveryDays       int                         `gorm:"not null;default:2"`
	MaxDeliveryDays       int                         `gorm:"not null;default:7"`
	Active                bool                        `gorm:"not null;default:true"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

func (ShippingRule) TableName() string {
	return "shipping_rules"
}
