package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type Coupon struct {
	ID                uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Code              string                      `gorm:"type:varchar(50);uniqueIndex;not null"`
	DiscountType      string                      `gorm:"type:varchar(20);not null"` // percentage, fixed
	DiscountValue     float64                     `gorm:"type:decimal(12,2);not null"`
	MinOrderAmount    float64                     `gorm:"type:decimal(12,2);not null;default:0"`
	MaxDiscount       float64                     `gorm:"type:decimal(12,2);not null;default:0"`
	UsageLimit        int                         `gorm:"not null;default:0"`
	UsedCount         int                         `gorm:"not null;default:0"`
	FirstPurchaseOnly bool                        `gorm:"not null;default:false"`
	AllowedUserIDs    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	MaxUsesPerUser    int                         `gorm:"not null;default:0"`
	ValidFrom         time.Time                   `gorm:"not null"`
	ValidUntil        time.Time                   `gorm:"not null"`
	Active            bool                        `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Coupon) TableName() string {
	return "coupons"
}
