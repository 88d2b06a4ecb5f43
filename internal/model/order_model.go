package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Shipping destination (flattened).
	ShipFullName    string `gorm:"type:varchar(100);not null"`
	ShipPhone       string `gorm:"type:varchar(20);not null"`
	ShipAddressLine string `gorm:"type:text;not null"`
	ShipCity        string `gorm:"type:varchar(100);not null"`
	ShipState       string `gorm:"type:varchar(100);not null"`
	ShipPincode     string `gorm:"type:varchar(10);not null"`

	// Payment descriptor. GatewayPaymentID is the idempotency key for
	// online payments; the unique index rejects duplicate materialization.
	// Null until a payment is attached, so pending orders do not collide.
	GatewayOrderID   string  `gorm:"type:varchar(100);index"`
	GatewayPaymentID *string `gorm:"type:varchar(100);uniqueIndex"`
	PaymentMethod    string  `gorm:"type:varchar(20);not null"`
	PaymentStatus    string  `gorm:"type:varchar(20);not null;default:'pending'"`

	ItemsTotal     float64 `gorm:"type:decimal(12,2);not null"`
	TaxTotal       float64 `gorm:"type:decimal(12,2);not null"`
	ShippingCharge float64 `gorm:"type:decimal(12,2);not null"`
	Discount       float64 `gorm:"type:decimal(12,2);not null;default:0"`
	GrandTotal     float64 `gorm:"type:decimal(12,2);not null"`

	// Coupon snapshot, null when no coupon was applied.
	CouponCode    *string  `gorm:"type:varchar(50)"`
	CouponType    *string  `gorm:"type:varchar(20)"`
	CouponValue   *float64 `gorm:"type:decimal(12,2)"`
	CouponApplied *float64 `gorm:"type:decimal(12,2)"`

	Status      string `gorm:"type:varchar(20);not null;default:'placed';index"`
	PaidAt      *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`
	User  User        `gorm:"foreignKey:UserID"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Image     string    `gorm:"type:text"`
	Quantity  int       `gorm:"not null"`
	UnitPrice float64   `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}

func (OrderItem) TableName() string {
	return "order_items"
}
