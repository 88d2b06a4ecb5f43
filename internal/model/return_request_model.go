package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReturnRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:varchar(30);not null;default:'pending';index"`
	ReturnAddress string    `gorm:"type:text"`
	AdminNotes    string    `gorm:"type:text"`

	// Refund record. RefundID non-empty means a refund has been executed
	// (gateway) or attested (COD); it is never written twice.
	RefundID            string  `gorm:"type:varchar(100)"`
	RefundAmount        float64 `gorm:"type:decimal(12,2);not null;default:0"`
	RefundStatus        string  `gorm:"type:varchar(30)"`
	RefundReason        string  `gorm:"type:text"`
	RefundMethod        string  `gorm:"type:varchar(30)"`
	RefundTransactionID string  `gorm:"type:varchar(100)"`
	RefundBankName      string  `gorm:"type:varchar(100)"`
	RefundUpiID         string  `gorm:"type:varchar(100)"`
	RefundProcessedAt   *time.Time

	RequestedAt *time.Time
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	ShippedAt   *time.Time
	ReceivedAt  *time.Time
	RefundedAt  *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Items []ReturnItem `gorm:"foreignKey:ReturnRequestID"`
	Order Order        `gorm:"foreignKey:OrderID"`
	User  User         `gorm:"foreignKey:UserID"`
}

func (ReturnRequest) TableName() string {
	return "return_requests"
}

type ReturnItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ReturnRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null"`
	Name            string    `gorm:"type:varchar(200);not null"`
	Quantity        int       `gorm:"not null"`
	UnitPrice       float64   `gorm:"type:decimal(12,2);not null"`
	ReasonCode      string    `gorm:"type:varchar(50);not null"`
	Detail          string    `gorm:"type:text"`
	CreatedAt       time.Time
}

func (ReturnItem) TableName() string {
	return "return_items"
}
