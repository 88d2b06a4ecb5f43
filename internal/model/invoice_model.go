package model

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Number         string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	OrderID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	BillingState   string    `gorm:"type:varchar(100);not null"`
	ShippingState  string    `gorm:"type:varchar(100);not null"`
	Subtotal       float64   `gorm:"type:decimal(12,2);not null"`
	CgstTotal      float64   `gorm:"type:decimal(12,2);not null"`
	SgstTotal      float64   `gorm:"type:decimal(12,2);not null"`
	IgstTotal      float64   `gorm:"type:decimal(12,2);not null"`
	TaxTotal       float64   `gorm:"type:decimal(12,2);not null"`
	ShippingCharge float64   `gorm:"type:decimal(12,2);not null"`
	Discount       float64   `gorm:"type:decimal(12,2);not null;default:0"`
	GrandTotal     float64   `gorm:"type:decimal(12,2);not null"`
	AmountInWords  string    `gorm:"type:text;not null"`
	PaymentStatus  string    `gorm:"type:varchar(20);not null"`
	InvoiceDate    time.Time `gorm:"not null"`
	DueDate        time.Time `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID"`
	Order Order         `gorm:"foreignKey:OrderID"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type InvoiceLine struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice float64   `gorm:"type:decimal(12,2);not null"`
	LineTotal float64   `gorm:"type:decimal(12,2);not null"`
	GstRate   float64   `gorm:"type:decimal(5,2);not null"`
	GstAmount float64   `gorm:"type:decimal(12,2);not null"`
	Cgst      float64   `gorm:"type:decimal(12,2);not null"`
	Sgst      float64   `gorm:"type:decimal(12,2);not null"`
	Igst      float64   `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}

func (InvoiceLine) TableName() string {
	return "invoice_lines"
}
