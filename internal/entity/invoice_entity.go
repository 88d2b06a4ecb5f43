package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceLine struct {
	Id        uuid.UUID
	ProductId uuid.UUID
	Name      string
	Quantity  int
	UnitPrice float64
	LineTotal float64
	GstRate   float64
	GstAmount float64
	Cgst      float64
	Sgst      float64
	Igst      float64
}

// Invoice is created exactly once per order. Number, totals and due date are
// assigned at creation and never regenerated; only the admin payment-status
// override mutates it afterwards.
type Invoice struct {
	Id             uuid.UUID
	Number         string
	OrderId        uuid.UUID
	UserId         uuid.UUID
	Lines          []InvoiceLine
	BillingState   string
	ShippingState  string
	Subtotal       float64
	CgstTotal      float64
	SgstTotal      float64
	IgstTotal      float64
	TaxTotal       float64
	ShippingCharge float64
	Discount       float64
	GrandTotal     float64
	AmountInWords  string
	PaymentStatus  PaymentStatus
	InvoiceDate    time.Time
	DueDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
