package dto

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceLineResponse struct {
	ProductId uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	LineTotal float64   `json:"line_total"`
	GstRate   float64   `json:"gst_rate"`
	GstAmount float64   `json:"gst_amount"`
	Cgst      float64   `json:"cgst"`
	Sgst      float64   `json:"sgst"`
	Igst      float64   `json:"igst"`
}

type InvoiceResponse struct {
	Id             uuid.UUID             `json:"id"`
	Number         string                `json:"number"`
	OrderId        uuid.UUID             `json:"order_id"`
	Lines          []InvoiceLineResponse `json:"lines"`
	BillingState   string                `json:"billing_state"`
	ShippingState  string                `json:"shipping_state"`
	Subtotal       float64               `json:"subtotal"`
	CgstTotal      float64               `json:"cgst_total"`
	SgstTotal      float64               `json:"sgst_total"`
	IgstTotal      float64               `json:"igst_total"`
	TaxTotal       float64               `json:"tax_total"`
	ShippingCharge float64               `json:"shipping_charge"`
	Discount       float64               `json:"discount"`
	GrandTotal     float64               `json:"grand_total"`
	AmountInWords  string                `json:"amount_in_words"`
	PaymentStatus  string                `json:"payment_status"`
	InvoiceDate    time.Time             `json:"invoice_date"`
	DueDate        time.Time             `json:"due_date"`
}

// Admin override, used when a gateway webhook was missed or a COD payment
// settled out of band.
type UpdateInvoicePaymentStatusRequest struct {
	Id            uuid.UUID
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid failed refunded"`
}
