package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User-Side Return Flow ---

type ReturnItemRequest struct {
	ProductId  uuid.UUID `json:"product_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
	ReasonCode string    `json:"reason_code" validate:"required,oneof=damaged wrong_item not_as_described size_issue quality_issue other"`
	Detail     string    `json:"detail"`
}

type CreateReturnRequest struct {
	OrderId uuid.UUID           `json:"order_id" validate:"required"`
	Items   []ReturnItemRequest `json:"items" validate:"required,min=1,dive"`
}

type CreateReturnResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type MarkReturnShippedRequest struct {
	Id uuid.UUID
}

type CancelReturnRequest struct {
	Id uuid.UUID
}

// --- Admin-Side Return Management ---

type ReviewReturnRequest struct {
	Id         uuid.UUID
	Approve    bool   `json:"approve"`
	AdminNotes string `json:"admin_notes"`
}

type MarkReturnReceivedRequest struct {
	Id         uuid.UUID
	AdminNotes string `json:"admin_notes"`
}

// ProcessRefundRequest carries the refund execution details. For COD orders
// the admin attests an out-of-band transfer; online orders go through the
// gateway and only need the optional amount.
type ProcessRefundRequest struct {
	Id            uuid.UUID
	Amount        float64 `json:"amount" validate:"gte=0"`
	Method        string  `json:"method" validate:"omitempty,oneof=gateway bank_transfer upi cash"`
	TransactionId string  `json:"transaction_id"`
	BankName      string  `json:"bank_name"`
	UpiId         string  `json:"upi_id"`
	AdminNotes    string  `json:"admin_notes"`
}

type CompleteReturnRequest struct {
	Id         uuid.UUID
	AdminNotes string `json:"admin_notes"`
}

// --- Shared Responses ---

type RefundInfoResponse struct {
	RefundId      string     `json:"refund_id"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	Method        string     `json:"method"`
	TransactionId string     `json:"transaction_id,omitempty"`
	BankName      string     `json:"bank_name,omitempty"`
	UpiId         string     `json:"upi_id,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

type ReturnItemResponse struct {
	ProductId  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	ReasonCode string    `json:"reason_code"`
	Detail     string    `json:"detail,omitempty"`
}

type ReturnResponse struct {
	Id            uuid.UUID            `json:"id"`
	OrderId       uuid.UUID            `json:"order_id"`
	Items         []ReturnItemResponse `json:"items"`
	Status        string               `json:"status"`
	ReturnAddress string               `json:"return_address,omitempty"`
	AdminNotes    string               `json:"admin_notes,omitempty"`
	Refund        *RefundInfoResponse  `json:"refund,omitempty"`
	RequestedAt   *time.Time           `json:"requested_at,omitempty"`
	ApprovedAt    *time.Time           `json:"approved_at,omitempty"`
	ReceivedAt    *time.Time           `json:"received_at,omitempty"`
	RefundedAt    *time.Time           `json:"refunded_at,omitempty"`
	CompletedAt   *time.Time           `json:"completed_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}
