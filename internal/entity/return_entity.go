package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReturnStatus string

const (
	ReturnStatusPending         ReturnStatus = "pending"
	ReturnStatusApproved        ReturnStatus = "approved"
	ReturnStatusRejected        ReturnStatus = "rejected"
	ReturnStatusShipped         ReturnStatus = "return_shipped"
	ReturnStatusReceived        ReturnStatus = "return_received"
	ReturnStatusRefundProcessed ReturnStatus = "refund_processed"
	ReturnStatusCompleted       ReturnStatus = "completed"
	ReturnStatusCancelled       ReturnStatus = "cancelled"
)

// TerminalReturnStatuses lists the statuses that end a return's lifecycle.
// A return in any other status still blocks a new return on its order.
func TerminalReturnStatuses() []ReturnStatus {
	return []ReturnStatus{ReturnStatusRejected, ReturnStatusCancelled, ReturnStatusCompleted}
}

type RefundMethod string

const (
	RefundMethodGateway      RefundMethod = "gateway"
	RefundMethodBankTransfer RefundMethod = "bank_transfer"
	RefundMethodUpi          RefundMethod = "upi"
	RefundMethodCash         RefundMethod = "cash"
)

type ReturnItem struct {
	Id         uuid.UUID
	ProductId  uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  float64
	ReasonCode string
	Detail     string
}

// RefundInfo records an executed (gateway) or attested (COD) refund.
// A non-empty RefundId is the guard against double refunds.
type RefundInfo struct {
	RefundId      string
	Amount        float64
	Status        string
	Reason        string
	Method        RefundMethod
	TransactionId string
	BankName      string
	UpiId         string
	ProcessedAt   *time.Time
}

type ReturnRequest struct {
	Id            uuid.UUID
	OrderId       uuid.UUID
	UserId        uuid.UUID
	Items         []ReturnItem
	Status        ReturnStatus
	ReturnAddress string
	AdminNotes    string
	Refund        *RefundInfo

	// Transition timestamps, stamped once and never overwritten.
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
}
