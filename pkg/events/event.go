package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ORDER_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain implementation that most publishers use directly.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event codes emitted by the storefront pipelines.
const (
	TypeOrderCreated        = "ORDER_CREATED"
	TypeOrderStatusChanged  = "ORDER_STATUS_CHANGED"
	TypePaymentSucceeded    = "PAYMENT_SUCCEEDED"
	TypePaymentFailed       = "PAYMENT_FAILED"
	TypeReturnRequested     = "RETURN_REQUESTED"
	TypeReturnStatusChanged = "RETURN_STATUS_CHANGED"
	TypeRefundProcessed     = "REFUND_PROCESSED"
)
