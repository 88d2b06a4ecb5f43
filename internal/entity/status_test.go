package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchasedOrderStatuses(t *testing.T) {
	purchased := PurchasedOrderStatuses()

	assert.ElementsMatch(t, []OrderStatus{
		OrderStatusPlaced,
		OrderStatusShipped,
		OrderStatusDelivered,
	}, purchased)

	assert.NotContains(t, purchased, OrderStatusCancelled)
	assert.NotContains(t, purchased, OrderStatusReturned)
}

func TestTerminalReturnStatuses(t *testing.T) {
	terminal := TerminalReturnStatuses()

	assert.ElementsMatch(t, []ReturnStatus{
		ReturnStatusRejected,
		ReturnStatusCancelled,
		ReturnStatusCompleted,
	}, terminal)

	// Everything in flight keeps blocking a new return on the order.
	for _, st := range []ReturnStatus{
		ReturnStatusPending,
		ReturnStatusApproved,
		ReturnStatusShipped,
		ReturnStatusReceived,
		ReturnStatusRefundProcessed,
	} {
		assert.NotContains(t, terminal, st)
	}
}
