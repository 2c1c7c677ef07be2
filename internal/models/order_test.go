package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitionMatrix(t *testing.T) {
	all := []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled}

	allowed := map[OrderStatus][]OrderStatus{
		OrderPending:   {OrderConfirmed, OrderCancelled},
		OrderConfirmed: {OrderPreparing, OrderCancelled},
		OrderPreparing: {OrderReady, OrderCancelled},
		OrderReady:     {OrderCompleted, OrderCancelled},
		OrderCompleted: {},
		OrderCancelled: {},
	}

	for from, targets := range allowed {
		ok := make(map[OrderStatus]bool, len(targets))
		for _, to := range targets {
			ok[to] = true
		}
		for _, to := range all {
			assert.Equal(t, ok[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTransitionToIllegalMoveLeavesOrderUntouched(t *testing.T) {
	order := Order{Status: OrderPending}

	err := order.TransitionTo(OrderReady, time.Now())
	require.Error(t, err)
	assert.Equal(t, OrderPending, order.Status)
	assert.Nil(t, order.ReadyAt)
}

func TestTransitionToReadyStampsReadyAt(t *testing.T) {
	order := Order{Status: OrderPending}
	now := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

	require.NoError(t, order.TransitionTo(OrderConfirmed, now))
	assert.Nil(t, order.ReadyAt)

	require.NoError(t, order.TransitionTo(OrderPreparing, now))
	assert.Nil(t, order.ReadyAt)

	require.NoError(t, order.TransitionTo(OrderReady, now))
	require.NotNil(t, order.ReadyAt)
	assert.Equal(t, now, *order.ReadyAt)

	require.NoError(t, order.TransitionTo(OrderCompleted, now.Add(time.Hour)))
	assert.Equal(t, now, *order.ReadyAt, "completing must not restamp ReadyAt")
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	all := []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled}

	for _, terminal := range []OrderStatus{OrderCompleted, OrderCancelled} {
		for _, to := range all {
			order := Order{Status: terminal}
			assert.Error(t, order.TransitionTo(to, time.Now()), "%s -> %s", terminal, to)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, ok := ParseOrderStatus("preparing")
	require.True(t, ok)
	assert.Equal(t, OrderPreparing, got)

	_, ok = ParseOrderStatus("shipped")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestParsePaymentMethod(t *testing.T) {
	got, ok := ParsePaymentMethod("credit_card")
	require.True(t, ok)
	assert.Equal(t, PaymentCreditCard, got)

	_, ok = ParsePaymentMethod("barter")
	assert.False(t, ok)
}
