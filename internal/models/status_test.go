package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus(""))
	assert.False(t, ValidOrderStatus("teleported"))
	assert.False(t, ValidOrderStatus("Pending"))
}

func TestCanTransitionOrder(t *testing.T) {
	t.Parallel()

	all := []string{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}

	allowed := map[[2]string]bool{
		{OrderStatusPending, OrderStatusCancelled}:   true,
		{OrderStatusConfirmed, OrderStatusCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, CanTransitionOrder(from, to), "%s -> %s", from, to)
		}
	}
}

func TestValidPaymentMethod(t *testing.T) {
	t.Parallel()

	for _, m := range []string{
		PaymentMethodCard, PaymentMethodBkash, PaymentMethodNagad,
		PaymentMethodRocket, PaymentMethodBankTransfer, PaymentMethodCashOnDelivery,
	} {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	assert.False(t, ValidPaymentMethod("barter"))
	assert.False(t, ValidPaymentMethod(""))
}
