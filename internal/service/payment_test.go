package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
)

func (env *testEnv) createOrderWithPayment(t *testing.T, buyerName string) (authz.Actor, *models.Order, *models.Payment) {
	t.Helper()
	ctx := context.Background()

	seller := env.createUser(t, buyerName+"_seller", models.RoleSeller)
	buyer := env.createUser(t, buyerName, models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, buyerName+"_widget", 12.50, 10)

	order, err := env.Orders.CreateOrder(ctx, buyer, "addr", []CheckoutLine{
		{ProductID: product.ID, Quantity: 2, UnitPrice: 12.50},
	})
	require.NoError(t, err)

	payment, err := env.Payments.CreatePayment(ctx, buyer, order.ID, order.TotalAmount, models.PaymentMethodBkash, "")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, payment.Status)
	return buyer, order, payment
}

func TestPaymentService_CreatePayment(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	buyer, order, payment := env.createOrderWithPayment(t, "buyer")
	assert.InDelta(t, 25.00, payment.Amount, 1e-9)
	assert.Equal(t, models.PaymentMethodBkash, payment.PaymentMethod)

	// One payment per order.
	_, err := env.Payments.CreatePayment(ctx, buyer, order.ID, order.TotalAmount, "", "")
	require.ErrorIs(t, err, ErrConflict)
}

func TestPaymentService_CreatePayment_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	stranger := env.createUser(t, "stranger", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 10)

	order, err := env.Orders.CreateOrder(ctx, buyer, "addr", []CheckoutLine{
		{ProductID: product.ID, Quantity: 1, UnitPrice: 5.00},
	})
	require.NoError(t, err)

	_, err = env.Payments.CreatePayment(ctx, buyer, order.ID, 0, "", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.Payments.CreatePayment(ctx, buyer, order.ID, 5.00, "barter", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.Payments.CreatePayment(ctx, buyer, 9999, 5.00, "", "")
	require.ErrorIs(t, err, ErrNotFound)

	// Someone else's order looks like a missing one.
	_, err = env.Payments.CreatePayment(ctx, stranger, order.ID, 5.00, "", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentService_ProcessPayment(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	buyer, _, payment := env.createOrderWithPayment(t, "buyer")

	processed, err := env.Payments.ProcessPayment(ctx, buyer, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, processed.Status)

	// Completed payments cannot be processed again.
	_, err = env.Payments.ProcessPayment(ctx, buyer, payment.ID)
	require.ErrorIs(t, err, ErrInvalidPaymentState)
}

func TestPaymentService_RefundPayment(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	buyer, _, payment := env.createOrderWithPayment(t, "buyer")

	// Pending payments cannot be refunded.
	_, err := env.Payments.RefundPayment(ctx, buyer, payment.ID)
	require.ErrorIs(t, err, ErrInvalidPaymentState)

	_, err = env.Payments.ProcessPayment(ctx, buyer, payment.ID)
	require.NoError(t, err)

	refunded, err := env.Payments.RefundPayment(ctx, buyer, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, refunded.Status)

	// Refunded is terminal.
	_, err = env.Payments.RefundPayment(ctx, buyer, payment.ID)
	require.ErrorIs(t, err, ErrInvalidPaymentState)
	_, err = env.Payments.ProcessPayment(ctx, buyer, payment.ID)
	require.ErrorIs(t, err, ErrInvalidPaymentState)
}

func TestPaymentService_Ownership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, _, payment := env.createOrderWithPayment(t, "buyer")
	stranger := env.createUser(t, "stranger", models.RoleBuyer)
	admin := env.createUser(t, "admin", models.RoleAdmin)

	_, err := env.Payments.GetPayment(ctx, stranger, payment.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = env.Payments.ProcessPayment(ctx, stranger, payment.ID)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := env.Payments.GetPayment(ctx, admin, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)
}

func TestPaymentService_UpdateProviderRef(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	buyer, _, payment := env.createOrderWithPayment(t, "buyer")

	updated, err := env.Payments.UpdateProviderRef(ctx, buyer, payment.ID, "txn_12345")
	require.NoError(t, err)
	assert.Equal(t, "txn_12345", updated.ProviderRef)
	assert.Equal(t, models.PaymentStatusPending, updated.Status)
}

func TestPaymentService_ListAndStats_AdminOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	admin := env.createUser(t, "admin", models.RoleAdmin)

	_, _, err := env.Payments.ListPayments(ctx, buyer, repo.PaymentFilter{}, 0, 10)
	require.ErrorIs(t, err, ErrPermissionDenied)
	_, err = env.Payments.Stats(ctx, buyer)
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, _, err = env.Payments.ListPayments(ctx, admin, repo.PaymentFilter{}, 0, 10)
	require.NoError(t, err)
	stats, err := env.Payments.Stats(ctx, admin)
	require.NoError(t, err)
	require.NotNil(t, stats)
}
