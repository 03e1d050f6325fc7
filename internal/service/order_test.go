package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/marketplace/internal/models"
)

var orderIDPattern = regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

func TestOrderService_CreateOrder_ComputesTotal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	sellerX := env.createUser(t, "seller_x", models.RoleSeller)
	sellerY := env.createUser(t, "seller_y", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)

	productA := env.createProduct(t, sellerX.UserID, "product_a", 10.00, 5)
	productB := env.createProduct(t, sellerY.UserID, "product_b", 7.50, 5)

	order, err := env.Orders.CreateOrder(ctx, buyer, "221B Baker Street", []CheckoutLine{
		{ProductID: productA.ID, Quantity: 1, UnitPrice: 10.00},
		{ProductID: productB.ID, Quantity: 2, UnitPrice: 7.50},
	})
	require.NoError(t, err)

	assert.Regexp(t, orderIDPattern, order.OrderID)
	assert.Equal(t, buyer.UserID, order.BuyerID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 25.00, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 2)

	for _, item := range order.Items {
		assert.Equal(t, models.OrderStatusPending, item.Status)
	}
	assert.Equal(t, sellerX.UserID, order.Items[0].SellerID)
	assert.Equal(t, sellerY.UserID, order.Items[1].SellerID)
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 3)

	inactive := env.createProduct(t, seller.UserID, "retired", 5.00, 3)
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error)

	tests := []struct {
		name  string
		lines []CheckoutLine
	}{
		{name: "no items", lines: nil},
		{name: "zero quantity", lines: []CheckoutLine{{ProductID: product.ID, Quantity: 0, UnitPrice: 5}}},
		{name: "negative price", lines: []CheckoutLine{{ProductID: product.ID, Quantity: 1, UnitPrice: -1}}},
		{name: "unknown product", lines: []CheckoutLine{{ProductID: 9999, Quantity: 1, UnitPrice: 5}}},
		{name: "inactive product", lines: []CheckoutLine{{ProductID: inactive.ID, Quantity: 1, UnitPrice: 5}}},
		{name: "insufficient stock", lines: []CheckoutLine{{ProductID: product.ID, Quantity: 10, UnitPrice: 5}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Orders.CreateOrder(ctx, buyer, "addr", tt.lines)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestOrderService_CreateOrder_AllOrNothing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 3)

	_, err := env.Orders.CreateOrder(ctx, buyer, "addr", []CheckoutLine{
		{ProductID: product.ID, Quantity: 1, UnitPrice: 5.00},
		{ProductID: 9999, Quantity: 1, UnitPrice: 5.00},
	})
	require.ErrorIs(t, err, ErrValidation)

	var orderCount, itemCount int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, env.DB.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestOrderService_UpdateOrderStatus_Transitions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 100)

	tests := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{name: "pending to cancelled", from: models.OrderStatusPending, to: models.OrderStatusCancelled, ok: true},
		{name: "confirmed to cancelled", from: models.OrderStatusConfirmed, to: models.OrderStatusCancelled, ok: true},
		{name: "pending to shipped", from: models.OrderStatusPending, to: models.OrderStatusShipped, ok: false},
		{name: "pending to confirmed", from: models.OrderStatusPending, to: models.OrderStatusConfirmed, ok: false},
		{name: "shipped to cancelled", from: models.OrderStatusShipped, to: models.OrderStatusCancelled, ok: false},
		{name: "delivered to cancelled", from: models.OrderStatusDelivered, to: models.OrderStatusCancelled, ok: false},
		{name: "cancelled to pending", from: models.OrderStatusCancelled, to: models.OrderStatusPending, ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			order, err := env.Orders.CreateOrder(ctx, buyer, "addr", []CheckoutLine{
				{ProductID: product.ID, Quantity: 1, UnitPrice: 5.00},
			})
			require.NoError(t, err)

			require.NoError(t, env.DB.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", tt.from).Error)

			updated, err := env.Orders.UpdateOrderStatus(ctx, buyer, order.ID, tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
			} else {
				require.ErrorIs(t, err, ErrInvalidTransition)

				var current models.Order
				require.NoError(t, env.DB.First(&current, order.ID).Error)
				assert.Equal(t, tt.from, current.Status)
			}
		})
	}
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)

	_, err := env.Orders.UpdateOrderStatus(context.Background(), buyer, 1, "teleported")
	require.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_UpdateOrderStatus_CopiesDownToItems(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	sellerX := env.createUser(t, "seller_x", models.RoleSeller)
	sellerY := env.createUser(t, "seller_y", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)

	productA := env.createProduct(t, sellerX.UserID, "product_a", 10.00, 5)
	productB := env.createProduct(t, sellerY.UserID, "product_b", 7.50, 5)

	order, err := env.Orders.CreateOrder(ctx, buyer, "addr", []CheckoutLine{
		{ProductID: productA.ID, Quantity: 1, UnitPrice: 10.00},
		{ProductID: productB.ID, Quantity: 2, UnitPrice: 7.50},
	})
	require.NoError(t, err)

	// One seller has already shipped; cancellation still forces every item.
	_, err = env.Orders.UpdateOrderItemStatus(ctx, sellerX, order.Items[0].ID, models.OrderStatusShipped)
	require.NoError(t, err)

	_, err = env.Orders.UpdateOrderStatus(ctx, buyer, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	var items []models.OrderItem
	require.NoError(t, env.DB.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, models.OrderStatusCancelled, item.Status)
	}
}

func TestOrderService_UpdateOrderStatus_NotOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	stranger := env.createUser(t, "stranger", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 5)

	order, err := env.Orders.CreateOrder(ctx, buyer, "addr", []CheckoutLine{
		{ProductID: product.ID, Quantity: 1, UnitPrice: 5.00},
	})
	require.NoError(t, err)

	_, err = env.Orders.UpdateOrderStatus(ctx, stranger, order.ID, models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.Orders.GetOrder(ctx, stranger, order.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_UpdateOrderItemStatus_RollsUpWhenUniform(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	sellerX := env.createUser(t, "seller_x", models.RoleSeller)
	sellerY := env.createUser(t, "seller_y", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)

	productA := env.createProduct(t, sellerX.UserID, "product_a", 10.00, 5)
	productB := env.createProduct(t, sellerY.UserID, "product_b", 7.50, 5)

	order, err := env.Orders.CreateOrder(ctx, buyer, "addr", []CheckoutLine{
		{ProductID: productA.ID, Quantity: 1, UnitPrice: 10.00},
		{ProductID: productB.ID, Quantity: 2, UnitPrice: 7.50},
	})
	require.NoError(t, err)
	require.InDelta(t, 25.00, order.TotalAmount, 1e-9)

	// First seller ships: item set is {shipped, pending}, order untouched.
	_, err = env.Orders.UpdateOrderItemStatus(ctx, sellerX, order.Items[0].ID, models.OrderStatusShipped)
	require.NoError(t, err)

	var current models.Order
	require.NoError(t, env.DB.First(&current, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, current.Status)

	// Second seller ships: set collapses to {shipped}, order follows.
	_, err = env.Orders.UpdateOrderItemStatus(ctx, sellerY, order.Items[1].ID, models.OrderStatusShipped)
	require.NoError(t, err)

	require.NoError(t, env.DB.First(&current, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, current.Status)
}

func TestOrderService_UpdateOrderItemStatus_SellerScope(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	sellerX := env.createUser(t, "seller_x", models.RoleSeller)
	sellerY := env.createUser(t, "seller_y", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	product := env.createProduct(t, sellerX.UserID, "widget", 5.00, 5)

	order, err := env.Orders.CreateOrder(ctx, buyer, "addr", []CheckoutLine{
		{ProductID: product.ID, Quantity: 1, UnitPrice: 5.00},
	})
	require.NoError(t, err)

	_, err = env.Orders.UpdateOrderItemStatus(ctx, sellerY, order.Items[0].ID, models.OrderStatusShipped)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.Orders.UpdateOrderItemStatus(ctx, sellerX, order.Items[0].ID, "teleported")
	require.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_ListAllOrders_AdminOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	admin := env.createUser(t, "admin", models.RoleAdmin)

	_, _, err := env.Orders.ListAllOrders(ctx, buyer, "", nil, 0, 10)
	require.ErrorIs(t, err, ErrPermissionDenied)

	total, orders, err := env.Orders.ListAllOrders(ctx, admin, "", nil, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)
}
