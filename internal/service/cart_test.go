package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/marketplace/internal/models"
)

func TestCartService_AddToCart_Increments(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 10)

	item, err := env.Cart.AddToCart(ctx, buyer, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), item.Quantity)

	// Adding the same product again adds to the existing line.
	item, err = env.Cart.AddToCart(ctx, buyer, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(5), item.Quantity)

	_, items, err := env.Cart.GetCart(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCartService_AddToCart_DefaultsToOne(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 10)

	item, err := env.Cart.AddToCart(ctx, buyer, product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(1), item.Quantity)
}

func TestCartService_AddToCart_UnknownOrInactiveProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	inactive := env.createProduct(t, seller.UserID, "retired", 5.00, 10)
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error)

	_, err := env.Cart.AddToCart(ctx, buyer, 9999, 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.Cart.AddToCart(ctx, buyer, inactive.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_SetItemQuantity_Overwrites(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 4)

	item, err := env.Cart.AddToCart(ctx, buyer, product.ID, 3)
	require.NoError(t, err)

	// Unlike AddToCart, the new quantity replaces the old one.
	updated, err := env.Cart.SetItemQuantity(ctx, buyer, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), updated.Quantity)

	_, err = env.Cart.SetItemQuantity(ctx, buyer, item.ID, 0)
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.Cart.SetItemQuantity(ctx, buyer, item.ID, 99)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCartService_RemoveItem_ScopedToOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	stranger := env.createUser(t, "stranger", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 10)

	item, err := env.Cart.AddToCart(ctx, buyer, product.ID, 1)
	require.NoError(t, err)

	require.ErrorIs(t, env.Cart.RemoveItem(ctx, stranger, item.ID), ErrNotFound)
	require.NoError(t, env.Cart.RemoveItem(ctx, buyer, item.ID))

	_, items, err := env.Cart.GetCart(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_ClearCart_MissingCartIsFine(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)

	require.NoError(t, env.Cart.ClearCart(context.Background(), buyer))
}

func TestCartService_Summary_GroupsBySeller(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	sellerX := env.createUser(t, "seller_x", models.RoleSeller)
	sellerY := env.createUser(t, "seller_y", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)

	productA := env.createProduct(t, sellerX.UserID, "product_a", 10.00, 5)
	productB := env.createProduct(t, sellerY.UserID, "product_b", 7.50, 5)

	_, err := env.Cart.AddToCart(ctx, buyer, productA.ID, 1)
	require.NoError(t, err)
	_, err = env.Cart.AddToCart(ctx, buyer, productB.ID, 2)
	require.NoError(t, err)

	summary, err := env.Cart.Summary(ctx, buyer)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalItems)
	assert.Equal(t, int64(2), summary.UniqueItems)
	assert.InDelta(t, 25.00, summary.TotalPrice, 1e-9)
	require.Len(t, summary.BySeller, 2)
	assert.InDelta(t, 10.00, summary.BySeller[sellerX.UserID].TotalPrice, 1e-9)
	assert.InDelta(t, 15.00, summary.BySeller[sellerY.UserID].TotalPrice, 1e-9)
}
