package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
	"github.com/vendora/marketplace/internal/transport"
)

func TestCatalogService_CreateProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)

	_, err := env.Catalog.CreateProduct(ctx, buyer, transport.CreateProductRequest{Name: "widget", Price: 5})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.Catalog.CreateProduct(ctx, seller, transport.CreateProductRequest{Price: 5})
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.Catalog.CreateProduct(ctx, seller, transport.CreateProductRequest{Name: "widget", Price: -1})
	require.ErrorIs(t, err, ErrValidation)

	unknownCategory := uint(42)
	_, err = env.Catalog.CreateProduct(ctx, seller, transport.CreateProductRequest{Name: "widget", Price: 5, CategoryID: &unknownCategory})
	require.ErrorIs(t, err, ErrValidation)

	product, err := env.Catalog.CreateProduct(ctx, seller, transport.CreateProductRequest{
		Name:          "widget",
		Description:   "a widget",
		Price:         5.00,
		StockQuantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, seller.UserID, product.SellerID)
	assert.True(t, product.IsActive)
}

func TestCatalogService_PatchProduct_OwnerOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	rival := env.createUser(t, "rival", models.RoleSeller)
	admin := env.createUser(t, "admin", models.RoleAdmin)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 3)

	newPrice := 6.50
	_, err := env.Catalog.PatchProduct(ctx, rival, product.ID, transport.PatchProductRequest{Price: &newPrice})
	require.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := env.Catalog.PatchProduct(ctx, seller, product.ID, transport.PatchProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.InDelta(t, 6.50, updated.Price, 1e-9)

	inactive := false
	updated, err = env.Catalog.PatchProduct(ctx, admin, product.ID, transport.PatchProductRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 3)

	require.NoError(t, env.Catalog.DeleteProduct(ctx, seller, product.ID))
	require.ErrorIs(t, env.Catalog.DeleteProduct(ctx, seller, product.ID), ErrNotFound)
}

func TestCatalogService_GetProducts_Filters(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	env.createProduct(t, seller.UserID, "cheap widget", 5.00, 3)
	env.createProduct(t, seller.UserID, "fancy widget", 50.00, 0)

	min := 10.00
	total, products, err := env.Catalog.GetProducts(ctx, repo.ProductFilter{MinPrice: &min}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "fancy widget", products[0].Name)

	inStock := true
	total, _, err = env.Catalog.GetProducts(ctx, repo.ProductFilter{InStock: &inStock}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestCatalogService_GetProduct_Detail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyerA := env.createUser(t, "buyer_a", models.RoleBuyer)
	buyerB := env.createUser(t, "buyer_b", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 3)

	_, err := env.Catalog.AddVariant(ctx, seller, product.ID, transport.CreateVariantRequest{
		VariantType:  "color",
		VariantValue: "red",
	})
	require.NoError(t, err)

	_, err = env.Catalog.AddReview(ctx, buyerA, product.ID, 4, "good")
	require.NoError(t, err)
	_, err = env.Catalog.AddReview(ctx, buyerB, product.ID, 5, "great")
	require.NoError(t, err)

	detail, err := env.Catalog.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Variants, 1)
	assert.Equal(t, int64(2), detail.ReviewCount)
	assert.InDelta(t, 4.5, detail.AverageRating, 1e-9)
	assert.True(t, detail.IsInStock)

	_, err = env.Catalog.GetProduct(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_AddReview_Rules(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	buyer := env.createUser(t, "buyer", models.RoleBuyer)
	product := env.createProduct(t, seller.UserID, "widget", 5.00, 3)

	_, err := env.Catalog.AddReview(ctx, buyer, product.ID, 0, "")
	require.ErrorIs(t, err, ErrValidation)
	_, err = env.Catalog.AddReview(ctx, buyer, product.ID, 6, "")
	require.ErrorIs(t, err, ErrValidation)
	_, err = env.Catalog.AddReview(ctx, buyer, 9999, 3, "")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.Catalog.AddReview(ctx, buyer, product.ID, 3, "fine")
	require.NoError(t, err)

	// One review per buyer per product.
	_, err = env.Catalog.AddReview(ctx, buyer, product.ID, 4, "changed my mind")
	require.ErrorIs(t, err, ErrConflict)
}

func TestCatalogService_CreateCategory_AdminOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.createUser(t, "seller", models.RoleSeller)
	admin := env.createUser(t, "admin", models.RoleAdmin)

	_, err := env.Catalog.CreateCategory(ctx, seller, "books", "")
	require.ErrorIs(t, err, ErrPermissionDenied)

	category, err := env.Catalog.CreateCategory(ctx, admin, "books", "printed matter")
	require.NoError(t, err)
	assert.Equal(t, "books", category.Name)

	categories, err := env.Catalog.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}
