package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
)

type testEnv struct {
	DB   *gorm.DB
	Repo *repo.GormRepo

	Auth     *AuthService
	Catalog  *CatalogService
	Cart     *CartService
	Wishlist *WishlistService
	Orders   *OrderService
	Payments *PaymentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))

	r := repo.New(db)
	return &testEnv{
		DB:   db,
		Repo: r,

		Auth:     &AuthService{Repo: r, JWTSecret: []byte("test-jwt-secret")},
		Catalog:  &CatalogService{Repo: r},
		Cart:     &CartService{Repo: r},
		Wishlist: &WishlistService{Repo: r},
		Orders:   &OrderService{Repo: r},
		Payments: &PaymentService{Repo: r},
	}
}

func actorFor(user *models.User) authz.Actor {
	return authz.Actor{UserID: user.ID, Role: user.Role}
}

func (env *testEnv) createUser(t *testing.T, username, role string) authz.Actor {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, env.DB.Create(&user).Error)
	return authz.Actor{UserID: user.ID, Role: role}
}

func (env *testEnv) createProduct(t *testing.T, sellerID uint, name string, price float64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		SellerID:      sellerID,
		Name:          name,
		Description:   name + " description",
		Price:         price,
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, env.DB.Create(&product).Error)
	return product
}
