package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
	"github.com/vendora/marketplace/internal/transport"
	"gorm.io/gorm"
)

type CartService struct {
	Repo *repo.GormRepo
}

// EnsureCart is the explicit idempotent get-or-create called before any
// cart read or write.
func (s *CartService) EnsureCart(ctx context.Context, actor authz.Actor) (*models.Cart, error) {
	return s.Repo.EnsureCart(ctx, actor.UserID)
}

func (s *CartService) GetCart(ctx context.Context, actor authz.Actor) (*models.Cart, []models.CartItem, error) {
	cart, err := s.Repo.EnsureCart(ctx, actor.UserID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, nil, err
	}
	return cart, items, nil
}

// AddToCart is the convenience path: an existing (cart, product) row has
// its quantity incremented by the requested amount.
func (s *CartService) AddToCart(ctx context.Context, actor authz.Actor, productID, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}

	cart, err := s.Repo.EnsureCart(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetItemQuantity is the generic update path: the stored quantity is
// overwritten, not summed.
func (s *CartService) SetItemQuantity(ctx context.Context, actor authz.Actor, itemID, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	cart, err := s.Repo.EnsureCart(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.GetCartItem(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < int(quantity) {
		return nil, fmt.Errorf("%w: only %d items available", ErrValidation, product.StockQuantity)
	}

	if err := s.Repo.SetCartItemQuantity(ctx, item, quantity); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, actor authz.Actor, itemID uint) error {
	cart, err := s.Repo.EnsureCart(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteCartItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return err
	}
	return nil
}

// ClearCart always succeeds: a user without a cart is told the cart is
// already empty, not handed an error.
func (s *CartService) ClearCart(ctx context.Context, actor authz.Actor) error {
	cart, err := s.Repo.GetCart(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.Repo.ClearCart(ctx, cart.ID)
}

// Summary recomputes cart totals from current product prices on every read.
func (s *CartService) Summary(ctx context.Context, actor authz.Actor) (*transport.CartSummary, error) {
	summary := &transport.CartSummary{BySeller: map[uint]*transport.SellerGroup{}}

	cart, err := s.Repo.GetCart(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return summary, nil
		}
		return nil, err
	}

	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}

		lineTotal := float64(item.Quantity) * product.Price
		summary.TotalItems += int64(item.Quantity)
		summary.UniqueItems++
		summary.TotalPrice += lineTotal

		group, ok := summary.BySeller[product.SellerID]
		if !ok {
			group = &transport.SellerGroup{}
			summary.BySeller[product.SellerID] = group
		}
		group.Items = append(group.Items, transport.CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
			Total:       lineTotal,
		})
		group.TotalPrice += lineTotal
	}

	return summary, nil
}
