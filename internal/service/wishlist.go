package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
	"gorm.io/gorm"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) GetWishlist(ctx context.Context, actor authz.Actor) (*models.Wishlist, []models.Product, error) {
	wishlist, err := s.Repo.EnsureWishlist(ctx, actor.UserID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.Repo.GetWishlistItems(ctx, wishlist.ID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	byID, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		if p, ok := byID[item.ProductID]; ok {
			products = append(products, p)
		}
	}
	return wishlist, products, nil
}

func (s *WishlistService) AddProduct(ctx context.Context, actor authz.Actor, productID uint) error {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return err
	}

	wishlist, err := s.Repo.EnsureWishlist(ctx, actor.UserID)
	if err != nil {
		return err
	}
	return s.Repo.AddToWishlist(ctx, wishlist.ID, productID)
}

func (s *WishlistService) RemoveProduct(ctx context.Context, actor authz.Actor, productID uint) error {
	wishlist, err := s.Repo.EnsureWishlist(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := s.Repo.RemoveFromWishlist(ctx, wishlist.ID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d not in wishlist", ErrNotFound, productID)
		}
		return err
	}
	return nil
}

// MoveToCart adds one unit of the product to the cart (incrementing an
// existing row) and removes it from the wishlist.
func (s *WishlistService) MoveToCart(ctx context.Context, actor authz.Actor, productID uint) error {
	wishlist, err := s.Repo.EnsureWishlist(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := s.Repo.RemoveFromWishlist(ctx, wishlist.ID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d not in wishlist", ErrNotFound, productID)
		}
		return err
	}

	cart, err := s.Repo.EnsureCart(ctx, actor.UserID)
	if err != nil {
		return err
	}
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  1,
	}
	return s.Repo.AddToCart(ctx, item)
}
