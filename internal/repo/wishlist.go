package repo

import (
	"context"

	"github.com/vendora/marketplace/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) EnsureWishlist(ctx context.Context, userID uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.DB.WithContext(ctx).
		Where(models.Wishlist{UserID: userID}).
		FirstOrCreate(&wishlist).Error
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *GormRepo) GetWishlistItems(ctx context.Context, wishlistID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.DB.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWishlist is idempotent: adding a product twice keeps one row.
func (r *GormRepo) AddToWishlist(ctx context.Context, wishlistID, productID uint) error {
	var item models.WishlistItem
	return r.DB.WithContext(ctx).
		Where(models.WishlistItem{WishlistID: wishlistID, ProductID: productID}).
		FirstOrCreate(&item).Error
}

func (r *GormRepo) RemoveFromWishlist(ctx context.Context, wishlistID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
