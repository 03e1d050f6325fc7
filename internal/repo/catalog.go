package repo

import (
	"context"

	"github.com/vendora/marketplace/internal/models"
	"gorm.io/gorm"
)

type ProductFilter struct {
	MinPrice   *float64
	MaxPrice   *float64
	CategoryID *uint
	SellerID   *uint
	InStock    *bool
	IsActive   *bool
	Name       string
}

func (r *GormRepo) applyProductFilter(q *gorm.DB, f ProductFilter) *gorm.DB {
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.SellerID != nil {
		q = q.Where("seller_id = ?", *f.SellerID)
	}
	if f.InStock != nil {
		if *f.InStock {
			q = q.Where("stock_quantity > 0")
		} else {
			q = q.Where("stock_quantity <= 0")
		}
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	return q
}

func (r *GormRepo) GetProducts(ctx context.Context, f ProductFilter, offset, limit int) (int64, []models.Product, error) {
	base := r.applyProductFilter(r.DB.WithContext(ctx).Model(&models.Product{}), f)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := base.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) GetVariants(ctx context.Context, productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *GormRepo) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.DB.WithContext(ctx).Create(variant).Error
}

func (r *GormRepo) GetReviews(ctx context.Context, productID uint) ([]models.ProductReview, error) {
	var reviews []models.ProductReview
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.ProductReview) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) ReviewExists(ctx context.Context, productID, buyerID uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.ProductReview{}).
		Where("product_id = ? AND buyer_id = ?", productID, buyerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) AverageRating(ctx context.Context, productID uint) (float64, int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.ProductReview{}).
		Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	if err := r.DB.WithContext(ctx).Model(&models.ProductReview{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	if len(ids) == 0 {
		return map[uint]models.Product{}, nil
	}
	var products []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]models.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}
