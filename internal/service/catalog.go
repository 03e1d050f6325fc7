package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/cache"
	"github.com/vendora/marketplace/internal/events"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
	"github.com/vendora/marketplace/internal/search"
	"github.com/vendora/marketplace/internal/transport"
	"github.com/vendora/marketplace/pkg/logging"
	"gorm.io/gorm"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events *events.Publisher
	Search *search.Index
	Cache  *cache.Cache
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *CatalogService) GetProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, f, offset, limit)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*transport.ProductDetail, error) {
	var detail transport.ProductDetail
	if s.Cache.Get(ctx, productCacheKey(id), &detail) {
		return &detail, nil
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	variants, err := s.Repo.GetVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Repo.GetReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.Repo.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}

	detail = transport.ProductDetail{
		Product:       *product,
		Variants:      variants,
		Reviews:       reviews,
		AverageRating: math.Round(avg*10) / 10,
		ReviewCount:   count,
		IsInStock:     product.StockQuantity > 0,
	}

	s.Cache.Set(ctx, productCacheKey(id), detail)
	return &detail, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor authz.Actor, req transport.CreateProductRequest) (*models.Product, error) {
	if !actor.IsSeller() && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: seller access required", ErrPermissionDenied)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category %d", ErrValidation, *req.CategoryID)
			}
			return nil, err
		}
	}

	product := &models.Product{
		SellerID:      actor.UserID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.Search.IndexProduct(ctx, product)
	s.Events.ProductEvent(ctx, "product_created", product)
	logging.FromContext(ctx).Info("product_created", "product_id", product.ID, "seller_id", product.SellerID)
	return product, nil
}

func (s *CatalogService) getOwnedProduct(ctx context.Context, actor authz.Actor, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !actor.IsAdmin() && product.SellerID != actor.UserID {
		return nil, fmt.Errorf("%w: not the product owner", ErrPermissionDenied)
	}
	return product, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, actor authz.Actor, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	product, err := s.getOwnedProduct(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, productCacheKey(id))
	s.Search.IndexProduct(ctx, product)
	s.Events.ProductEvent(ctx, "product_updated", product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor authz.Actor, id uint) error {
	product, err := s.getOwnedProduct(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.Cache.Delete(ctx, productCacheKey(id))
	s.Search.DeleteProduct(ctx, id)
	s.Events.ProductEvent(ctx, "product_deleted", product)
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	return s.Search.Search(ctx, query, from, size)
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor authz.Actor, name, description string) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrPermissionDenied)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	category := &models.Category{Name: name, Description: description}
	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) AddVariant(ctx context.Context, actor authz.Actor, productID uint, req transport.CreateVariantRequest) (*models.ProductVariant, error) {
	if _, err := s.getOwnedProduct(ctx, actor, productID); err != nil {
		return nil, err
	}
	if req.VariantType == "" || req.VariantValue == "" {
		return nil, fmt.Errorf("%w: variant type and value required", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
	}

	variant := &models.ProductVariant{
		ProductID:       productID,
		VariantType:     req.VariantType,
		VariantValue:    req.VariantValue,
		PriceAdjustment: req.PriceAdjustment,
		StockQuantity:   req.StockQuantity,
	}
	if err := s.Repo.CreateVariant(ctx, variant); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, productCacheKey(productID))
	return variant, nil
}

func (s *CatalogService) AddReview(ctx context.Context, actor authz.Actor, productID uint, rating int, comment string) (*models.ProductReview, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	exists, err := s.Repo.ReviewExists(ctx, productID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: product already reviewed", ErrConflict)
	}

	review := &models.ProductReview{
		ProductID: productID,
		BuyerID:   actor.UserID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, productCacheKey(productID))
	return review, nil
}
