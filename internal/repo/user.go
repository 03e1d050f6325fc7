package repo

import (
	"context"

	"github.com/vendora/marketplace/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *GormRepo) CreateSellerProfile(ctx context.Context, profile *models.SellerProfile) error {
	return r.DB.WithContext(ctx).Create(profile).Error
}

func (r *GormRepo) GetSellerProfile(ctx context.Context, userID uint) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) SaveSellerProfile(ctx context.Context, profile *models.SellerProfile) error {
	return r.DB.WithContext(ctx).Save(profile).Error
}
