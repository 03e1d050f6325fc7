package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
	"github.com/vendora/marketplace/internal/transport"
	"github.com/vendora/marketplace/pkg/hash"
	"github.com/vendora/marketplace/pkg/logging"
	"github.com/vendora/marketplace/pkg/tokens"
	"gorm.io/gorm"
)

const accessTokenTTL = 15 * time.Minute

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}
	if role != models.RoleBuyer && role != models.RoleSeller {
		return nil, fmt.Errorf("%w: role must be buyer or seller", ErrValidation)
	}
	if role == models.RoleSeller && req.ShopName == "" {
		return nil, fmt.Errorf("%w: shop name required for sellers", ErrValidation)
	}

	if _, err := s.Repo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         role,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if role == models.RoleSeller {
		profile := &models.SellerProfile{
			UserID:          user.ID,
			ShopName:        req.ShopName,
			ShopDescription: req.ShopDescription,
		}
		if err := s.Repo.CreateSellerProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	l.Info("user_registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*transport.LoginResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", ErrValidation)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "invalid password")
		return nil, fmt.Errorf("%w: invalid username or password", ErrValidation)
	}

	token, exp, err := tokens.NewAccessToken(strconv.FormatUint(uint64(user.ID), 10), user.Role, accessTokenTTL, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &transport.LoginResponse{
		AccessToken: token,
		ExpiresAt:   exp.Unix(),
		User:        *user,
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, actor authz.Actor) (*models.User, *models.SellerProfile, error) {
	user, err := s.Repo.GetUser(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user %d", ErrNotFound, actor.UserID)
		}
		return nil, nil, err
	}

	var profile *models.SellerProfile
	if user.Role == models.RoleSeller {
		profile, err = s.Repo.GetSellerProfile(ctx, user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	}
	return user, profile, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor authz.Actor, req transport.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ApproveSeller flips the approval flag on a seller profile. Admin only.
func (s *AuthService) ApproveSeller(ctx context.Context, actor authz.Actor, userID uint) (*models.SellerProfile, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrPermissionDenied)
	}

	profile, err := s.Repo.GetSellerProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seller profile for user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	profile.IsApproved = true
	if err := s.Repo.SaveSellerProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
