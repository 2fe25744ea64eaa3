package sellers

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/api/validators"
	"github.com/craftvine/craftvine-backend/pkg/db"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	pkgerrors "github.com/craftvine/craftvine-backend/pkg/errors"
	"github.com/craftvine/craftvine-backend/pkg/pagination"
)

// CreateSellerInput captures the payload to onboard an artisan.
type CreateSellerInput struct {
	Email    string
	ShopName string
	Bio      *string
	Region   *string
}

// UpdateSellerInput carries partial updates; nil fields are left untouched.
type UpdateSellerInput struct {
	ShopName *string
	Bio      *string
	Region   *string
	IsActive *bool
}

// Service exposes seller profile operations.
type Service interface {
	CreateSeller(ctx context.Context, input CreateSellerInput) (*models.Seller, error)
	UpdateSeller(ctx context.Context, id uint64, input UpdateSellerInput) (*models.Seller, error)
	DeleteSeller(ctx context.Context, id uint64) error
	GetSeller(ctx context.Context, id uint64) (*models.Seller, error)
	ListSellers(ctx context.Context, params pagination.Params) ([]models.Seller, string, error)
}

type service struct {
	repo SellerRepository
}

// NewService builds a seller service.
func NewService(repo SellerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("seller repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateSeller(ctx context.Context, input CreateSellerInput) (*models.Seller, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	shopName := validators.SanitizeString(input.ShopName, 120)
	if shopName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}

	seller := &models.Seller{
		Email:    email,
		ShopName: shopName,
		Bio:      input.Bio,
		Region:   input.Region,
		IsActive: true,
	}

	created, err := s.repo.Create(ctx, seller)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_sellers_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "seller email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create seller")
	}
	return created, nil
}

func (s *service) UpdateSeller(ctx context.Context, id uint64, input UpdateSellerInput) (*models.Seller, error) {
	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}

	seller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}

	if input.ShopName != nil {
		shopName := validators.SanitizeString(*input.ShopName, 120)
		if shopName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name cannot be empty")
		}
		seller.ShopName = shopName
	}
	if input.Bio != nil {
		seller.Bio = input.Bio
	}
	if input.Region != nil {
		seller.Region = input.Region
	}
	if input.IsActive != nil {
		seller.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, seller)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller")
	}
	return updated, nil
}

func (s *service) DeleteSeller(ctx context.Context, id uint64) error {
	if id == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete seller")
	}
	return nil
}

func (s *service) GetSeller(ctx context.Context, id uint64) (*models.Seller, error) {
	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}
	seller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}
	return seller, nil
}

func (s *service) ListSellers(ctx context.Context, params pagination.Params) ([]models.Seller, string, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sellers")
	}
	return rows, next, nil
}
