package products

import (
	"github.com/shopspring/decimal"

	"github.com/craftvine/craftvine-backend/pkg/enums"
)

// ListFilter narrows product listings.
type ListFilter struct {
	SellerID   uint64
	CategoryID uint64
	ActiveOnly bool
}

// CreateProductInput captures the payload to publish a listing.
type CreateProductInput struct {
	SellerID    uint64
	CategoryID  uint64
	Name        string
	Description *string
	Tags        []string
	Unit        enums.ProductUnit
	PriceCents  int
	Stock       decimal.Decimal
	IsActive    *bool
}

// UpdateProductInput carries partial updates; nil fields are left untouched.
type UpdateProductInput struct {
	CategoryID  *uint64
	Name        *string
	Description *string
	Tags        []string
	Unit        *enums.ProductUnit
	PriceCents  *int
	Stock       *decimal.Decimal
	IsActive    *bool
}
