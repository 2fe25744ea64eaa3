package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/craftvine/craftvine-backend/api/responses"
	"github.com/craftvine/craftvine-backend/api/validators"
	productsvc "github.com/craftvine/craftvine-backend/internal/products"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
	pkgerrors "github.com/craftvine/craftvine-backend/pkg/errors"
	"github.com/craftvine/craftvine-backend/pkg/logger"
	"github.com/craftvine/craftvine-backend/pkg/pagination"
)

type productPayload struct {
	SellerID    uint64          `json:"seller_id" validate:"required"`
	CategoryID  uint64          `json:"category_id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Unit        string          `json:"unit" validate:"required"`
	PriceCents  int             `json:"price_cents" validate:"min=0"`
	Stock       decimal.Decimal `json:"stock"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

type productUpdatePayload struct {
	CategoryID  *uint64          `json:"category_id,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	PriceCents  *int             `json:"price_cents,omitempty"`
	Stock       *decimal.Decimal `json:"stock,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// ProductCreate publishes a new listing.
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body productPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := enums.ParseProductUnit(body.Unit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit"))
			return
		}

		product, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			SellerID:    body.SellerID,
			CategoryID:  body.CategoryID,
			Name:        body.Name,
			Description: body.Description,
			Tags:        body.Tags,
			Unit:        unit,
			PriceCents:  body.PriceCents,
			Stock:       body.Stock,
			IsActive:    body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(product))
	}
}

// ProductUpdate applies a partial update to a listing.
func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body productUpdatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			CategoryID:  body.CategoryID,
			Name:        body.Name,
			Description: body.Description,
			Tags:        body.Tags,
			PriceCents:  body.PriceCents,
			Stock:       body.Stock,
			IsActive:    body.IsActive,
		}
		if body.Unit != nil {
			unit, err := enums.ParseProductUnit(*body.Unit)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit"))
				return
			}
			input.Unit = &unit
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// ProductDelete removes a listing.
func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ProductGet returns a single listing.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// ProductList returns a keyset-paginated product listing.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := productsvc.ListFilter{
			ActiveOnly: !strings.EqualFold(r.URL.Query().Get("include_inactive"), "true"),
		}
		if filter.SellerID, err = parseQueryID(r, "seller_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.CategoryID, err = parseQueryID(r, "category_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, nextCursor, err := svc.ListProducts(r.Context(), filter, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]productResponse, 0, len(products))
		for i := range products {
			items = append(items, newProductResponse(&products[i]))
		}
		responses.WriteSuccess(w, listResponse[productResponse]{Items: items, NextCursor: nextCursor})
	}
}

func parseQueryID(r *http.Request, key string) (uint64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be a positive integer", key))
	}
	return id, nil
}

type listResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

type productResponse struct {
	ID          uint64    `json:"id"`
	SellerID    uint64    `json:"seller_id"`
	CategoryID  uint64    `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Unit        string    `json:"unit"`
	PriceCents  int       `json:"price_cents"`
	Stock       string    `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProductResponse(product *models.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		SellerID:    product.SellerID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Tags:        product.Tags,
		Unit:        product.Unit.String(),
		PriceCents:  product.PriceCents,
		Stock:       product.Stock.String(),
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
