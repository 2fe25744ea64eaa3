package controllers

import (
	"net/http"
	"time"

	"github.com/craftvine/craftvine-backend/api/responses"
	"github.com/craftvine/craftvine-backend/api/validators"
	sellersvc "github.com/craftvine/craftvine-backend/internal/sellers"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/logger"
	"github.com/craftvine/craftvine-backend/pkg/pagination"
)

type sellerPayload struct {
	Email    string  `json:"email" validate:"required,email"`
	ShopName string  `json:"shop_name" validate:"required"`
	Bio      *string `json:"bio,omitempty"`
	Region   *string `json:"region,omitempty"`
}

type sellerUpdatePayload struct {
	ShopName *string `json:"shop_name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Region   *string `json:"region,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// SellerCreate registers an artisan profile.
func SellerCreate(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body sellerPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.CreateSeller(r.Context(), sellersvc.CreateSellerInput{
			Email:    body.Email,
			ShopName: body.ShopName,
			Bio:      body.Bio,
			Region:   body.Region,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newSellerResponse(seller))
	}
}

// SellerUpdate applies a partial update to a seller profile.
func SellerUpdate(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "sellerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sellerUpdatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.UpdateSeller(r.Context(), id, sellersvc.UpdateSellerInput{
			ShopName: body.ShopName,
			Bio:      body.Bio,
			Region:   body.Region,
			IsActive: body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSellerResponse(seller))
	}
}

// SellerDelete removes a seller profile.
func SellerDelete(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "sellerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSeller(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SellerGet returns one seller profile.
func SellerGet(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "sellerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.GetSeller(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSellerResponse(seller))
	}
}

// SellerList returns a keyset-paginated seller listing.
func SellerList(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sellers, nextCursor, err := svc.ListSellers(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]sellerResponse, 0, len(sellers))
		for i := range sellers {
			items = append(items, newSellerResponse(&sellers[i]))
		}
		responses.WriteSuccess(w, listResponse[sellerResponse]{Items: items, NextCursor: nextCursor})
	}
}

type sellerResponse struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	ShopName  string    `json:"shop_name"`
	Bio       *string   `json:"bio,omitempty"`
	Region    *string   `json:"region,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newSellerResponse(seller *models.Seller) sellerResponse {
	return sellerResponse{
		ID:        seller.ID,
		Email:     seller.Email,
		ShopName:  seller.ShopName,
		Bio:       seller.Bio,
		Region:    seller.Region,
		IsActive:  seller.IsActive,
		CreatedAt: seller.CreatedAt,
		UpdatedAt: seller.UpdatedAt,
	}
}
