package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/craftvine/craftvine-backend/api/middleware"
	"github.com/craftvine/craftvine-backend/api/responses"
	"github.com/craftvine/craftvine-backend/api/validators"
	cartsvc "github.com/craftvine/craftvine-backend/internal/cart"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	pkgerrors "github.com/craftvine/craftvine-backend/pkg/errors"
	"github.com/craftvine/craftvine-backend/pkg/logger"
)

// CartCreate returns the caller's active cart, creating one when none exists.
// Anonymous callers always receive a fresh cart.
func CartCreate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var owner *uint64
		if actorID := middleware.ClientIDFromContext(r.Context()); actorID != 0 {
			owner = &actorID
		}

		cart, err := svc.CreateOrGetCart(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(cart, cartsvc.TotalCents(cart.Items)))
	}
}

// CartGet returns a cart with its derived total.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, err := validators.ParsePathID(r, "cartID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetCart(r.Context(), cartID, middleware.ClientIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(view.Cart, view.TotalCents))
	}
}

type addItemRequest struct {
	ProductID uint64          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CartAddItem adds a product to the cart, accumulating onto an existing line.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, err := validators.ParsePathID(r, "cartID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddItem(r.Context(), cartID, middleware.ClientIDFromContext(r.Context()), body.ProductID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(view.Cart, view.TotalCents))
	}
}

type setQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CartSetItemQuantity sets a line to an absolute quantity; zero removes it.
func CartSetItemQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, err := validators.ParsePathID(r, "cartID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetItemQuantity(r.Context(), cartID, middleware.ClientIDFromContext(r.Context()), productID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(view.Cart, view.TotalCents))
	}
}

// CartRemoveItem removes a line; removing an absent product is a no-op.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, err := validators.ParsePathID(r, "cartID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), cartID, middleware.ClientIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(view.Cart, view.TotalCents))
	}
}

type mergeCartsRequest struct {
	SourceCartID uint64 `json:"source_cart_id" validate:"required"`
}

// CartMerge folds a source cart into the target and deletes the source.
func CartMerge(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, err := validators.ParsePathID(r, "cartID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body mergeCartsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.MergeCarts(r.Context(), cartID, body.SourceCartID, middleware.ClientIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(view.Cart, view.TotalCents))
	}
}

type cartItemResponse struct {
	ProductID      uint64    `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Unit           string    `json:"unit,omitempty"`
	UnitPriceCents int       `json:"unit_price_cents,omitempty"`
	Quantity       string    `json:"quantity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type cartResponse struct {
	ID         uint64             `json:"id"`
	ClientID   *uint64            `json:"client_id,omitempty"`
	Status     string             `json:"status"`
	Items      []cartItemResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  *time.Time         `json:"updated_at,omitempty"`
}

func newCartResponse(cart *models.Cart, totalCents int64) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		entry := cartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity.String(),
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
		if item.Product != nil {
			entry.ProductName = item.Product.Name
			entry.Unit = item.Product.Unit.String()
			entry.UnitPriceCents = item.Product.PriceCents
		}
		items = append(items, entry)
	}
	return cartResponse{
		ID:         cart.ID,
		ClientID:   cart.ClientID,
		Status:     cart.Status.String(),
		Items:      items,
		TotalCents: totalCents,
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}
