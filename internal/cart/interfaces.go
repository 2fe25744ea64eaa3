package cart

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	FindByID(ctx context.Context, id uint64) (*models.Cart, error)
	FindByIDForUpdate(ctx context.Context, id uint64) (*models.Cart, error)
	FindActiveByClient(ctx context.Context, clientID uint64) (*models.Cart, error)
	FindAbandonedByClient(ctx context.Context, clientID uint64) (*models.Cart, error)
	FindItem(ctx context.Context, cartID, productID uint64) (*models.CartItem, error)
	UpsertItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID, productID uint64) error
	DeleteCart(ctx context.Context, id uint64) error
	UpdateStatus(ctx context.Context, id uint64, status enums.CartStatus) error
	Touch(ctx context.Context, id uint64) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// inventoryOracle answers how much of a product can still be sold without
// handing the cart the product row itself.
type inventoryOracle interface {
	AvailableStock(ctx context.Context, id uint64) (decimal.Decimal, error)
}
