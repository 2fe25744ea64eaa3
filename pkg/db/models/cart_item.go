package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem binds a cart to a product with a quantity. A cart never holds two
// rows for the same product; quantity changes mutate the existing row.
type CartItem struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	CartID    uint64          `gorm:"column:cart_id;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uint64          `gorm:"column:product_id;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:numeric(12,3);not null"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
