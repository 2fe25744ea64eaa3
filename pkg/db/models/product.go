package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/craftvine/craftvine-backend/pkg/enums"
)

// Product is an artisan listing. Stock is decimal so weight-based goods can
// carry fractional inventory; prices are integer minor currency units.
type Product struct {
	ID          uint64            `gorm:"column:id;primaryKey;autoIncrement"`
	SellerID    uint64            `gorm:"column:seller_id;not null;index"`
	CategoryID  uint64            `gorm:"column:category_id;not null;index"`
	Name        string            `gorm:"column:name;not null"`
	Description *string           `gorm:"column:description"`
	Tags        pq.StringArray    `gorm:"column:tags;type:text[]"`
	Unit        enums.ProductUnit `gorm:"column:unit;not null;default:'piece'"`
	PriceCents  int               `gorm:"column:price_cents;not null"`
	Stock       decimal.Decimal   `gorm:"column:stock;type:numeric(12,3);not null;default:0"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	Seller      *Seller           `gorm:"foreignKey:SellerID"`
	Category    *Category         `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
