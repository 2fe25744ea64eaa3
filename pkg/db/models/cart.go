package models

import (
	"time"

	"github.com/craftvine/craftvine-backend/pkg/enums"
)

// Cart holds the line items a buyer has staged for checkout. ClientID is nil
// for anonymous carts; the partial unique index keeps owned carts one-per-client.
type Cart struct {
	ID        uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID  *uint64          `gorm:"column:client_id;uniqueIndex:idx_carts_client_id,where:client_id IS NOT NULL"`
	Status    enums.CartStatus `gorm:"column:status;not null;default:'active'"`
	Items     []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt *time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
