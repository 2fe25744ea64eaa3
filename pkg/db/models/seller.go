package models

import "time"

// Seller is an artisan profile; products hang off it.
type Seller struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	ShopName  string    `gorm:"column:shop_name;not null"`
	Bio       *string   `gorm:"column:bio"`
	Region    *string   `gorm:"column:region"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
