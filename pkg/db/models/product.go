package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the catalog entry priced in integer cents. Price and weight
// are treated as immutable within a single quote or commit.
type Product struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU             string    `gorm:"column:sku;not null;uniqueIndex"`
	Name            string    `gorm:"column:name;not null"`
	UnitPriceCents  int64     `gorm:"column:unit_price_cents;not null"`
	UnitWeightGrams int       `gorm:"column:unit_weight_grams;not null"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
