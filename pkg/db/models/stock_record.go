package models

import (
	"time"

	"github.com/google/uuid"
)

// StockRecord tracks the on-hand quantity per (warehouse, product) pair.
// Quantity never goes negative; only the order commit transaction
// mutates it, under an exclusive row lock.
type StockRecord struct {
	WarehouseID uuid.UUID `gorm:"column:warehouse_id;type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Quantity    int       `gorm:"column:quantity;not null;default:0;check:quantity >= 0"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
