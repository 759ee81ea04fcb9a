package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipment records the slice of an order item fulfilled from one
// warehouse, with the distance and shipping cost frozen at commit time.
type Shipment struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID       uuid.UUID `gorm:"column:order_item_id;type:uuid;not null"`
	WarehouseID       uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null"`
	Quantity          int       `gorm:"column:quantity;not null"`
	DistanceKm        float64   `gorm:"column:distance_km;type:numeric(10,2);not null"`
	ShippingCostCents int64     `gorm:"column:shipping_cost_cents;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}
