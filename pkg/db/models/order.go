package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mherran/stockroute-backend/pkg/enums"
)

// Order is the aggregate persisted exactly once by a successful commit.
// It is never mutated afterward.
type Order struct {
	ID                      uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber             int64             `gorm:"column:order_number;not null;uniqueIndex"`
	Status                  enums.OrderStatus `gorm:"column:status;not null;default:'completed'"`
	CustomerLat             float64           `gorm:"column:customer_lat;not null"`
	CustomerLon             float64           `gorm:"column:customer_lon;not null"`
	SubtotalCents           int64             `gorm:"column:subtotal_cents;not null"`
	DiscountCents           int64             `gorm:"column:discount_cents;not null;default:0"`
	DiscountPercent         int               `gorm:"column:discount_percent;not null;default:0"`
	DiscountedSubtotalCents int64             `gorm:"column:discounted_subtotal_cents;not null"`
	ShippingCents           int64             `gorm:"column:shipping_cents;not null;default:0"`
	GrandTotalCents         int64             `gorm:"column:grand_total_cents;not null"`
	Items                   []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt               time.Time         `gorm:"column:created_at;autoCreateTime"`
}
