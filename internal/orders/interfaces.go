package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mherran/stockroute-backend/pkg/db/models"
)

// StockKey identifies one (warehouse, product) ledger row.
type StockKey struct {
	WarehouseID uuid.UUID
	ProductID   uuid.UUID
}

// Repository defines persistence operations for the order commit path.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LockStock(ctx context.Context, keys []StockKey) (map[StockKey]int, error)
	DecrementStock(ctx context.Context, key StockKey, qty int) error
	NextOrderNumber(ctx context.Context) (int64, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, number int64) (*models.Order, error)
}
