package warehouses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mherran/stockroute-backend/internal/repo"
	"github.com/mherran/stockroute-backend/pkg/db/models"
	"github.com/mherran/stockroute-backend/pkg/types"
)

// ProductStock pairs a warehouse with its on-hand quantity for one product.
type ProductStock struct {
	WarehouseID uuid.UUID
	Name        string
	Location    types.GeographyPoint
	Quantity    int
}

// Repository exposes warehouse and stock reads. These paths never mutate
// the ledger; decrements happen only inside the order commit transaction.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// ListStockForProduct returns every warehouse carrying a stock row for
// the product, including zero-quantity rows so callers see the full
// candidate set.
func (r *Repository) ListStockForProduct(ctx context.Context, productID uuid.UUID) ([]ProductStock, error) {
	var records []models.StockRecord
	if err := r.DB(ctx).
		Where("product_id = ?", productID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.WarehouseID)
	}
	var warehouses []models.Warehouse
	if err := r.DB(ctx).
		Where("id IN ?", ids).
		Find(&warehouses).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Warehouse, len(warehouses))
	for _, w := range warehouses {
		byID[w.ID] = w
	}

	out := make([]ProductStock, 0, len(records))
	for _, rec := range records {
		w, ok := byID[rec.WarehouseID]
		if !ok {
			continue
		}
		out = append(out, ProductStock{
			WarehouseID: rec.WarehouseID,
			Name:        w.Name,
			Location:    w.Location,
			Quantity:    rec.Quantity,
		})
	}
	return out, nil
}

// FindByID loads a single warehouse.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := r.DB(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}
