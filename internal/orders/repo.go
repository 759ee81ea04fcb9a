package orders

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mherran/stockroute-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// LockStock takes an exclusive row lock on every requested ledger row
// and returns the quantities observed under the lock. Keys are locked
// in a fixed order so concurrent commits cannot deadlock. Rows that do
// not exist are simply absent from the result.
func (r *repository) LockStock(ctx context.Context, keys []StockKey) (map[StockKey]int, error) {
	sorted := make([]StockKey, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].WarehouseID != sorted[j].WarehouseID {
			return sorted[i].WarehouseID.String() < sorted[j].WarehouseID.String()
		}
		return sorted[i].ProductID.String() < sorted[j].ProductID.String()
	})

	q := r.db.WithContext(ctx)
	// SQLite serializes writers on its own and rejects FOR UPDATE.
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	out := make(map[StockKey]int, len(sorted))
	for _, key := range sorted {
		var record models.StockRecord
		err := q.
			Where("warehouse_id = ? AND product_id = ?", key.WarehouseID, key.ProductID).
			Take(&record).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, err
		}
		out[key] = record.Quantity
	}
	return out, nil
}

// DecrementStock subtracts qty from one ledger row. The guard clause
// keeps the row from ever going negative; callers re-check quantities
// under lock first, so a zero-row update means a concurrent writer won.
func (r *repository) DecrementStock(ctx context.Context, key StockKey, qty int) error {
	res := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Where("warehouse_id = ? AND product_id = ? AND quantity >= ?", key.WarehouseID, key.ProductID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NextOrderNumber allocates a monotonically increasing order number.
// Postgres uses a dedicated sequence; other dialects fall back to a
// max+1 scan, which is safe because callers hold the commit transaction.
func (r *repository) NextOrderNumber(ctx context.Context) (int64, error) {
	var number int64
	if r.db.Dialector.Name() == "postgres" {
		err := r.db.WithContext(ctx).
			Raw("SELECT nextval('order_numbers')").
			Scan(&number).Error
		return number, err
	}
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(order_number), 1000) + 1 FROM orders").
		Scan(&number).Error
	return number, err
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Shipments").
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByOrderNumber(ctx context.Context, number int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Shipments").
		Preload("Items").
		Where("order_number = ?", number).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
