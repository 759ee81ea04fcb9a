package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mherran/stockroute-backend/pkg/db/models"
	"github.com/mherran/stockroute-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  unit_weight_grams INTEGER NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS warehouses (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  location TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS stock_records (
  warehouse_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  updated_at DATETIME,
  PRIMARY KEY (warehouse_id, product_id)
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number INTEGER NOT NULL UNIQUE,
  status TEXT NOT NULL,
  customer_lat REAL NOT NULL,
  customer_lon REAL NOT NULL,
  subtotal_cents INTEGER NOT NULL,
  discount_cents INTEGER NOT NULL DEFAULT 0,
  discount_percent INTEGER NOT NULL DEFAULT 0,
  discounted_subtotal_cents INTEGER NOT NULL,
  shipping_cents INTEGER NOT NULL DEFAULT 0,
  grand_total_cents INTEGER NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  subtotal_cents INTEGER NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS shipments (
  id TEXT PRIMARY KEY,
  order_item_id TEXT NOT NULL,
  warehouse_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  distance_km REAL NOT NULL,
  shipping_cost_cents INTEGER NOT NULL,
  created_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedStock(t *testing.T, db *gorm.DB, warehouseID, productID uuid.UUID, qty int) {
	t.Helper()
	record := models.StockRecord{WarehouseID: warehouseID, ProductID: productID, Quantity: qty}
	require.NoError(t, db.Create(&record).Error)
}

func TestLockStockReportsQuantitiesUnderLock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	warehouseA := uuid.New()
	warehouseB := uuid.New()
	product := uuid.New()
	seedStock(t, db, warehouseA, product, 40)
	seedStock(t, db, warehouseB, product, 0)

	missing := StockKey{WarehouseID: uuid.New(), ProductID: product}
	keys := []StockKey{
		{WarehouseID: warehouseA, ProductID: product},
		{WarehouseID: warehouseB, ProductID: product},
		missing,
	}

	locked, err := repo.LockStock(ctx, keys)
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, 40, locked[keys[0]])
	assert.Equal(t, 0, locked[keys[1]])
	assert.NotContains(t, locked, missing, "missing row must not appear in the result")
}

func TestDecrementStockNeverOverdraws(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	key := StockKey{WarehouseID: uuid.New(), ProductID: uuid.New()}
	seedStock(t, db, key.WarehouseID, key.ProductID, 3)

	require.ErrorIs(t, repo.DecrementStock(ctx, key, 5), gorm.ErrRecordNotFound)

	var record models.StockRecord
	require.NoError(t, db.Take(&record, "warehouse_id = ? AND product_id = ?", key.WarehouseID, key.ProductID).Error)
	assert.Equal(t, 3, record.Quantity, "failed decrement must not change quantity")

	require.NoError(t, repo.DecrementStock(ctx, key, 3))
	require.NoError(t, db.Take(&record, "warehouse_id = ? AND product_id = ?", key.WarehouseID, key.ProductID).Error)
	assert.Equal(t, 0, record.Quantity, "empty row should remain")
}

func TestNextOrderNumberMonotonic(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.NextOrderNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1001), first)

	order := &models.Order{
		ID:                      uuid.New(),
		OrderNumber:             first,
		Status:                  enums.OrderStatusCompleted,
		SubtotalCents:           100,
		DiscountedSubtotalCents: 100,
		GrandTotalCents:         100,
	}
	_, err = repo.CreateOrder(ctx, order)
	require.NoError(t, err)

	second, err := repo.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}

func TestCreateAndFindOrderRoundTrip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()
	order := &models.Order{
		ID:                      uuid.New(),
		OrderNumber:             2001,
		Status:                  enums.OrderStatusCompleted,
		CustomerLat:             51.5072,
		CustomerLon:             -0.1276,
		SubtotalCents:           150000,
		DiscountCents:           22500,
		DiscountPercent:         15,
		DiscountedSubtotalCents: 127500,
		ShippingCents:           9170,
		GrandTotalCents:         136670,
	}
	item := models.OrderItem{
		ID:             uuid.New(),
		OrderID:        order.ID,
		ProductID:      productID,
		Quantity:       150,
		UnitPriceCents: 1000,
		SubtotalCents:  150000,
	}
	item.Shipments = []models.Shipment{
		{ID: uuid.New(), OrderItemID: item.ID, WarehouseID: warehouseID, Quantity: 100, DistanceKm: 0, ShippingCostCents: 0},
		{ID: uuid.New(), OrderItemID: item.ID, WarehouseID: uuid.New(), Quantity: 50, DistanceKm: 262.2, ShippingCostCents: 9170},
	}
	order.Items = []models.OrderItem{item}

	_, err := repo.CreateOrder(ctx, order)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2001), found.OrderNumber)
	require.Len(t, found.Items, 1)
	assert.Len(t, found.Items[0].Shipments, 2)

	byNumber, err := repo.FindByOrderNumber(ctx, 2001)
	require.NoError(t, err)
	assert.Equal(t, order.ID, byNumber.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
