package orders

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mherran/stockroute-backend/internal/quotes"
	"github.com/mherran/stockroute-backend/pkg/db"
	"github.com/mherran/stockroute-backend/pkg/db/models"
	"github.com/mherran/stockroute-backend/pkg/enums"
	pkgerrors "github.com/mherran/stockroute-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type quoteBuilder interface {
	BuildQuote(ctx context.Context, req quotes.OrderRequest) (*quotes.Quote, error)
}

// Service commits orders and reads them back.
type Service interface {
	Commit(ctx context.Context, req quotes.OrderRequest) (*CommitResult, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	quotes quoteBuilder
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, tx txRunner, quotes quoteBuilder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if quotes == nil {
		return nil, fmt.Errorf("quote builder required")
	}
	return &service{repo: repo, tx: tx, quotes: quotes}, nil
}

// Commit turns a request into a persisted order. The request is
// re-quoted from scratch, the touched stock rows are locked and
// re-checked, and the decrement plus the order rows land in a single
// transaction. Any shortfall inside the transaction aborts the whole
// commit; partial fulfillment is never persisted.
func (s *service) Commit(ctx context.Context, req quotes.OrderRequest) (*CommitResult, error) {
	quote, err := s.quotes.BuildQuote(ctx, req)
	if err != nil {
		return nil, err
	}
	if typed := quote.Err(); typed != nil {
		return nil, typed
	}
	if !quote.Shipping.Valid {
		return nil, pkgerrors.New(pkgerrors.CodeShippingLimit, "shipping cost exceeds the allowed share of the order").
			WithDetails(map[string]any{
				"shipping_cents":      quote.ShippingCents,
				"max_allowed_cents":   quote.Shipping.MaxAllowedCents,
				"over_limit_cents":    quote.Shipping.OverLimitCents,
				"shipping_percentage": quote.Shipping.ShippingPercentage,
			})
	}

	plan := stockPlan(quote)
	keys := make([]StockKey, 0, len(plan))
	for key := range plan {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].WarehouseID != keys[j].WarehouseID {
			return keys[i].WarehouseID.String() < keys[j].WarehouseID.String()
		}
		return keys[i].ProductID.String() < keys[j].ProductID.String()
	})

	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		locked, lerr := repo.LockStock(ctx, keys)
		if lerr != nil {
			return lerr
		}
		for _, key := range keys {
			available, ok := locked[key]
			if !ok || available < plan[key] {
				return conflictError(key, plan[key], available)
			}
		}

		for _, key := range keys {
			if derr := repo.DecrementStock(ctx, key, plan[key]); derr != nil {
				if derr == gorm.ErrRecordNotFound {
					return conflictError(key, plan[key], locked[key])
				}
				return derr
			}
		}

		number, nerr := repo.NextOrderNumber(ctx)
		if nerr != nil {
			return nerr
		}

		order = orderFromQuote(req, quote, number)
		if _, cerr := repo.CreateOrder(ctx, order); cerr != nil {
			if db.IsUniqueViolation(cerr, "idx_orders_order_number") {
				return pkgerrors.New(pkgerrors.CodeConflict, "order number collided, retry the order")
			}
			return cerr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CommitResult{Order: order, Quote: quote}, nil
}

func (s *service) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	return order, nil
}

// stockPlan aggregates the per-allocation quantities into one decrement
// per ledger row, so an order spanning the same (warehouse, product)
// pair twice locks and decrements it once.
func stockPlan(quote *quotes.Quote) map[StockKey]int {
	plan := make(map[StockKey]int)
	for _, item := range quote.Items {
		for _, alloc := range item.Allocations {
			key := StockKey{WarehouseID: alloc.WarehouseID, ProductID: item.ProductID}
			plan[key] += alloc.Quantity
		}
	}
	return plan
}

func conflictError(key StockKey, required, available int) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, "stock changed while committing, retry the order").
		WithDetails(map[string]any{
			"warehouse_id": key.WarehouseID,
			"product_id":   key.ProductID,
			"required":     required,
			"available":    available,
		})
}

func orderFromQuote(req quotes.OrderRequest, quote *quotes.Quote, number int64) *models.Order {
	order := &models.Order{
		ID:                      uuid.New(),
		OrderNumber:             number,
		Status:                  enums.OrderStatusCompleted,
		CustomerLat:             req.Customer.Lat,
		CustomerLon:             req.Customer.Lon,
		SubtotalCents:           quote.SubtotalCents,
		DiscountCents:           quote.DiscountCents,
		DiscountPercent:         quote.DiscountPercent,
		DiscountedSubtotalCents: quote.DiscountedSubtotalCents,
		ShippingCents:           quote.ShippingCents,
		GrandTotalCents:         quote.GrandTotalCents,
	}
	for _, item := range quote.Items {
		orderItem := models.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents,
		}
		for _, alloc := range item.Allocations {
			orderItem.Shipments = append(orderItem.Shipments, models.Shipment{
				ID:                uuid.New(),
				OrderItemID:       orderItem.ID,
				WarehouseID:       alloc.WarehouseID,
				Quantity:          alloc.Quantity,
				DistanceKm:        alloc.DistanceKm,
				ShippingCostCents: alloc.ShippingCostCents,
			})
		}
		order.Items = append(order.Items, orderItem)
	}
	return order
}
