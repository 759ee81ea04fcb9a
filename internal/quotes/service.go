package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mherran/stockroute-backend/internal/allocation"
	"github.com/mherran/stockroute-backend/internal/geo"
	"github.com/mherran/stockroute-backend/internal/pricing"
	"github.com/mherran/stockroute-backend/internal/warehouses"
	"github.com/mherran/stockroute-backend/pkg/db/models"
	pkgerrors "github.com/mherran/stockroute-backend/pkg/errors"
)

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type stockLoader interface {
	ListStockForProduct(ctx context.Context, productID uuid.UUID) ([]warehouses.ProductStock, error)
}

// Service builds quotes. It is pure against a point-in-time stock
// snapshot: identical inputs over identical stock always produce an
// identical quote, and nothing here mutates the ledger.
type Service interface {
	BuildQuote(ctx context.Context, req OrderRequest) (*Quote, error)
}

type service struct {
	products  productLoader
	stock     stockLoader
	allocator *allocation.Allocator
	pricer    *pricing.Engine
}

// NewService builds the quote service backed by the provided stack.
func NewService(products productLoader, stock stockLoader, allocator *allocation.Allocator, pricer *pricing.Engine) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock loader required")
	}
	if allocator == nil {
		return nil, fmt.Errorf("allocator required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	return &service{
		products:  products,
		stock:     stock,
		allocator: allocator,
		pricer:    pricer,
	}, nil
}

// BuildQuote validates the request, allocates every item independently
// and aggregates the totals. Item evaluation never short-circuits: a
// multi-item request reports every failing item, not just the first.
func (s *service) BuildQuote(ctx context.Context, req OrderRequest) (*Quote, error) {
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if !req.Customer.InRange() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer coordinates out of range").
			WithDetails(map[string]any{"lat": req.Customer.Lat, "lon": req.Customer.Lon})
	}

	customer := geo.Point{Lat: req.Customer.Lat, Lon: req.Customer.Lon}
	quote := &Quote{Valid: true, Items: make([]ItemQuote, 0, len(req.Items))}

	for _, line := range req.Items {
		item, err := s.quoteItem(ctx, customer, line)
		if err != nil {
			return nil, err
		}
		if item.Issue != nil {
			quote.Valid = false
		}
		quote.TotalQuantity += line.Quantity
		quote.SubtotalCents += item.SubtotalCents
		quote.ShippingCents += item.ShippingCents
		quote.Items = append(quote.Items, item)
	}

	if !quote.Valid {
		// Grand total is undefined for an invalid quote.
		return quote, nil
	}

	discount := s.pricer.ApplyDiscount(quote.SubtotalCents, quote.TotalQuantity)
	quote.DiscountPercent = discount.Percent
	quote.DiscountCents = discount.AmountCents
	quote.DiscountedSubtotalCents = discount.DiscountedSubtotal
	quote.Shipping = s.pricer.EvaluateShipping(quote.ShippingCents, quote.DiscountedSubtotalCents)
	quote.GrandTotalCents = quote.DiscountedSubtotalCents + quote.ShippingCents
	return quote, nil
}

func (s *service) quoteItem(ctx context.Context, customer geo.Point, line OrderItemRequest) (ItemQuote, error) {
	item := ItemQuote{ProductID: line.ProductID, Quantity: line.Quantity}

	if line.Quantity < 1 {
		item.Issue = &ItemIssue{
			Code:              pkgerrors.CodeValidation,
			Message:           "quantity must be at least 1",
			RequestedQuantity: line.Quantity,
		}
		return item, nil
	}

	product, err := s.products.FindByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item.Issue = &ItemIssue{Code: pkgerrors.CodeValidation, Message: "product not found"}
			return item, nil
		}
		return item, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		item.Issue = &ItemIssue{Code: pkgerrors.CodeValidation, Message: "product is not available"}
		return item, nil
	}

	item.ProductSKU = product.SKU
	item.UnitPriceCents = product.UnitPriceCents
	item.SubtotalCents = product.UnitPriceCents * int64(line.Quantity)

	stock, err := s.stock.ListStockForProduct(ctx, line.ProductID)
	if err != nil {
		return item, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouse stock")
	}

	candidates := make([]allocation.Candidate, 0, len(stock))
	available := 0
	for _, row := range stock {
		available += row.Quantity
		candidates = append(candidates, allocation.Candidate{
			WarehouseID:     row.WarehouseID,
			Location:        geo.Point{Lat: row.Location.Lat, Lon: row.Location.Lon},
			AvailableStock:  row.Quantity,
			UnitWeightGrams: product.UnitWeightGrams,
		})
	}

	result := s.allocator.Allocate(customer, line.Quantity, candidates)
	item.Allocations = result.Allocations
	item.FulfilledQuantity = result.FulfilledQuantity
	item.ShortageQuantity = result.ShortageQuantity
	item.AvailableQuantity = available
	item.CanFulfill = result.CanFulfill
	item.AvgDistanceKm = result.AvgDistanceKm
	for _, alloc := range result.Allocations {
		item.ShippingCents += alloc.ShippingCostCents
	}

	if !result.CanFulfill {
		item.Issue = &ItemIssue{
			Code:              pkgerrors.CodeFulfillment,
			Message:           "insufficient stock",
			RequestedQuantity: line.Quantity,
			AvailableQuantity: available,
		}
	}
	return item, nil
}
