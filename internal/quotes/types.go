package quotes

import (
	"github.com/google/uuid"

	"github.com/mherran/stockroute-backend/internal/allocation"
	"github.com/mherran/stockroute-backend/internal/pricing"
	"github.com/mherran/stockroute-backend/pkg/errors"
	"github.com/mherran/stockroute-backend/pkg/types"
)

// OrderItemRequest is one requested product line.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// OrderRequest is the ephemeral quote/commit input.
type OrderRequest struct {
	Items    []OrderItemRequest   `json:"items"`
	Customer types.GeographyPoint `json:"customer"`
}

// ItemIssue explains why a single item could not be quoted.
type ItemIssue struct {
	Code              errors.Code `json:"code"`
	Message           string      `json:"message"`
	RequestedQuantity int         `json:"requested_quantity,omitempty"`
	AvailableQuantity int         `json:"available_quantity,omitempty"`
}

// ItemQuote is the per-item allocation breakdown.
type ItemQuote struct {
	ProductID         uuid.UUID               `json:"product_id"`
	ProductSKU        string                  `json:"product_sku,omitempty"`
	Quantity          int                     `json:"quantity"`
	UnitPriceCents    int64                   `json:"unit_price_cents"`
	SubtotalCents     int64                   `json:"subtotal_cents"`
	Allocations       []allocation.Allocation `json:"allocations,omitempty"`
	FulfilledQuantity int                     `json:"fulfilled_quantity"`
	ShortageQuantity  int                     `json:"shortage_quantity"`
	AvailableQuantity int                     `json:"available_quantity"`
	CanFulfill        bool                    `json:"can_fulfill"`
	AvgDistanceKm     float64                 `json:"avg_distance_km"`
	ShippingCents     int64                   `json:"shipping_cents"`
	Issue             *ItemIssue              `json:"issue,omitempty"`
}

// Quote is computed per request and never persisted; the commit path
// regenerates it internally before touching storage.
type Quote struct {
	Items                   []ItemQuote              `json:"items"`
	Valid                   bool                     `json:"valid"`
	TotalQuantity           int                      `json:"total_quantity"`
	SubtotalCents           int64                    `json:"subtotal_cents"`
	DiscountPercent         int                      `json:"discount_percent"`
	DiscountCents           int64                    `json:"discount_cents"`
	DiscountedSubtotalCents int64                    `json:"discounted_subtotal_cents"`
	ShippingCents           int64                    `json:"shipping_cents"`
	Shipping                pricing.ShippingValidity `json:"shipping_validity"`
	GrandTotalCents         int64                    `json:"grand_total_cents"`
}

// Err folds the per-item issues into one typed error, or nil when the
// quote is valid. Validation problems take precedence over shortages so
// callers fix bad input before retrying quantities.
func (q *Quote) Err() *errors.Error {
	if q == nil {
		return errors.New(errors.CodeInternal, "quote missing")
	}
	if q.Valid {
		return nil
	}

	var validation []ItemIssue
	var shortage []ItemIssue
	for _, item := range q.Items {
		if item.Issue == nil {
			continue
		}
		if item.Issue.Code == errors.CodeFulfillment {
			shortage = append(shortage, *item.Issue)
		} else {
			validation = append(validation, *item.Issue)
		}
	}

	if len(validation) > 0 {
		return errors.New(errors.CodeValidation, "one or more items failed validation").
			WithDetails(map[string]any{"items": append(validation, shortage...)})
	}
	if len(shortage) > 0 {
		return errors.New(errors.CodeFulfillment, "insufficient stock for one or more items").
			WithDetails(map[string]any{"items": shortage})
	}
	return errors.New(errors.CodeInternal, "quote invalid without item issues")
}
