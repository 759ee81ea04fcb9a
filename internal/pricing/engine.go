// Package pricing applies volume discounts, the distance-weighted
// shipping formula and the shipping-validity cap. All monetary math runs
// on decimals with round-half-up semantics; float money is not allowed
// here because cent-level drift compounds across shipments and tiers.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mherran/stockroute-backend/pkg/config"
)

type discountTier struct {
	minQty  int
	maxQty  int // 0 means open-ended
	percent int
}

// discountTiers is a fixed, contiguous, non-overlapping table scanned
// linearly; the first matching tier wins.
var discountTiers = []discountTier{
	{minQty: 1, maxQty: 24, percent: 0},
	{minQty: 25, maxQty: 49, percent: 5},
	{minQty: 50, maxQty: 99, percent: 10},
	{minQty: 100, maxQty: 249, percent: 15},
	{minQty: 250, maxQty: 0, percent: 20},
}

// Engine prices allocations. The zero value is not usable; construct it
// through NewEngine so the configured rate and cap are applied.
type Engine struct {
	rateCentsPerKgKm decimal.Decimal
	capPercent       decimal.Decimal
}

// NewEngine builds a pricing engine from configuration. Defaults match
// $0.01 per kg-km and a 15% shipping cap.
func NewEngine(cfg config.PricingConfig) *Engine {
	rate := cfg.ShippingRateCentsPerKgKm
	if rate <= 0 {
		rate = 1
	}
	cap := cfg.ShippingCapPercent
	if cap <= 0 {
		cap = 15
	}
	return &Engine{
		rateCentsPerKgKm: decimal.NewFromInt(int64(rate)),
		capPercent:       decimal.NewFromInt(int64(cap)),
	}
}

// DiscountPercent returns the tier percentage for the aggregate quantity.
// Quantities below 1 earn no discount.
func (e *Engine) DiscountPercent(quantity int) int {
	if quantity < 1 {
		return 0
	}
	for _, tier := range discountTiers {
		if quantity < tier.minQty {
			continue
		}
		if tier.maxQty == 0 || quantity <= tier.maxQty {
			return tier.percent
		}
	}
	return 0
}

// Discount captures the tier application over an aggregate subtotal.
type Discount struct {
	Percent            int
	AmountCents        int64
	DiscountedSubtotal int64
}

// ApplyDiscount computes the tier discount directly from the aggregate
// subtotal: amount = round(subtotal * percent / 100), half up.
func (e *Engine) ApplyDiscount(subtotalCents int64, quantity int) Discount {
	percent := e.DiscountPercent(quantity)
	amount := decimal.NewFromInt(subtotalCents).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	return Discount{
		Percent:            percent,
		AmountCents:        amount,
		DiscountedSubtotal: subtotalCents - amount,
	}
}

// ShippingCostCents prices one shipment:
// round(distanceKm * weightKg * quantity * rate), half up.
// Zero distance ships free.
func (e *Engine) ShippingCostCents(distanceKm float64, unitWeightGrams, quantity int) int64 {
	if distanceKm == 0 || unitWeightGrams <= 0 || quantity <= 0 {
		return 0
	}
	weightKg := decimal.New(int64(unitWeightGrams), -3)
	return decimal.NewFromFloat(distanceKm).
		Mul(weightKg).
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(e.rateCentsPerKgKm).
		Round(0).
		IntPart()
}

// ShippingValidity reports whether total shipping stays within the
// configured share of the discounted subtotal.
type ShippingValidity struct {
	Valid              bool
	MaxAllowedCents    int64
	ShippingPercentage float64
	OverLimitCents     int64
}

// EvaluateShipping applies the validity rule. A non-positive discounted
// subtotal is always invalid and reports 100%.
func (e *Engine) EvaluateShipping(totalShippingCents, discountedSubtotalCents int64) ShippingValidity {
	if discountedSubtotalCents <= 0 {
		return ShippingValidity{
			Valid:              false,
			ShippingPercentage: 100,
			OverLimitCents:     maxInt64(0, totalShippingCents),
		}
	}

	discounted := decimal.NewFromInt(discountedSubtotalCents)
	maxAllowed := discounted.
		Mul(e.capPercent).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	percentage, _ := decimal.NewFromInt(totalShippingCents).
		Mul(decimal.NewFromInt(100)).
		Div(discounted).
		Round(2).
		Float64()

	return ShippingValidity{
		Valid:              totalShippingCents <= maxAllowed,
		MaxAllowedCents:    maxAllowed,
		ShippingPercentage: percentage,
		OverLimitCents:     maxInt64(0, totalShippingCents-maxAllowed),
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
