package pricing

import (
	"testing"

	"github.com/mherran/stockroute-backend/pkg/config"
)

func defaultEngine() *Engine {
	return NewEngine(config.PricingConfig{ShippingRateCentsPerKgKm: 1, ShippingCapPercent: 15})
}

func TestDiscountTierBoundaries(t *testing.T) {
	engine := defaultEngine()

	cases := []struct {
		qty  int
		want int
	}{
		{0, 0},
		{-3, 0},
		{1, 0},
		{24, 0},
		{25, 5},
		{49, 5},
		{50, 10},
		{99, 10},
		{100, 15},
		{249, 15},
		{250, 20},
		{100000, 20},
	}
	for _, tc := range cases {
		if got := engine.DiscountPercent(tc.qty); got != tc.want {
			t.Fatalf("DiscountPercent(%d) = %d, want %d", tc.qty, got, tc.want)
		}
	}
}

func TestApplyDiscountRoundsHalfUp(t *testing.T) {
	engine := defaultEngine()

	// 5% of 1250 cents is 62.5, which must round up to 63.
	d := engine.ApplyDiscount(1250, 25)
	if d.Percent != 5 {
		t.Fatalf("expected 5%%, got %d", d.Percent)
	}
	if d.AmountCents != 63 {
		t.Fatalf("expected 63 cents discount, got %d", d.AmountCents)
	}
	if d.DiscountedSubtotal != 1187 {
		t.Fatalf("expected discounted subtotal 1187, got %d", d.DiscountedSubtotal)
	}
}

func TestApplyDiscountNoTier(t *testing.T) {
	engine := defaultEngine()
	d := engine.ApplyDiscount(100000, 10)
	if d.Percent != 0 || d.AmountCents != 0 || d.DiscountedSubtotal != 100000 {
		t.Fatalf("unexpected discount %+v", d)
	}
}

func TestShippingCostFormula(t *testing.T) {
	engine := defaultEngine()

	// 100 km * 0.365 kg * 10 units * 1 cent = 365 cents.
	if got := engine.ShippingCostCents(100, 365, 10); got != 365 {
		t.Fatalf("expected 365 cents, got %d", got)
	}
	if got := engine.ShippingCostCents(0, 365, 10); got != 0 {
		t.Fatalf("zero distance should ship free, got %d", got)
	}
	// 1.5 km * 1 kg * 1 unit = 1.5 cents, rounds half up to 2.
	if got := engine.ShippingCostCents(1.5, 1000, 1); got != 2 {
		t.Fatalf("expected half-up rounding to 2, got %d", got)
	}
}

func TestEvaluateShippingBoundary(t *testing.T) {
	engine := defaultEngine()

	at := engine.EvaluateShipping(15000, 100000)
	if !at.Valid {
		t.Fatalf("15000 of 100000 should be valid: %+v", at)
	}
	if at.MaxAllowedCents != 15000 {
		t.Fatalf("expected cap 15000, got %d", at.MaxAllowedCents)
	}
	if at.ShippingPercentage != 15 {
		t.Fatalf("expected 15%%, got %v", at.ShippingPercentage)
	}
	if at.OverLimitCents != 0 {
		t.Fatalf("expected no overage, got %d", at.OverLimitCents)
	}

	over := engine.EvaluateShipping(15100, 100000)
	if over.Valid {
		t.Fatalf("15100 of 100000 should be invalid")
	}
	if over.OverLimitCents != 100 {
		t.Fatalf("expected 100 cents over, got %d", over.OverLimitCents)
	}
	if over.ShippingPercentage != 15.1 {
		t.Fatalf("expected 15.1%%, got %v", over.ShippingPercentage)
	}
}

func TestEvaluateShippingNonPositiveSubtotal(t *testing.T) {
	engine := defaultEngine()
	v := engine.EvaluateShipping(500, 0)
	if v.Valid {
		t.Fatalf("zero subtotal must be invalid")
	}
	if v.ShippingPercentage != 100 {
		t.Fatalf("expected percentage pinned to 100, got %v", v.ShippingPercentage)
	}
	if v.OverLimitCents != 500 {
		t.Fatalf("expected whole shipping as overage, got %d", v.OverLimitCents)
	}
}

func TestNewEngineDefaults(t *testing.T) {
	engine := NewEngine(config.PricingConfig{})
	if got := engine.ShippingCostCents(100, 365, 10); got != 365 {
		t.Fatalf("zero-config engine should fall back to rate 1, got %d", got)
	}
	if v := engine.EvaluateShipping(15000, 100000); !v.Valid {
		t.Fatalf("zero-config engine should fall back to 15%% cap")
	}
}
