package allocation

import (
	"testing"

	"github.com/google/uuid"

	"github.com/mherran/stockroute-backend/internal/geo"
	"github.com/mherran/stockroute-backend/internal/pricing"
	"github.com/mherran/stockroute-backend/pkg/config"
)

var (
	london     = geo.Point{Lat: 51.5072, Lon: -0.1276}
	manchester = geo.Point{Lat: 53.4808, Lon: -2.2426}
	edinburgh  = geo.Point{Lat: 55.9533, Lon: -3.1883}
)

func newAllocator() *Allocator {
	return New(pricing.NewEngine(config.PricingConfig{}))
}

func ukCandidates(londonStock, manchesterStock, edinburghStock int) (candidates []Candidate, ids map[string]uuid.UUID) {
	ids = map[string]uuid.UUID{
		"london":     uuid.New(),
		"manchester": uuid.New(),
		"edinburgh":  uuid.New(),
	}
	candidates = []Candidate{
		{WarehouseID: ids["edinburgh"], Location: edinburgh, AvailableStock: edinburghStock, UnitWeightGrams: 500},
		{WarehouseID: ids["london"], Location: london, AvailableStock: londonStock, UnitWeightGrams: 500},
		{WarehouseID: ids["manchester"], Location: manchester, AvailableStock: manchesterStock, UnitWeightGrams: 500},
	}
	return candidates, ids
}

func TestAllocateNearestFirstSplit(t *testing.T) {
	candidates, ids := ukCandidates(100, 200, 150)
	res := newAllocator().Allocate(london, 150, candidates)

	if !res.CanFulfill {
		t.Fatalf("expected fulfilment: %+v", res)
	}
	if res.FulfilledQuantity != 150 || res.ShortageQuantity != 0 {
		t.Fatalf("unexpected quantities: %+v", res)
	}
	if len(res.Allocations) != 2 {
		t.Fatalf("expected 2 shipments, got %d", len(res.Allocations))
	}
	if res.Allocations[0].WarehouseID != ids["london"] || res.Allocations[0].Quantity != 100 {
		t.Fatalf("first shipment should drain london: %+v", res.Allocations[0])
	}
	if res.Allocations[1].WarehouseID != ids["manchester"] || res.Allocations[1].Quantity != 50 {
		t.Fatalf("second shipment should top up from manchester: %+v", res.Allocations[1])
	}
	if res.Allocations[0].DistanceKm > res.Allocations[1].DistanceKm {
		t.Fatalf("shipments must be ordered by non-decreasing distance")
	}
}

func TestAllocateShortage(t *testing.T) {
	candidates, _ := ukCandidates(100, 200, 150)
	res := newAllocator().Allocate(london, 500, candidates)

	if res.CanFulfill {
		t.Fatalf("expected shortage: %+v", res)
	}
	if res.FulfilledQuantity != 450 || res.ShortageQuantity != 50 {
		t.Fatalf("expected 450 fulfilled with 50 short, got %+v", res)
	}
	total := 0
	for _, a := range res.Allocations {
		total += a.Quantity
	}
	if total != 450 {
		t.Fatalf("allocations must sum to fulfilled quantity, got %d", total)
	}
}

func TestAllocateEmptyAndZeroStock(t *testing.T) {
	allocator := newAllocator()

	res := allocator.Allocate(london, 10, nil)
	if res.CanFulfill || len(res.Allocations) != 0 || res.ShortageQuantity != 10 {
		t.Fatalf("empty candidate list should fail cleanly: %+v", res)
	}

	candidates, _ := ukCandidates(0, 0, 0)
	res = allocator.Allocate(london, 10, candidates)
	if res.CanFulfill || len(res.Allocations) != 0 {
		t.Fatalf("all-zero stock should fail cleanly: %+v", res)
	}
	if res.AvgDistanceKm != 0 {
		t.Fatalf("avg distance should be zero when nothing fulfilled, got %v", res.AvgDistanceKm)
	}
}

func TestAllocateDeterministicTieBreak(t *testing.T) {
	idA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	idB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	same := geo.Point{Lat: 48.8566, Lon: 2.3522}
	candidates := []Candidate{
		{WarehouseID: idB, Location: same, AvailableStock: 5, UnitWeightGrams: 100},
		{WarehouseID: idA, Location: same, AvailableStock: 5, UnitWeightGrams: 100},
	}

	for i := 0; i < 5; i++ {
		res := newAllocator().Allocate(same, 5, candidates)
		if len(res.Allocations) != 1 || res.Allocations[0].WarehouseID != idA {
			t.Fatalf("tie-break must prefer lower warehouse id, got %+v", res.Allocations)
		}
	}
}

func TestAllocateWeightedAverageDistance(t *testing.T) {
	candidates, _ := ukCandidates(100, 200, 150)
	res := newAllocator().Allocate(london, 150, candidates)

	var weighted float64
	for _, a := range res.Allocations {
		weighted += a.DistanceKm * float64(a.Quantity)
	}
	want := weighted / float64(res.FulfilledQuantity)
	if diff := res.AvgDistanceKm - want; diff > 0.01 || diff < -0.01 {
		t.Fatalf("avg distance %v, want about %v", res.AvgDistanceKm, want)
	}
}

func TestAllocateLocalWarehouseShipsFree(t *testing.T) {
	id := uuid.New()
	res := newAllocator().Allocate(london, 3, []Candidate{
		{WarehouseID: id, Location: london, AvailableStock: 10, UnitWeightGrams: 2000},
	})
	if !res.CanFulfill {
		t.Fatalf("expected fulfilment: %+v", res)
	}
	if res.Allocations[0].DistanceKm != 0 || res.Allocations[0].ShippingCostCents != 0 {
		t.Fatalf("zero distance must cost zero: %+v", res.Allocations[0])
	}
}
