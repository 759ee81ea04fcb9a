// Package allocation assigns requested stock to warehouses nearest the
// customer. It is a deliberate proximity heuristic: it never backtracks
// to check whether a farther warehouse would make the total cheaper.
package allocation

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/mherran/stockroute-backend/internal/geo"
	"github.com/mherran/stockroute-backend/internal/pricing"
)

// Candidate is one warehouse considered for an item.
type Candidate struct {
	WarehouseID     uuid.UUID
	Location        geo.Point
	AvailableStock  int
	UnitWeightGrams int
}

// Allocation is one slice of the request served from a single warehouse.
type Allocation struct {
	WarehouseID       uuid.UUID
	Quantity          int
	DistanceKm        float64
	ShippingCostCents int64
}

// Result describes how far a request could be satisfied.
type Result struct {
	Allocations       []Allocation
	FulfilledQuantity int
	ShortageQuantity  int
	CanFulfill        bool
	// AvgDistanceKm is demand-weighted: sum(distance*qty)/fulfilled,
	// zero when nothing was fulfilled.
	AvgDistanceKm float64
}

// Allocator walks warehouses nearest-first and drains each until the
// request is covered or candidates run out.
type Allocator struct {
	pricer *pricing.Engine
}

// New builds an allocator that prices shipments with the given engine.
func New(pricer *pricing.Engine) *Allocator {
	return &Allocator{pricer: pricer}
}

// Allocate distributes the requested quantity across candidates.
// Candidates are ordered by ascending distance with a stable
// warehouse-id tie-break so identical inputs always allocate
// identically. Warehouses with no stock are skipped.
func (a *Allocator) Allocate(customer geo.Point, requested int, candidates []Candidate) Result {
	if requested < 1 || len(candidates) == 0 {
		return Result{ShortageQuantity: maxInt(requested, 0), CanFulfill: false}
	}

	type ranked struct {
		Candidate
		distanceKm float64
	}
	order := make([]ranked, len(candidates))
	for i, c := range candidates {
		order[i] = ranked{Candidate: c, distanceKm: geo.DistanceKm(customer, c.Location)}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].distanceKm != order[j].distanceKm {
			return order[i].distanceKm < order[j].distanceKm
		}
		return order[i].WarehouseID.String() < order[j].WarehouseID.String()
	})

	res := Result{}
	remaining := requested
	var weighted float64
	for _, w := range order {
		if remaining == 0 {
			break
		}
		if w.AvailableStock <= 0 {
			continue
		}
		take := minInt(remaining, w.AvailableStock)
		res.Allocations = append(res.Allocations, Allocation{
			WarehouseID:       w.WarehouseID,
			Quantity:          take,
			DistanceKm:        w.distanceKm,
			ShippingCostCents: a.pricer.ShippingCostCents(w.distanceKm, w.UnitWeightGrams, take),
		})
		weighted += w.distanceKm * float64(take)
		remaining -= take
	}

	res.FulfilledQuantity = requested - remaining
	res.ShortageQuantity = remaining
	res.CanFulfill = remaining == 0
	if res.FulfilledQuantity > 0 {
		res.AvgDistanceKm = round2(weighted / float64(res.FulfilledQuantity))
	}
	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
