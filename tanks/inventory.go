package tanks

import (
	"fmt"
	"math"
	"sort"
)

// Inventory is an immutable snapshot of all tanks, ordered by ID for
// deterministic iteration. The zero value is an empty inventory.
type Inventory struct {
	ts []Tank
}

// NewInventory validates the catalog and builds a snapshot.
//
// Contracts per tank: 0 ≤ MinContent ≤ Content ≤ MaxContent ≤ Capacity,
// all tonnages finite; IDs unique and non-empty.
//
// Errors: ErrBadTank (wrapped with the tank ID), ErrDuplicateTank.
func NewInventory(catalog []Tank) (Inventory, error) {
	ts := make([]Tank, len(catalog))
	copy(ts, catalog)
	sort.Slice(ts, func(i, j int) bool { return ts[i].ID < ts[j].ID })

	for i, tk := range ts {
		if err := checkTank(tk); err != nil {
			return Inventory{}, err
		}
		if i > 0 && ts[i-1].ID == tk.ID {
			return Inventory{}, fmt.Errorf("%w: %q", ErrDuplicateTank, tk.ID)
		}
	}
	return Inventory{ts: ts}, nil
}

// Tanks returns a defensive copy of the snapshot, ordered by ID.
func (inv Inventory) Tanks() []Tank {
	out := make([]Tank, len(inv.ts))
	copy(out, inv.ts)
	return out
}

// Get looks a tank up by ID.
func (inv Inventory) Get(id string) (Tank, bool) {
	i := inv.find(id)
	if i < 0 {
		return Tank{}, false
	}
	return inv.ts[i], true
}

// Len reports the number of tanks.
func (inv Inventory) Len() int { return len(inv.ts) }

// TotalContent sums the ballast currently on board, in tonnes.
func (inv Inventory) TotalContent() float64 {
	var sum float64
	for _, tk := range inv.ts {
		sum += tk.Content
	}
	return sum
}

// Apply returns a new Inventory with the delta vector applied, atomically:
// if any single delta violates its tank's bounds or operability mode, no
// tank's content changes and a *CapacityViolation is returned. Violations
// are rejected, never clamped. Zero deltas are valid no-ops; duplicate
// deltas for one tank accumulate before the bounds check.
//
// Complexity: O(k log n + n) for k deltas over n tanks.
func (inv Inventory) Apply(deltas []Delta) (Inventory, error) {
	// Accumulate per tank first so split deltas are judged by net effect.
	net := make(map[string]float64, len(deltas))
	for _, d := range deltas {
		if inv.find(d.TankID) < 0 {
			return inv, fmt.Errorf("%w: %q", ErrUnknownTank, d.TankID)
		}
		if math.IsNaN(d.Tonnes) || math.IsInf(d.Tonnes, 0) {
			return inv, fmt.Errorf("%w: non-finite delta on %q", ErrBadTank, d.TankID)
		}
		net[d.TankID] += d.Tonnes
	}

	// Validate the whole vector before touching anything.
	for id, dv := range net {
		tk := inv.ts[inv.find(id)]
		if dv > 0 && (tk.Mode == ModeDischargeOnly || tk.Mode == ModeDisabled) ||
			dv < 0 && (tk.Mode == ModeFillOnly || tk.Mode == ModeDisabled) {
			return inv, &CapacityViolation{TankID: id, Delta: dv, Content: tk.Content,
				Min: tk.MinContent, Max: tk.MaxContent, ModeBreak: true, Mode: tk.Mode}
		}
		after := tk.Content + dv
		if after < tk.MinContent-boundsTol || after > tk.MaxContent+boundsTol {
			return inv, &CapacityViolation{TankID: id, Delta: dv, Content: tk.Content,
				Min: tk.MinContent, Max: tk.MaxContent}
		}
	}

	// All clear: build the successor snapshot.
	ts := make([]Tank, len(inv.ts))
	copy(ts, inv.ts)
	for i := range ts {
		if dv, ok := net[ts[i].ID]; ok {
			ts[i].Content = clamp(ts[i].Content+dv, ts[i].MinContent, ts[i].MaxContent)
		}
	}
	return Inventory{ts: ts}, nil
}

// boundsTol absorbs LP round-off on deltas that land exactly on a bound.
// It is a numerical tolerance (≈1 kg), not an operational guard-band.
const boundsTol = 1e-3

// clamp pins round-off inside the bounds a validated delta may graze.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (inv Inventory) find(id string) int {
	i := sort.Search(len(inv.ts), func(k int) bool { return inv.ts[k].ID >= id })
	if i < len(inv.ts) && inv.ts[i].ID == id {
		return i
	}
	return -1
}

func checkTank(tk Tank) error {
	for _, v := range []float64{tk.Capacity, tk.Content, tk.MinContent, tk.MaxContent, tk.FreeSurface} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q has non-finite tonnage", ErrBadTank, tk.ID)
		}
	}
	if tk.ID == "" {
		return fmt.Errorf("%w: empty tank id", ErrBadTank)
	}
	if tk.MinContent < 0 || tk.MinContent > tk.Content ||
		tk.Content > tk.MaxContent || tk.MaxContent > tk.Capacity {
		return fmt.Errorf("%w: %q wants 0 ≤ min ≤ content ≤ max ≤ capacity", ErrBadTank, tk.ID)
	}
	return nil
}
