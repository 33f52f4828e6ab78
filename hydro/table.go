package hydro

import (
	"math"
	"sort"

	"github.com/stoverud/ballast/coord"
)

// Point is one row of the hydrostatic curve table.
type Point struct {
	// MeanDraft in meters; the table key.
	MeanDraft float64
	// Displacement in tonnes at MeanDraft.
	Displacement float64
	// TPC: tonnes per centimeter immersion.
	TPC float64
	// MTC: moment to change trim one centimeter, t·m/cm.
	MTC float64
	// LCF: longitudinal center of flotation.
	LCF coord.Longitudinal
}

// Coeffs is the interpolated hydrostatic state at a given mean draft.
type Coeffs struct {
	Displacement float64
	TPC          float64
	MTC          float64
	LCF          coord.Longitudinal
}

// Table is an immutable hydrostatic curve, ordered by mean draft.
type Table struct {
	pts []Point
}

// NewTable validates and copies pts into an immutable Table.
//
// Contracts:
//   - at least two points;
//   - strictly increasing MeanDraft AND Displacement;
//   - all of MeanDraft, Displacement, TPC, MTC finite and > 0.
//
// Errors: ErrTooFewPoints, ErrNotMonotonic, ErrBadValue.
func NewTable(pts []Point) (*Table, error) {
	if len(pts) < 2 {
		return nil, ErrTooFewPoints
	}
	cp := make([]Point, len(pts))
	copy(cp, pts)
	for i, p := range cp {
		if !positiveFinite(p.MeanDraft) || !positiveFinite(p.Displacement) ||
			!positiveFinite(p.TPC) || !positiveFinite(p.MTC) || math.IsNaN(p.LCF.Meters()) {
			return nil, ErrBadValue
		}
		if i > 0 && (p.MeanDraft <= cp[i-1].MeanDraft || p.Displacement <= cp[i-1].Displacement) {
			return nil, ErrNotMonotonic
		}
	}
	return &Table{pts: cp}, nil
}

// Domain reports the table's valid mean-draft range [min, max].
func (t *Table) Domain() (min, max float64) {
	return t.pts[0].MeanDraft, t.pts[len(t.pts)-1].MeanDraft
}

// At interpolates {TPC, MTC, LCF, Displacement} at the given mean draft.
//
// Errors: *DomainError (matches ErrOutOfDomain) when draft is outside the
// table. Never extrapolates.
//
// Complexity: O(log n).
func (t *Table) At(draft float64) (Coeffs, error) {
	lo, hi := t.Domain()
	if math.IsNaN(draft) || draft < lo || draft > hi {
		return Coeffs{}, &DomainError{Axis: "draft", Query: draft, Min: lo, Max: hi}
	}
	i := sort.Search(len(t.pts), func(k int) bool { return t.pts[k].MeanDraft >= draft })
	if t.pts[i].MeanDraft == draft {
		p := t.pts[i]
		return Coeffs{Displacement: p.Displacement, TPC: p.TPC, MTC: p.MTC, LCF: p.LCF}, nil
	}
	a, b := t.pts[i-1], t.pts[i]
	f := (draft - a.MeanDraft) / (b.MeanDraft - a.MeanDraft)
	return Coeffs{
		Displacement: lerp(a.Displacement, b.Displacement, f),
		TPC:          lerp(a.TPC, b.TPC, f),
		MTC:          lerp(a.MTC, b.MTC, f),
		LCF:          coord.FromMidship(lerp(a.LCF.Meters(), b.LCF.Meters(), f)),
	}, nil
}

// DraftAt performs the inverse lookup: the mean draft at which the vessel
// displaces the given tonnage. Strict monotonicity of Displacement
// (enforced by NewTable) makes the inverse well defined.
//
// Errors: *DomainError (matches ErrOutOfDomain) when displacement is
// outside the table.
//
// Complexity: O(log n).
func (t *Table) DraftAt(displacement float64) (float64, error) {
	lo, hi := t.pts[0].Displacement, t.pts[len(t.pts)-1].Displacement
	if math.IsNaN(displacement) || displacement < lo || displacement > hi {
		return 0, &DomainError{Axis: "displacement", Query: displacement, Min: lo, Max: hi}
	}
	i := sort.Search(len(t.pts), func(k int) bool { return t.pts[k].Displacement >= displacement })
	if t.pts[i].Displacement == displacement {
		return t.pts[i].MeanDraft, nil
	}
	a, b := t.pts[i-1], t.pts[i]
	f := (displacement - a.Displacement) / (b.Displacement - a.Displacement)
	return lerp(a.MeanDraft, b.MeanDraft, f), nil
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
