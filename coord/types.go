package coord

import (
	"fmt"
	"math"
)

// Longitudinal is a signed distance from midship along the vessel's
// centerline, aft positive, forward negative. The zero value is midship.
//
// The inner field is unexported on purpose: the only ways to obtain a
// Longitudinal are AftOf, ForwardOf, AtMidship and FromMidship, so the sign
// convention lives in exactly one place.
type Longitudinal struct {
	m float64
}

// AtMidship is the origin of the longitudinal frame.
var AtMidship = Longitudinal{}

// AftOf returns a position the given number of meters aft of midship.
// meters must be non-negative; a negative magnitude is a programmer error
// (use ForwardOf) and panics.
func AftOf(meters float64) Longitudinal {
	if meters < 0 || math.IsNaN(meters) {
		panic(fmt.Sprintf("coord: AftOf requires a non-negative magnitude, got %g", meters))
	}
	return Longitudinal{m: meters}
}

// ForwardOf returns a position the given number of meters forward of
// midship. meters must be non-negative; a negative magnitude panics.
func ForwardOf(meters float64) Longitudinal {
	if meters < 0 || math.IsNaN(meters) {
		panic(fmt.Sprintf("coord: ForwardOf requires a non-negative magnitude, got %g", meters))
	}
	return Longitudinal{m: -meters}
}

// FromMidship is the single canonical conversion for externally supplied
// signed positions (catalog files, hydrostatic tables): aft positive,
// forward negative. All ingestion paths must funnel through here.
func FromMidship(signed float64) Longitudinal {
	return Longitudinal{m: signed}
}

// Meters reports the signed offset from midship (aft positive).
func (l Longitudinal) Meters() float64 { return l.m }

// IsForward reports whether the position lies forward of midship.
func (l Longitudinal) IsForward() bool { return l.m < 0 }

// String renders the position with its side, e.g. "12.50m aft" or "midship".
func (l Longitudinal) String() string {
	switch {
	case l.m > 0:
		return fmt.Sprintf("%.2fm aft", l.m)
	case l.m < 0:
		return fmt.Sprintf("%.2fm fwd", -l.m)
	default:
		return "midship"
	}
}

// Frame is the vessel's fixed geometry, passed explicitly into every
// component that needs it — never ambient global state. Version identifies
// the geometry revision so results can be traced to the data set they were
// computed against.
type Frame struct {
	// Version of the geometry data set (free-form, e.g. "GA-2024-rev3").
	Version string

	// LBP is the length between perpendiculars in meters. Must be > 0.
	LBP float64

	// Depth is the molded depth in meters, used for freeboard evaluation.
	Depth float64
}

// Weight is a point mass in the longitudinal frame.
type Weight struct {
	Tonnes float64
	Pos    Longitudinal
}

// Drafts is a forward/aft draft pair in meters.
type Drafts struct {
	Fwd float64
	Aft float64
}

// Mean returns the mean of the forward and aft drafts.
func (d Drafts) Mean() float64 { return (d.Fwd + d.Aft) / 2 }

// Trim returns aft − forward draft: positive when trimmed by the stern.
func (d Drafts) Trim() float64 { return d.Aft - d.Fwd }

// Max returns the deeper of the two drafts, governing freeboard and UKC.
func (d Drafts) Max() float64 { return math.Max(d.Fwd, d.Aft) }
