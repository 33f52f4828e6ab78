package tanks

import (
	"errors"
	"fmt"

	"github.com/stoverud/ballast/coord"
)

var (
	// ErrDuplicateTank indicates two catalog entries share an ID.
	ErrDuplicateTank = errors.New("tanks: duplicate tank id")

	// ErrBadTank indicates a tank whose bounds or content are inconsistent
	// (Min ≤ Content ≤ Max ≤ Capacity, all finite, Min ≥ 0).
	ErrBadTank = errors.New("tanks: inconsistent tank definition")

	// ErrUnknownTank indicates a delta or override addressed to a tank that
	// does not exist in the inventory.
	ErrUnknownTank = errors.New("tanks: unknown tank")

	// ErrAmbiguousOverride indicates two overrides of equal specificity
	// targeting the same tank field. Ambiguity is rejected, never merged.
	ErrAmbiguousOverride = errors.New("tanks: ambiguous override")
)

// Mode is a tank's operability for a stage.
type Mode int

const (
	// ModeNormal tanks may fill and discharge.
	ModeNormal Mode = iota
	// ModeFillOnly tanks may only receive non-negative deltas.
	ModeFillOnly
	// ModeDischargeOnly tanks may only receive non-positive deltas.
	ModeDischargeOnly
	// ModeDisabled tanks are not eligible solver inputs at all.
	ModeDisabled
)

// String renders the mode the way catalog files spell it.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFillOnly:
		return "fill_only"
	case ModeDischargeOnly:
		return "discharge_only"
	case ModeDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Tank is one ballast tank's stage state. All tonnages are in tonnes.
type Tank struct {
	ID       string
	Capacity float64
	Content  float64
	// MinContent/MaxContent bound the operational fill range; MaxContent
	// may sit below Capacity (e.g. a 98% pressing limit).
	MinContent float64
	MaxContent float64
	Position   coord.Longitudinal
	Mode       Mode
	// FreeSurface is the free-surface moment (t·m) the tank contributes to
	// the stability budget while slack. Zero means "not modeled".
	FreeSurface float64
}

// Headroom is the tonnage the tank can still take before MaxContent.
func (t Tank) Headroom() float64 { return t.MaxContent - t.Content }

// Stock is the tonnage the tank can give up before MinContent.
func (t Tank) Stock() float64 { return t.Content - t.MinContent }

// Slack reports whether the tank is partially filled (free-surface active).
func (t Tank) Slack() bool { return t.Content > t.MinContent && t.Content < t.MaxContent }

// Delta is a signed content change for one tank: fill positive, discharge
// negative. A zero delta is a valid no-op.
type Delta struct {
	TankID string
	Tonnes float64
}

// CapacityViolation reports a delta that would push a tank outside its
// bounds or against its operability mode. The inventory it was applied to
// is guaranteed untouched.
type CapacityViolation struct {
	TankID    string
	Delta     float64 // the offending signed delta
	Content   float64 // content before the delta
	Min, Max  float64 // operational bounds
	ModeBreak bool    // true when the mode, not the bounds, was violated
	Mode      Mode
}

func (e *CapacityViolation) Error() string {
	if e.ModeBreak {
		return fmt.Sprintf("tanks: delta %+.3ft on %q violates mode %s",
			e.Delta, e.TankID, e.Mode)
	}
	return fmt.Sprintf("tanks: delta %+.3ft on %q leaves content %.3ft outside [%.3f, %.3f]",
		e.Delta, e.TankID, e.Content+e.Delta, e.Min, e.Max)
}
