package gates

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/stoverud/ballast/coord"
)

var (
	// ErrDuplicateGate indicates two gates share a name.
	ErrDuplicateGate = errors.New("gates: duplicate gate name")
	// ErrBadGate indicates an unknown kind, a non-finite threshold, or a
	// negative guard-band.
	ErrBadGate = errors.New("gates: invalid gate definition")
)

// Kind discriminates what a gate constrains.
type Kind int

const (
	// AftMin: aft draft ≥ threshold (propeller immersion, steerage).
	AftMin Kind = iota
	// FwdMax: forward draft ≤ threshold (berth or slamming limits).
	FwdMax
	// FreeboardMin: molded depth − deepest draft ≥ threshold.
	FreeboardMin
	// UKCMin: water depth − deepest draft ≥ threshold.
	UKCMin
)

// String renders the kind the way gate files spell it.
func (k Kind) String() string {
	switch k {
	case AftMin:
		return "aft_min"
	case FwdMax:
		return "fwd_max"
	case FreeboardMin:
		return "freeboard_min"
	case UKCMin:
		return "ukc_min"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Gate is one operational limit. Immutable per run.
type Gate struct {
	Name      string
	Kind      Kind
	Threshold float64 // meters
	GuardBand float64 // meters, ≥ 0; relaxes the threshold
	// Stages the gate applies to; empty means every stage.
	Stages []string
}

// AppliesTo reports whether the gate is active for the stage.
func (g Gate) AppliesTo(stageID string) bool {
	return len(g.Stages) == 0 || slices.Contains(g.Stages, stageID)
}

// Status is a single gate's evaluation outcome.
type Status int

const (
	// StatusPass: the gate holds within its guard-band.
	StatusPass Status = iota
	// StatusFail: the gate is breached beyond its guard-band.
	StatusFail
	// StatusNotApplicable: the gate was not evaluated for this stage.
	StatusNotApplicable
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusNotApplicable:
		return "N/A"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result pairs a gate with its outcome. Margin is in meters, positive when
// the gate passes with room to spare, negative by the breach amount;
// meaningless for StatusNotApplicable.
type Result struct {
	Gate   Gate
	Status Status
	Margin float64
}

// EvalInput is the stage environment a gate evaluation needs: the predicted
// drafts plus the two vertical references. WaterDepth is charted depth plus
// forecast tide — both derived upstream; only the scalar is consumed here.
type EvalInput struct {
	Drafts     coord.Drafts
	Depth      float64 // molded depth (freeboard reference), meters
	WaterDepth float64 // seabed to waterline (UKC reference), meters
}

// Registry is the immutable set of gates for a run.
type Registry struct {
	gs []Gate
}

// NewRegistry validates the gate definitions once.
//
// Errors: ErrDuplicateGate, ErrBadGate (wrapped with the gate name).
func NewRegistry(gs []Gate) (*Registry, error) {
	seen := make(map[string]struct{}, len(gs))
	cp := make([]Gate, len(gs))
	copy(cp, gs)
	for _, g := range cp {
		if g.Name == "" || g.Kind < AftMin || g.Kind > UKCMin ||
			math.IsNaN(g.Threshold) || math.IsInf(g.Threshold, 0) || g.GuardBand < 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadGate, g.Name)
		}
		if _, dup := seen[g.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGate, g.Name)
		}
		seen[g.Name] = struct{}{}
	}
	return &Registry{gs: cp}, nil
}

// Gates returns a copy of all gate definitions.
func (r *Registry) Gates() []Gate {
	out := make([]Gate, len(r.gs))
	copy(out, r.gs)
	return out
}

// Applicable returns the gates active for a stage, in definition order.
func (r *Registry) Applicable(stageID string) []Gate {
	var out []Gate
	for _, g := range r.gs {
		if g.AppliesTo(stageID) {
			out = append(out, g)
		}
	}
	return out
}

// Evaluate checks every gate against the predicted state. Gates not
// applicable to the stage are reported StatusNotApplicable with zero margin.
//
// Complexity: O(g) over the number of gates.
func (r *Registry) Evaluate(in EvalInput, stageID string) []Result {
	out := make([]Result, 0, len(r.gs))
	for _, g := range r.gs {
		if !g.AppliesTo(stageID) {
			out = append(out, Result{Gate: g, Status: StatusNotApplicable})
			continue
		}
		m := Margin(g, in)
		st := StatusPass
		if m < 0 {
			st = StatusFail
		}
		out = append(out, Result{Gate: g, Status: st, Margin: m})
	}
	return out
}

// Margin computes the guard-banded margin of one gate in meters: ≥ 0 is a
// pass. Exposed for the allocation solver, which turns the same expressions
// into linear constraints.
func Margin(g Gate, in EvalInput) float64 {
	switch g.Kind {
	case AftMin:
		return in.Drafts.Aft - (g.Threshold - g.GuardBand)
	case FwdMax:
		return (g.Threshold + g.GuardBand) - in.Drafts.Fwd
	case FreeboardMin:
		return (in.Depth - in.Drafts.Max()) - (g.Threshold - g.GuardBand)
	case UKCMin:
		return (in.WaterDepth - in.Drafts.Max()) - (g.Threshold - g.GuardBand)
	default:
		return math.NaN()
	}
}
