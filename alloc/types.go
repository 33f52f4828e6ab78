package alloc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/gates"
	"github.com/stoverud/ballast/hydro"
	"github.com/stoverud/ballast/tanks"
)

var (
	// ErrInfeasible indicates no delta vector satisfies the hard
	// constraints (tank bounds, operability, gates) — fatal to the stage,
	// surfaced to the operator, never papered over.
	ErrInfeasible = errors.New("alloc: stage infeasible under hard constraints")

	// ErrBadInput indicates an inconsistent Input (non-positive geometry
	// or coefficients, duplicate tanks, unknown priority entries).
	ErrBadInput = errors.New("alloc: invalid input")

	// ErrNumerical indicates the LP solver failed for numerical reasons
	// (unbounded or singular program) — a programming or data defect, not
	// an operational infeasibility.
	ErrNumerical = errors.New("alloc: numerical solver failure")
)

// Status classifies a returned Solution.
type Status int

const (
	// StatusOptimal: all constraints met exactly (within tolerance).
	StatusOptimal Status = iota
	// StatusFeasibleWithViolation: the plan is the best effort, but target
	// slack absorbed a deviation — NOT a success; the violation magnitude
	// is reported on the Solution.
	StatusFeasibleWithViolation
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasibleWithViolation:
		return "feasible_with_violation"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Delta is one tank's solved content change: fill positive, discharge
// negative, tonnes.
type Delta struct {
	TankID  string
	Tonnes  float64
	StageID string
}

// Input is everything one stage solve needs. It is treated as immutable by
// Solve; Correct works on its own deep copy.
type Input struct {
	StageID string

	// Frame and Coeffs fix the linearization point: coefficients are
	// evaluated at the pre-solve mean draft and held constant.
	Frame  coord.Frame
	Coeffs hydro.Coeffs

	// Base is the predicted drafts before any ballast movement.
	Base coord.Drafts

	// WaterDepth (charted + forecast tide) for UKC gates, meters.
	WaterDepth float64

	// Tanks is the stage's resolved tank set; operability modes and
	// headroom/stock decide solver eligibility.
	Tanks []tanks.Tank

	// Gates are the stage's applicable gates — hard constraints.
	Gates []gates.Gate

	// Target, when non-nil, adds relaxed equality constraints on both
	// drafts ("target mode"). Nil means "satisfy all gates" only.
	Target *coord.Drafts

	// Priority lists tank IDs whose movement is preferred for
	// tie-breaking, most preferred first.
	Priority []string
}

// clone deep-copies the input so correction attempts can tighten bounds
// without touching the caller's data.
func (in Input) clone() Input {
	cp := in
	cp.Tanks = make([]tanks.Tank, len(in.Tanks))
	copy(cp.Tanks, in.Tanks)
	cp.Gates = make([]gates.Gate, len(in.Gates))
	copy(cp.Gates, in.Gates)
	cp.Priority = append([]string(nil), in.Priority...)
	if in.Target != nil {
		t := *in.Target
		cp.Target = &t
	}
	return cp
}

// Solution is an accepted delta vector plus its predicted consequences.
type Solution struct {
	StageID string
	// Deltas holds one entry per tank the plan moves (|δ| > zeroTol),
	// ascending tank ID. Zero-length means "no movement needed".
	Deltas []Delta
	// Predicted drafts after the deltas, under the linearized model.
	Predicted coord.Drafts
	// Moved is Σ|δ| in tonnes — the objective value before penalties.
	Moved float64
	// Status distinguishes exact satisfaction from best-effort.
	Status Status
	// ViolationFwd/Aft report the target slack per end, meters; zero in
	// gate mode or when the target was met.
	ViolationFwd float64
	ViolationAft float64
}

// Restriction narrows one tank's solver eligibility for a re-solve.
// Zero-valued fields mean "no change".
type Restriction struct {
	TankID       string
	BanFill      bool
	BanDischarge bool
	MaxFill      float64 // >0: cap additional fill below current headroom
	MaxDischarge float64 // >0: cap additional discharge below current stock
}

// SecondaryCheck inspects a feasible solution for constraints the LP cannot
// express. On failure it proposes restrictions for the next attempt.
type SecondaryCheck interface {
	Name() string
	// Inspect returns ok=true when the solution passes. When ok=false,
	// fixes propose bound tightenings; an empty fixes slice means the
	// check cannot make progress and the loop stops early.
	Inspect(in Input, sol Solution) (ok bool, fixes []Restriction, reason string)
}

// CorrectionResult is the converged outcome of the correction loop.
type CorrectionResult struct {
	Solution Solution
	// Attempts is the number of solves performed (1 = no correction needed).
	Attempts int
}

// BudgetExhausted reports a correction loop that ran out of retries before
// every secondary check passed. Last carries the final attempt for human
// review; it is NOT to be executed.
type BudgetExhausted struct {
	StageID  string
	Attempts int
	Reasons  []string
	Last     Solution
}

func (e *BudgetExhausted) Error() string {
	return fmt.Sprintf("alloc: correction budget exhausted after %d attempts on stage %s (%s)",
		e.Attempts, e.StageID, strings.Join(e.Reasons, "; "))
}
