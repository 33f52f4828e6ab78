package alloc

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/stoverud/ballast/gates"
)

// Solve computes the minimal-movement delta vector for one stage.
//
// Contracts:
//   - In gate mode (Target == nil) the active gates are hard constraints;
//     if they cannot be met within tank bounds the stage is ErrInfeasible.
//   - In target mode the target equalities are relaxed by penalized slack;
//     gates stay hard. The result is StatusOptimal when the target was hit
//     within tolerance, StatusFeasibleWithViolation otherwise.
//   - Deterministic: identical inputs yield the identical delta vector.
//
// Errors: ErrBadInput, ErrInfeasible, ErrNumerical — all wrapped with the
// stage id.
//
// Complexity: simplex over (t·2 + rows) variables; t is a few dozen at
// most, so runtime is negligible.
func Solve(in Input) (Solution, error) {
	if err := validateInput(in); err != nil {
		return Solution{}, err
	}

	// Fast path: nothing to do when every gate already holds and no
	// explicit target was requested.
	if in.Target == nil && allGatesHold(in) {
		return Solution{StageID: in.StageID, Predicted: in.Base, Status: StatusOptimal}, nil
	}

	p := buildProgram(in)
	_, x, err := lp.Simplex(p.c, p.a, p.b, simplexTol, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return Solution{}, fmt.Errorf("stage %s: %w", in.StageID, ErrInfeasible)
		default:
			return Solution{}, fmt.Errorf("stage %s: %w: %v", in.StageID, ErrNumerical, err)
		}
	}
	return p.extract(in, x), nil
}

func allGatesHold(in Input) bool {
	env := gates.EvalInput{Drafts: in.Base, Depth: in.Frame.Depth, WaterDepth: in.WaterDepth}
	for _, g := range in.Gates {
		if gates.Margin(g, env) < 0 {
			return false
		}
	}
	return true
}
