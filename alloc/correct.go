package alloc

import (
	"fmt"

	"github.com/stoverud/ballast/tanks"
)

// DefaultRetryBudget bounds the correction loop. Exceeding it is a
// stage-level failure requiring human review, never an infinite retry.
const DefaultRetryBudget = 5

// Correct runs Solve and, while any secondary check fails, tightens the
// input per the check's proposed restrictions and re-solves. The loop is
// explicitly bounded: budget ≤ 0 selects DefaultRetryBudget.
//
// Outcomes:
//   - CorrectionResult with the first solution that passes every check
//     (Attempts = number of solves performed);
//   - *BudgetExhausted when the budget runs out, or when a failing check
//     proposes no restriction (no progress possible) — carrying the last
//     attempt for review, which must NOT be executed;
//   - any Solve error (ErrInfeasible, …) propagated as-is: a restriction
//     that makes the stage infeasible is a finding, not a retry trigger.
//
// Checks run in the given order every attempt; all failing checks of one
// attempt contribute their restrictions before the re-solve.
func Correct(in Input, checks []SecondaryCheck, budget int) (CorrectionResult, error) {
	if budget <= 0 {
		budget = DefaultRetryBudget
	}
	work := in.clone()

	var (
		reasons []string
		last    Solution
	)
	for attempt := 1; attempt <= budget; attempt++ {
		sol, err := Solve(work)
		if err != nil {
			return CorrectionResult{}, err
		}
		last = sol

		var fixes []Restriction
		failed := false
		for _, chk := range checks {
			ok, f, reason := chk.Inspect(work, sol)
			if ok {
				continue
			}
			failed = true
			fixes = append(fixes, f...)
			reasons = append(reasons, fmt.Sprintf("attempt %d: %s: %s", attempt, chk.Name(), reason))
		}
		if !failed {
			return CorrectionResult{Solution: sol, Attempts: attempt}, nil
		}
		if len(fixes) == 0 {
			// A check failed but cannot narrow anything further.
			return CorrectionResult{}, &BudgetExhausted{
				StageID: in.StageID, Attempts: attempt, Reasons: reasons, Last: last,
			}
		}
		applyRestrictions(&work, fixes)
	}
	return CorrectionResult{}, &BudgetExhausted{
		StageID: in.StageID, Attempts: budget, Reasons: reasons, Last: last,
	}
}

// applyRestrictions tightens tank eligibility in place on the working copy.
func applyRestrictions(in *Input, fixes []Restriction) {
	for _, fx := range fixes {
		for i := range in.Tanks {
			tk := &in.Tanks[i]
			if tk.ID != fx.TankID {
				continue
			}
			if fx.BanFill {
				switch tk.Mode {
				case tanks.ModeNormal:
					tk.Mode = tanks.ModeDischargeOnly
				case tanks.ModeFillOnly:
					tk.Mode = tanks.ModeDisabled
				}
			}
			if fx.BanDischarge {
				switch tk.Mode {
				case tanks.ModeNormal:
					tk.Mode = tanks.ModeFillOnly
				case tanks.ModeDischargeOnly:
					tk.Mode = tanks.ModeDisabled
				}
			}
			if fx.MaxFill > 0 && tk.Content+fx.MaxFill < tk.MaxContent {
				tk.MaxContent = tk.Content + fx.MaxFill
			}
			if fx.MaxDischarge > 0 && tk.Content-fx.MaxDischarge > tk.MinContent {
				tk.MinContent = tk.Content - fx.MaxDischarge
			}
		}
	}
}
