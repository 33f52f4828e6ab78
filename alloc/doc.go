// Package alloc solves one stage of the ballast plan: find per-tank
// fill/discharge deltas that drive the predicted drafts inside every active
// gate (or onto explicit target drafts) while moving as little ballast as
// possible.
//
// # Formulation
//
// Holding the hydrostatic coefficients fixed at the pre-solve mean draft
// (the standard small-trim linearization), both drafts are affine in the
// delta vector:
//
//	FWD(δ) = FWD₀ + Σ aFᵢ·δᵢ      AFT(δ) = AFT₀ + Σ aAᵢ·δᵢ
//
// with per-tonne sensitivities aF, aA from coord.Sensitivity. Every gate
// becomes a linear inequality on δ, every tank's headroom/stock a bound,
// and the objective Σ|δᵢ| becomes linear by splitting each delta into a
// fill and a discharge variable, both ≥ 0. The resulting program is handed
// to gonum's simplex solver (gonum.org/v1/gonum/optimize/convex/lp) in
// standard form, with one slack column per inequality so the constraint
// matrix always has full row rank.
//
// Explicit target drafts enter as equality constraints relaxed by slack
// variables under a large penalty: the solver then always returns a
// best-effort plan plus the magnitude of the unavoidable deviation
// (StatusFeasibleWithViolation) instead of failing outright. Gates are
// never relaxed: if the hard constraints cannot be met at all the stage is
// ErrInfeasible — a distinct, fatal outcome.
//
// # Determinism
//
// Identical inputs must reproduce the identical delta vector:
//
//   - columns are assembled in ascending tank-ID order, fill before
//     discharge;
//   - ties between equally cheap tanks are broken by the stage's priority
//     list: tank k-th from the front of the list gets its unit movement
//     cost discounted by (len(list)−k)·1e-6, so earlier-listed tanks win;
//   - the simplex pivot rule in gonum is deterministic for a fixed matrix.
//
// # Correction loop
//
// Correct re-solves when a feasible solution violates a secondary check
// (trim envelope, forward-discharge rule, stability margin — anything not
// expressible as a simple linear bound). Each failing check proposes
// Restrictions that narrow the eligible set or tighten a bound; the loop
// re-invokes Solve and is bounded by an explicit retry budget. The typed
// outcome is either a converged CorrectionResult or *BudgetExhausted
// carrying the last attempt — never an infinite retry, never a silent
// fallback to an earlier attempt.
package alloc
