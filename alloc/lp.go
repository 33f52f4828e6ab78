package alloc

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/gates"
	"github.com/stoverud/ballast/tanks"
)

const (
	// zeroTol: solved variable values at or below this are treated as zero
	// (simplex round-off), in tonnes.
	zeroTol = 1e-7

	// violTol: target slack above this (meters) downgrades the status to
	// StatusFeasibleWithViolation. 0.1 mm is far below any sounding.
	violTol = 1e-4

	// slackPenalty is the per-meter cost of target deviation. Movement
	// costs ≈1 per tonne and a meter of draft is worth thousands of
	// tonnes, so the penalty must dominate by orders of magnitude.
	slackPenalty = 1e6

	// priorityEps is the per-rank cost discount that makes priority-list
	// tie-breaking deterministic without distorting the objective.
	priorityEps = 1e-6

	// simplexTol: 0 selects gonum's default pivot tolerance.
	simplexTol = 0
)

// column is one movement variable: a non-negative fill or discharge amount
// for a single eligible tank.
type column struct {
	tankIdx int  // index into program.tanks
	fill    bool // true: fill (+δ), false: discharge (−δ)
	cap     float64
	cost    float64
}

// sign is the column's contribution direction to the signed delta.
func (c column) sign() float64 {
	if c.fill {
		return 1
	}
	return -1
}

// program is the assembled standard-form LP: minimize cᵀx, Ax = b, x ≥ 0.
// Layout: [movement columns | one slack per inequality row | 4 target
// slack halves (fwd⁺ fwd⁻ aft⁺ aft⁻) in target mode].
type program struct {
	tanks []tanks.Tank // eligible-order view, ascending ID
	cols  []column
	af    []float64 // dFwd per tonne, per tank
	aa    []float64 // dAft per tonne, per tank

	c []float64
	a *mat.Dense
	b []float64

	nIneq  int
	target bool
}

// buildProgram assembles the stage LP deterministically.
//
// Contracts: in is already validated (see validate.go).
// Complexity: O((t+g)·n) matrix fill over t tanks and g gate rows.
func buildProgram(in Input) *program {
	p := &program{target: in.Target != nil}

	// Stable tank order: ascending ID.
	p.tanks = make([]tanks.Tank, len(in.Tanks))
	copy(p.tanks, in.Tanks)
	sort.Slice(p.tanks, func(i, j int) bool { return p.tanks[i].ID < p.tanks[j].ID })

	// Per-tank draft sensitivities at the linearization point.
	p.af = make([]float64, len(p.tanks))
	p.aa = make([]float64, len(p.tanks))
	for i, tk := range p.tanks {
		p.af[i], p.aa[i] = coord.Sensitivity(in.Frame, in.Coeffs.TPC, in.Coeffs.MTC, in.Coeffs.LCF, tk.Position)
	}

	// Movement columns: fill then discharge per tank, skipping zero-cap
	// directions so the matrix never carries dead variables.
	rank := priorityRank(in.Priority)
	for i, tk := range p.tanks {
		cost := 1.0
		if r, ok := rank[tk.ID]; ok {
			cost -= priorityEps * float64(len(in.Priority)-r)
		}
		if tk.Mode == tanks.ModeNormal || tk.Mode == tanks.ModeFillOnly {
			if h := tk.Headroom(); h > zeroTol {
				p.cols = append(p.cols, column{tankIdx: i, fill: true, cap: h, cost: cost})
			}
		}
		if tk.Mode == tanks.ModeNormal || tk.Mode == tanks.ModeDischargeOnly {
			if s := tk.Stock(); s > zeroTol {
				p.cols = append(p.cols, column{tankIdx: i, fill: false, cap: s, cost: cost})
			}
		}
	}

	// Inequality rows: one cap row per column, then the gate rows.
	type ineq struct {
		coef []float64 // per movement column
		rhs  float64
	}
	var rows []ineq

	for j, col := range p.cols {
		coef := make([]float64, len(p.cols))
		coef[j] = 1
		rows = append(rows, ineq{coef: coef, rhs: col.cap})
	}

	// gateRow appends Σ(±sens·δ) ≤ rhs; negate flips the coefficient signs
	// (used to express a ≥ constraint), the rhs is always passed in ≤ form.
	gateRow := func(sens []float64, rhs float64, negate bool) {
		coef := make([]float64, len(p.cols))
		for j, col := range p.cols {
			v := col.sign() * sens[col.tankIdx]
			if negate {
				v = -v
			}
			coef[j] = v
		}
		rows = append(rows, ineq{coef: coef, rhs: rhs})
	}

	for _, g := range in.Gates {
		// Each gate pins the guard-banded threshold and constrains the
		// delta-driven draft change against the base margin.
		switch g.Kind {
		case gates.AftMin:
			// AFT₀ + Σ aA·δ ≥ thr−band  ⇔  −Σ aA·δ ≤ AFT₀ − (thr−band)
			gateRow(p.aa, in.Base.Aft-(g.Threshold-g.GuardBand), true)
		case gates.FwdMax:
			// FWD₀ + Σ aF·δ ≤ thr+band
			gateRow(p.af, (g.Threshold+g.GuardBand)-in.Base.Fwd, false)
		case gates.FreeboardMin:
			// Depth − max(FWD,AFT) ≥ thr−band: bound both ends, which is
			// exact for a max() of affine terms.
			limit := in.Frame.Depth - (g.Threshold - g.GuardBand)
			gateRow(p.af, limit-in.Base.Fwd, false)
			gateRow(p.aa, limit-in.Base.Aft, false)
		case gates.UKCMin:
			limit := in.WaterDepth - (g.Threshold - g.GuardBand)
			gateRow(p.af, limit-in.Base.Fwd, false)
			gateRow(p.aa, limit-in.Base.Aft, false)
		}
	}

	p.nIneq = len(rows)

	nEq, nEVars := 0, 0
	if p.target {
		nEq, nEVars = 2, 4
	}
	m := p.nIneq + nEq
	n := len(p.cols) + p.nIneq + nEVars // movement + slacks + (fwd⁺ fwd⁻ aft⁺ aft⁻)

	p.c = make([]float64, n)
	p.b = make([]float64, m)
	p.a = mat.NewDense(m, n, nil)

	for j, col := range p.cols {
		p.c[j] = col.cost
	}
	for r, row := range rows {
		for j, v := range row.coef {
			p.a.Set(r, j, v)
		}
		p.a.Set(r, len(p.cols)+r, 1) // slack
		p.b[r] = row.rhs
	}

	if p.target {
		eqBase := p.nIneq
		eBase := len(p.cols) + p.nIneq
		// FWD equality: Σ aF·δ + e⁺ − e⁻ = targetFwd − FWD₀
		// AFT equality: Σ aA·δ + e⁺ − e⁻ = targetAft − AFT₀
		for j, col := range p.cols {
			p.a.Set(eqBase, j, col.sign()*p.af[col.tankIdx])
			p.a.Set(eqBase+1, j, col.sign()*p.aa[col.tankIdx])
		}
		p.a.Set(eqBase, eBase+0, 1)
		p.a.Set(eqBase, eBase+1, -1)
		p.a.Set(eqBase+1, eBase+2, 1)
		p.a.Set(eqBase+1, eBase+3, -1)
		p.b[eqBase] = in.Target.Fwd - in.Base.Fwd
		p.b[eqBase+1] = in.Target.Aft - in.Base.Aft
		for k := 0; k < 4; k++ {
			p.c[eBase+k] = slackPenalty
		}
	}

	return p
}

// extract converts an optimal simplex point back into the solution domain.
func (p *program) extract(in Input, x []float64) Solution {
	net := make([]float64, len(p.tanks))
	var moved float64
	for j, col := range p.cols {
		v := x[j]
		if v <= zeroTol {
			continue
		}
		net[col.tankIdx] += col.sign() * v
		moved += v
	}

	sol := Solution{StageID: in.StageID, Moved: moved, Predicted: in.Base}
	for i, dv := range net {
		if dv > zeroTol || dv < -zeroTol {
			sol.Deltas = append(sol.Deltas, Delta{TankID: p.tanks[i].ID, Tonnes: dv, StageID: in.StageID})
		}
		sol.Predicted.Fwd += p.af[i] * dv
		sol.Predicted.Aft += p.aa[i] * dv
	}

	if p.target {
		eBase := len(p.cols) + p.nIneq
		sol.ViolationFwd = x[eBase] + x[eBase+1]
		sol.ViolationAft = x[eBase+2] + x[eBase+3]
		if sol.ViolationFwd > violTol || sol.ViolationAft > violTol {
			sol.Status = StatusFeasibleWithViolation
		}
	}
	return sol
}

func priorityRank(priority []string) map[string]int {
	rank := make(map[string]int, len(priority))
	for i, id := range priority {
		if _, ok := rank[id]; !ok {
			rank[id] = i
		}
	}
	return rank
}
