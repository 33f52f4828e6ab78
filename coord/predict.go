package coord

// cmPerMeter converts the per-centimeter hydrostatic coefficients (TPC, MTC)
// into per-meter terms exactly once.
const cmPerMeter = 100.0

// TrimmingMoment sums wᵢ·(posᵢ − lcf) over the weight distribution,
// in tonne-meters, aft-positive.
//
// Complexity: O(n) time, O(1) space.
func TrimmingMoment(weights []Weight, lcf Longitudinal) float64 {
	var tm float64
	for _, w := range weights {
		tm += w.Tonnes * (w.Pos.Meters() - lcf.Meters())
	}
	return tm
}

// Predict computes forward and aft drafts for the given weight distribution.
//
// Contracts:
//   - meanDraft is the mean draft consistent with the distribution's total
//     displacement (callers obtain it from hydro.Table).
//   - mtc is the moment to change trim one centimeter (t·m/cm), > 0.
//   - lcf is the longitudinal center of flotation at meanDraft.
//   - f.LBP must be > 0; the function does not re-validate caller geometry.
//
// The trim is distributed about the LCF, not midship: the forward lever is
// L/2 + lcf and the aft lever L/2 − lcf (lcf signed, aft positive), so the
// split is asymmetric whenever the LCF is off midship.
//
// Complexity: O(n) in the number of weights.
func Predict(f Frame, mtc float64, lcf Longitudinal, meanDraft float64, weights []Weight) Drafts {
	trim := TrimmingMoment(weights, lcf) / (cmPerMeter * mtc)
	return distribute(f, lcf, meanDraft, trim)
}

// Sensitivity returns the change of forward and aft draft per tonne added
// at pos, holding the hydrostatic coefficients fixed (the small-trim
// linearization the allocation solver is built on).
//
//	dFwd = 1/(100·TPC) − (pos−lcf)/(100·MTC) · (L/2 + lcf)/L
//	dAft = 1/(100·TPC) + (pos−lcf)/(100·MTC) · (L/2 − lcf)/L
//
// Complexity: O(1).
func Sensitivity(f Frame, tpc, mtc float64, lcf, pos Longitudinal) (dFwd, dAft float64) {
	sink := 1 / (cmPerMeter * tpc)
	trimPerTonne := (pos.Meters() - lcf.Meters()) / (cmPerMeter * mtc)
	dFwd = sink - trimPerTonne*(f.LBP/2+lcf.Meters())/f.LBP
	dAft = sink + trimPerTonne*(f.LBP/2-lcf.Meters())/f.LBP
	return dFwd, dAft
}

// distribute spreads a trim linearly along LBP, pivoting at the LCF.
func distribute(f Frame, lcf Longitudinal, meanDraft, trim float64) Drafts {
	return Drafts{
		Fwd: meanDraft - trim*(f.LBP/2+lcf.Meters())/f.LBP,
		Aft: meanDraft + trim*(f.LBP/2-lcf.Meters())/f.LBP,
	}
}
