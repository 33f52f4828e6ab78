// Package hydro provides the vessel's tabulated hydrostatic curve and a
// strict piecewise-linear interpolator over it.
//
// A Table is built once from Points ordered by strictly increasing mean
// draft (and, as a consequence of physics, strictly increasing
// displacement). Two lookups are offered:
//
//   - At(draft):            {TPC, MTC, LCF, Displacement} at a mean draft
//   - DraftAt(displacement): the inverse lookup, mean draft at a displacement
//
// Both are linear between the two bracketing points and refuse to
// extrapolate: a query outside the table's domain returns a *DomainError
// (matching ErrOutOfDomain). Out-of-domain means the input data is wrong or
// the vessel is outside its documented loading range — either way the run
// must halt for verification; a silently extrapolated coefficient would feed
// a physically wrong plan downstream. There is no fallback and no retry.
//
// Complexity: lookups are O(log n) via binary search; construction is O(n).
package hydro
