// Package coord defines the vessel's longitudinal reference frame and the
// pure draft/trim model built on top of it.
//
// # Sign convention
//
// Exactly one sign convention exists in this module: longitudinal positions
// are measured from midship, aft positive, forward negative. The convention
// is locked inside the Longitudinal value type — client code cannot place a
// weight from a bare float64; it must go through AftOf, ForwardOf, AtMidship,
// or (for externally supplied signed data) FromMidship. This prevents the
// sign rule from being re-derived, and re-derived wrongly, at call sites.
//
// # Draft model
//
// Predict converts a weight distribution into forward and aft drafts:
//
//  1. Trimming moment about the center of flotation:
//     TM = Σ wᵢ · (posᵢ − LCF)
//  2. Trim (m, aft-positive) = TM / (100·MTC), MTC being the moment to
//     change trim one centimeter.
//  3. The trim is distributed linearly along the length between
//     perpendiculars, pivoting at the LCF — NOT split evenly fore and aft
//     unless the LCF happens to sit exactly at midship:
//
//     FWD = mean − trim · (L/2 + lcf) / L
//     AFT = mean + trim · (L/2 − lcf) / L
//
// With the LCF at midship the two offsets collapse to ∓trim/2, and for any
// LCF the identity AFT − FWD = trim holds exactly.
//
// Predict is a pure function: no state, no I/O, no failure mode of its own.
// Mean draft and hydrostatic coefficients come from the hydro package; the
// caller is responsible for evaluating them at a consistent mean draft.
package coord
