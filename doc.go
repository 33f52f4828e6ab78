// Package ballast plans ballast-water transfers for a vessel undergoing
// staged cargo operations, keeping forward/aft draft, freeboard, and
// under-keel clearance inside operational gates at every stage.
//
// 🚢 What is ballast?
//
//	A deterministic planning engine that brings together:
//		• Hydrostatics: piecewise-linear interpolation over the vessel's curve table
//		• Draft model: trimming moment about the center of flotation → FWD/AFT drafts
//		• Tank inventory: atomic, carry-forward ballast state with operability modes
//		• Gates: draft/freeboard/UKC limits with guard-band tolerances
//		• Allocation: an LP over per-tank fill/discharge deltas, priority tie-breaking
//		• Correction: bounded re-solve loop for trim envelope and stability rules
//		• Hold points: measured-vs-predicted banding into GO / RECALCULATE / STOP
//		• Sequencing: solved deltas → deterministic, timed pump operations
//
// ✨ Why choose ballast?
//
//   - Deterministic – identical inputs always reproduce the identical plan
//   - Sign-safe – signed longitudinal positions go through one canonical constructor
//   - Fail-loud – out-of-domain lookups, capacity breaches and infeasible stages
//     are typed errors, never silent fallbacks
//   - Explicit configuration – no ambient globals; every component takes its
//     frame, table and limits by value
//
// The module is organized into focused subpackages:
//
//	coord/     — longitudinal reference frame, signed positions, draft/trim model
//	hydro/     — hydrostatic curve table and interpolator
//	tanks/     — tank inventory state, operability modes, override resolution
//	gates/     — operational limit registry and guard-band evaluation
//	alloc/     — gate-constrained allocation solver + iterative correction loop
//	holdpoint/ — checkpoint deviation banding state machine
//	sequence/  — pump-step sequence builder
//	plan/      — stage-sequential engine tying everything together
//	profile/   — YAML run-profile loading and validation
//	cmd/       — the ballast CLI
//
// Quick sketch of a run:
//
//	profile.yaml ──▶ plan.Engine ──▶ stage 1 solve ──▶ pump steps
//	                     │                 │
//	                     │        measured drafts at hold point
//	                     │                 ▼
//	                     └──────── GO / RECALCULATE / STOP
//
// Dive into the package docs for contracts, complexity notes, and the full
// error taxonomy.
package ballast
