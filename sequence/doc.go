// Package sequence expands a stage's solved tank deltas into an ordered,
// timed pumping plan for the deck crew.
//
// Ordering is fixed and deterministic:
//
//  1. discharges before fills — freeing capacity and shedding weight
//     before taking any on keeps intermediate states conservative;
//  2. within each phase, priority-listed tanks first, in list order;
//  3. remaining tanks in ascending tank-ID order.
//
// Durations come from per-tank pump rates (t/h) with a fleet-wide default
// fallback, rounded to the nearest second. Zero deltas produce no step.
//
// The same deltas with the same options always yield the same step list —
// the plan is reproducible across runs and machines.
package sequence
