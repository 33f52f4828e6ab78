// Package tanks holds the per-stage ballast tank inventory — the only
// mutable state in the planning engine — and the rules for changing it.
//
// # Inventory
//
// An Inventory is a value-semantics snapshot of every tank's capacity,
// content, allowed range, longitudinal position and operability mode.
// Mutating operations return a new Inventory; the receiver is never touched,
// so a stage solve can be retried from an untouched snapshot.
//
// Apply is all-or-nothing: either every delta in the vector respects tank
// bounds and operability, or the inventory is returned unchanged with a
// *CapacityViolation. Partial application is forbidden — a half-applied
// vector would desynchronize the inventory from the weight distribution the
// draft model was solved against.
//
// # Carry-forward and overrides
//
// CarryForward produces the next stage's starting inventory. Stage overrides
// (operability changes, sensor-audited content readings) address tanks
// either by exact ID or by base name: the base "VOID3" matches the
// port/starboard pair "VOID3.P" and "VOID3.S". Resolution is explicit and
// happens before any solve:
//
//   - an exact-ID override always wins over a base-name override;
//   - two overrides of equal specificity touching the same tank's same field
//     are ambiguous and rejected (ErrAmbiguousOverride), never merged;
//   - an override matching no tank is rejected (ErrUnknownTank).
//
// The solver therefore always runs against a fully resolved per-tank
// configuration — a base-name pattern can never silently leak onto a
// sibling tank.
package tanks
