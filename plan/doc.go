// Package plan runs a voyage ballast plan stage by stage: the engine owns
// the tank inventory, solves each stage against the vessel's gates, and
// enforces the hold-point discipline between stages.
//
// One stage pass:
//
//  1. carry the inventory forward, resolving the stage's overrides;
//  2. derive the pre-solve floating condition from the hydrostatic table
//     (displacement → mean draft → coefficients → base drafts);
//  3. solve the allocation under the stage's applicable gates, with the
//     configured secondary checks and retry budget;
//  4. re-evaluate every gate against the predicted drafts — an independent
//     confirmation of the solver's own constraints;
//  5. expand the deltas into a timed pumping sequence;
//  6. commit the deltas to the inventory, exactly once.
//
// After a stage is solved the engine opens a hold point: ConfirmDrafts
// bands the measured drafts against the prediction. A STOP verdict latches
// the engine — every further solve returns ErrStopLatched until Rearm is
// called after the root cause is cleared. Stages run strictly in the
// configured order; solving out of order is refused with ErrStageOrder.
//
// The engine is deterministic: the same configuration and the same
// measured drafts reproduce the same plans, logs aside.
package plan
