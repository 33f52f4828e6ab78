// Package holdpoint classifies the deviation between predicted and measured
// drafts at a mandatory checkpoint into an operator decision band.
//
// One Evaluator guards one checkpoint. It is a tiny state machine:
//
//	PENDING ──Evaluate──▶ GO | RECALCULATE | STOP   (terminal)
//
// The transition rule is fixed by the operating procedure, boundaries
// inclusive at ≤:
//
//	deviation ≤ 2 cm          → GO          proceed as planned
//	2 cm < deviation ≤ 4 cm   → RECALCULATE re-solve remaining stages from
//	                                        the measured state
//	deviation > 4 cm          → STOP        halt; root-cause investigation
//
// Forward and aft are banded independently; the checkpoint's overall band
// is the more severe of the two. A second Evaluate on the same checkpoint
// is refused with ErrAlreadyEvaluated — a hold point is consumed exactly
// once, and a STOP outcome is expected to latch the owning engine until it
// is explicitly re-armed.
package holdpoint
