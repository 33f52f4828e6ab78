// Package gates defines the operational limits a ballast plan must satisfy
// and evaluates predicted drafts against them.
//
// A Gate is one hard limit — minimum aft draft, maximum forward draft,
// minimum freeboard, or minimum under-keel clearance — with an optional
// guard-band tolerance that absorbs sensor and measurement noise. The
// guard-band always relaxes the gate: AFT_MIN with a 2 cm band passes at
// threshold − 0.02 m, FWD_MAX at threshold + 0.02 m. Evaluation with band g
// therefore passes a strict superset of the states that pass with band 0.
//
// Gates carry an applicability stage list. A gate that does not apply to
// the evaluated stage is reported StatusNotApplicable — never silently
// "passed" — so approval logic downstream can distinguish "not evaluated"
// from "evaluated and OK".
//
// The Registry is immutable for the engine's lifetime; Evaluate is a pure
// function of the predicted drafts and the stage environment.
package gates
