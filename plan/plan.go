package plan

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/stoverud/ballast/alloc"
	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/gates"
	"github.com/stoverud/ballast/holdpoint"
	"github.com/stoverud/ballast/hydro"
	"github.com/stoverud/ballast/sequence"
	"github.com/stoverud/ballast/tanks"
)

var (
	// ErrBadConfig indicates an engine configuration that cannot run.
	ErrBadConfig = errors.New("plan: invalid configuration")

	// ErrStageOrder indicates a solve request for a stage that is not the
	// next one in the configured order.
	ErrStageOrder = errors.New("plan: stage out of order")

	// ErrPlanComplete indicates every configured stage has been solved.
	ErrPlanComplete = errors.New("plan: all stages solved")

	// ErrStopLatched indicates a hold point returned STOP; the engine
	// refuses to solve until Rearm is called.
	ErrStopLatched = errors.New("plan: engine latched by STOP hold point")

	// ErrNoHoldPoint indicates ConfirmDrafts was called with no stage
	// awaiting confirmation.
	ErrNoHoldPoint = errors.New("plan: no pending hold point")
)

// Stage is one voyage stage: the cargo condition to plan against and the
// stage-specific solver inputs.
type Stage struct {
	ID string

	// Cargo is the non-ballast weight distribution for the stage
	// (holds, stores, fuel), excluding lightship and ballast tanks.
	Cargo []coord.Weight

	// Target, when non-nil, switches the stage to target mode.
	Target *coord.Drafts

	// WaterDepth is charted depth plus forecast tide, meters; required
	// when any applicable gate is UKC-based.
	WaterDepth float64

	// Overrides adjust tank operability or sensor-audited contents before
	// the stage is solved.
	Overrides []tanks.Override

	// Priority lists preferred tank IDs for tie-breaking and pump order.
	Priority []string
}

// Config assembles everything the engine needs. All fields are read once
// by NewEngine; later mutation by the caller has no effect.
type Config struct {
	Frame     coord.Frame
	Table     *hydro.Table
	Lightship coord.Weight
	Gates     *gates.Registry

	// Bands holds the hold-point thresholds; zero value selects
	// holdpoint.DefaultBands.
	Bands holdpoint.Bands

	// RetryBudget bounds the correction loop; ≤ 0 selects the default.
	RetryBudget int

	// Checks run after every solve, in order.
	Checks []alloc.SecondaryCheck

	// Pump configures sequence expansion.
	Pump sequence.Options

	Stages []Stage
}

// StageResult is one solved stage, ready for operator review.
type StageResult struct {
	StageID string

	// Base is the predicted floating condition before any ballast movement.
	Base coord.Drafts

	// Solution carries the deltas, predicted drafts and status.
	Solution alloc.Solution

	// Attempts is the number of correction-loop solves (1 = clean).
	Attempts int

	// Gates re-evaluates every configured gate at the predicted drafts.
	Gates []gates.Result

	// Steps is the timed pumping plan.
	Steps []sequence.Step

	// Inventory is the committed post-stage snapshot.
	Inventory tanks.Inventory
}

// Engine drives the plan. Not safe for concurrent use; a plan is a single
// operator's sequential workflow.
type Engine struct {
	cfg Config
	log *zap.Logger

	inv     tanks.Inventory
	next    int
	latched bool

	// hold is the open checkpoint for the most recently solved stage.
	hold      *holdpoint.Evaluator
	predicted coord.Drafts
}

// Option tunes engine construction.
type Option func(*Engine)

// WithLogger attaches a structured logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine validates the configuration and binds the starting inventory.
//
// Errors: ErrBadConfig (wrapped with the offending detail).
func NewEngine(cfg Config, initial tanks.Inventory, opts ...Option) (*Engine, error) {
	if cfg.Frame.LBP <= 0 || cfg.Frame.Depth <= 0 {
		return nil, fmt.Errorf("%w: frame geometry must be positive", ErrBadConfig)
	}
	if cfg.Table == nil {
		return nil, fmt.Errorf("%w: hydrostatic table required", ErrBadConfig)
	}
	if cfg.Gates == nil {
		return nil, fmt.Errorf("%w: gate registry required", ErrBadConfig)
	}
	if cfg.Lightship.Tonnes <= 0 {
		return nil, fmt.Errorf("%w: lightship weight must be positive", ErrBadConfig)
	}
	if len(cfg.Stages) == 0 {
		return nil, fmt.Errorf("%w: at least one stage", ErrBadConfig)
	}
	seen := make(map[string]struct{}, len(cfg.Stages))
	for _, s := range cfg.Stages {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: empty stage id", ErrBadConfig)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate stage %q", ErrBadConfig, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	if cfg.Bands == (holdpoint.Bands{}) {
		cfg.Bands = holdpoint.DefaultBands()
	}
	if cfg.Pump.PumpRate == 0 && cfg.Pump.Rates == nil {
		cfg.Pump = sequence.DefaultOptions()
	}

	e := &Engine{cfg: cfg, log: zap.NewNop(), inv: initial}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Inventory returns the current committed snapshot.
func (e *Engine) Inventory() tanks.Inventory { return e.inv }

// Remaining reports the IDs of the stages not yet solved, in order.
func (e *Engine) Remaining() []string {
	out := make([]string, 0, len(e.cfg.Stages)-e.next)
	for _, s := range e.cfg.Stages[e.next:] {
		out = append(out, s.ID)
	}
	return out
}

// Latched reports whether a STOP verdict has latched the engine.
func (e *Engine) Latched() bool { return e.latched }

// Rearm clears a STOP latch after the deviation's root cause has been
// resolved. A no-op on an unlatched engine.
func (e *Engine) Rearm() {
	if e.latched {
		e.latched = false
		e.log.Warn("engine re-armed after STOP")
	}
}

// SolveNext solves the next stage in the configured order.
func (e *Engine) SolveNext() (StageResult, error) {
	if e.next >= len(e.cfg.Stages) {
		return StageResult{}, ErrPlanComplete
	}
	return e.Solve(e.cfg.Stages[e.next].ID)
}

// Solve runs the full stage pass for stageID, which must be the next
// unsolved stage. The inventory is committed exactly once, at the end;
// any error leaves the engine's state untouched.
//
// Errors: ErrStopLatched, ErrPlanComplete, ErrStageOrder, plus everything
// the carry-forward, table lookup and allocation layers can report.
func (e *Engine) Solve(stageID string) (StageResult, error) {
	if e.latched {
		return StageResult{}, fmt.Errorf("%w: refusing stage %s", ErrStopLatched, stageID)
	}
	if e.next >= len(e.cfg.Stages) {
		return StageResult{}, ErrPlanComplete
	}
	stage := e.cfg.Stages[e.next]
	if stage.ID != stageID {
		return StageResult{}, fmt.Errorf("%w: want %q, got %q", ErrStageOrder, stage.ID, stageID)
	}
	log := e.log.With(zap.String("stage", stage.ID))

	inv, err := e.inv.CarryForward(stage.Overrides)
	if err != nil {
		return StageResult{}, fmt.Errorf("stage %s carry-forward: %w", stage.ID, err)
	}

	base, coeffs, err := e.baseline(stage, inv)
	if err != nil {
		return StageResult{}, err
	}
	log.Info("baseline established",
		zap.Float64("displacement", coeffs.Displacement),
		zap.Float64("fwd", base.Fwd),
		zap.Float64("aft", base.Aft))

	in := alloc.Input{
		StageID:    stage.ID,
		Frame:      e.cfg.Frame,
		Coeffs:     coeffs,
		Base:       base,
		WaterDepth: stage.WaterDepth,
		Tanks:      inv.Tanks(),
		Gates:      e.cfg.Gates.Applicable(stage.ID),
		Target:     stage.Target,
		Priority:   stage.Priority,
	}
	res, err := alloc.Correct(in, e.cfg.Checks, e.cfg.RetryBudget)
	if err != nil {
		log.Error("stage solve failed", zap.Error(err))
		return StageResult{}, err
	}
	sol := res.Solution

	gateResults := e.cfg.Gates.Evaluate(gates.EvalInput{
		Drafts:     sol.Predicted,
		Depth:      e.cfg.Frame.Depth,
		WaterDepth: stage.WaterDepth,
	}, stage.ID)
	for _, gr := range gateResults {
		if gr.Status == gates.StatusFail {
			// The solver treats gates as hard constraints; a failing
			// re-evaluation means the linearization drifted.
			return StageResult{}, fmt.Errorf("%w: gate %q fails at predicted drafts (margin %.4f m)",
				alloc.ErrNumerical, gr.Gate.Name, gr.Margin)
		}
	}

	pump := e.cfg.Pump
	pump.Priority = stage.Priority
	steps, err := sequence.Build(sol.Deltas, pump)
	if err != nil {
		return StageResult{}, fmt.Errorf("stage %s sequencing: %w", stage.ID, err)
	}

	committed, err := inv.Apply(tankDeltas(sol.Deltas))
	if err != nil {
		return StageResult{}, fmt.Errorf("stage %s commit: %w", stage.ID, err)
	}

	hold, err := holdpoint.New(stage.ID, stage.ID+".confirm", e.cfg.Bands)
	if err != nil {
		return StageResult{}, err
	}

	e.inv = committed
	e.next++
	e.hold = hold
	e.predicted = sol.Predicted

	log.Info("stage solved",
		zap.Int("attempts", res.Attempts),
		zap.Int("steps", len(steps)),
		zap.Float64("moved_tonnes", sol.Moved),
		zap.String("status", sol.Status.String()),
		zap.Float64("pred_fwd", sol.Predicted.Fwd),
		zap.Float64("pred_aft", sol.Predicted.Aft))

	return StageResult{
		StageID:   stage.ID,
		Base:      base,
		Solution:  sol,
		Attempts:  res.Attempts,
		Gates:     gateResults,
		Steps:     steps,
		Inventory: committed,
	}, nil
}

// ConfirmDrafts closes the open hold point with the measured drafts. A STOP
// verdict latches the engine. A RECALCULATE verdict does not: the caller is
// expected to re-baseline the coming stage through content overrides.
//
// Errors: ErrNoHoldPoint, holdpoint.ErrAlreadyEvaluated.
func (e *Engine) ConfirmDrafts(measured coord.Drafts) (holdpoint.Record, error) {
	if e.hold == nil {
		return holdpoint.Record{}, ErrNoHoldPoint
	}
	rec, err := e.hold.Evaluate(e.predicted, measured)
	if err != nil {
		return holdpoint.Record{}, err
	}
	e.hold = nil

	e.log.Info("hold point evaluated",
		zap.String("stage", rec.StageID),
		zap.Float64("deviation_cm", rec.DeviationCm),
		zap.String("band", rec.Band.String()))
	if rec.Band == holdpoint.Stop {
		e.latched = true
		e.log.Error("STOP verdict: engine latched",
			zap.String("stage", rec.StageID),
			zap.Float64("deviation_cm", rec.DeviationCm))
	}
	return rec, nil
}

// baseline derives the pre-solve floating condition for a stage from the
// hydrostatic table and the stage's weight distribution.
func (e *Engine) baseline(stage Stage, inv tanks.Inventory) (coord.Drafts, hydro.Coeffs, error) {
	weights := make([]coord.Weight, 0, 1+len(stage.Cargo)+inv.Len())
	weights = append(weights, e.cfg.Lightship)
	weights = append(weights, stage.Cargo...)
	var disp float64
	for _, w := range weights {
		disp += w.Tonnes
	}
	for _, tk := range inv.Tanks() {
		if tk.Content > 0 {
			weights = append(weights, coord.Weight{Tonnes: tk.Content, Pos: tk.Position})
		}
		disp += tk.Content
	}

	mean, err := e.cfg.Table.DraftAt(disp)
	if err != nil {
		return coord.Drafts{}, hydro.Coeffs{}, fmt.Errorf("stage %s displacement lookup: %w", stage.ID, err)
	}
	coeffs, err := e.cfg.Table.At(mean)
	if err != nil {
		return coord.Drafts{}, hydro.Coeffs{}, fmt.Errorf("stage %s coefficient lookup: %w", stage.ID, err)
	}
	base := coord.Predict(e.cfg.Frame, coeffs.MTC, coeffs.LCF, mean, weights)
	return base, coeffs, nil
}

func tankDeltas(ds []alloc.Delta) []tanks.Delta {
	out := make([]tanks.Delta, len(ds))
	for i, d := range ds {
		out[i] = tanks.Delta{TankID: d.TankID, Tonnes: d.Tonnes}
	}
	return out
}
