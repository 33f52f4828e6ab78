package holdpoint

import (
	"errors"
	"fmt"
	"math"

	"github.com/stoverud/ballast/coord"
)

var (
	// ErrAlreadyEvaluated indicates a second Evaluate on a consumed
	// checkpoint. Hold points are single-shot by procedure.
	ErrAlreadyEvaluated = errors.New("holdpoint: checkpoint already evaluated")

	// ErrBadBands indicates thresholds that are non-positive or inverted.
	ErrBadBands = errors.New("holdpoint: invalid band thresholds")
)

// Band is the operator decision at a checkpoint.
type Band int

const (
	// Pending: not yet evaluated.
	Pending Band = iota
	// Go: deviation within tolerance, proceed.
	Go
	// Recalculate: remaining stages must be re-solved from the measured
	// state, not the predicted one.
	Recalculate
	// Stop: operations halt; no further solving until re-armed.
	Stop
)

// String implements fmt.Stringer.
func (b Band) String() string {
	switch b {
	case Pending:
		return "PENDING"
	case Go:
		return "GO"
	case Recalculate:
		return "RECALCULATE"
	case Stop:
		return "STOP"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// Bands holds the decision thresholds in centimeters. Boundaries are
// inclusive: a deviation of exactly GoMax is still GO.
type Bands struct {
	GoMax     float64
	RecalcMax float64
}

// DefaultBands returns the procedure's standard 2 cm / 4 cm thresholds.
func DefaultBands() Bands {
	return Bands{GoMax: 2.0, RecalcMax: 4.0}
}

// classify bands a single deviation in centimeters.
func (b Bands) classify(devCm float64) Band {
	switch {
	case devCm <= b.GoMax:
		return Go
	case devCm <= b.RecalcMax:
		return Recalculate
	default:
		return Stop
	}
}

// Record is the consumed checkpoint, fit for downstream reporting.
type Record struct {
	StageID string
	StepID  string

	PredictedFwd float64
	PredictedAft float64
	MeasuredFwd  float64
	MeasuredAft  float64

	// DeviationCm is the governing (larger) of the two per-end deviations.
	DeviationCm float64
	Band        Band
}

// Evaluator is the state machine for one checkpoint.
type Evaluator struct {
	stageID string
	stepID  string
	bands   Bands
	band    Band
}

// New builds a pending Evaluator for one checkpoint.
//
// Errors: ErrBadBands unless 0 < GoMax ≤ RecalcMax.
func New(stageID, stepID string, bands Bands) (*Evaluator, error) {
	if !(bands.GoMax > 0) || bands.RecalcMax < bands.GoMax ||
		math.IsInf(bands.RecalcMax, 0) || math.IsNaN(bands.RecalcMax) {
		return nil, ErrBadBands
	}
	return &Evaluator{stageID: stageID, stepID: stepID, bands: bands, band: Pending}, nil
}

// Band reports the current state.
func (e *Evaluator) Band() Band { return e.band }

// Evaluate consumes the checkpoint: it bands forward and aft independently
// and records the more severe outcome. Terminal — a second call returns
// ErrAlreadyEvaluated with an empty record.
func (e *Evaluator) Evaluate(predicted, measured coord.Drafts) (Record, error) {
	if e.band != Pending {
		return Record{}, fmt.Errorf("%w: %s/%s is %s", ErrAlreadyEvaluated, e.stageID, e.stepID, e.band)
	}

	devFwd := math.Abs(measured.Fwd-predicted.Fwd) * 100
	devAft := math.Abs(measured.Aft-predicted.Aft) * 100

	band := e.bands.classify(devFwd)
	if ab := e.bands.classify(devAft); ab > band {
		band = ab
	}
	e.band = band

	return Record{
		StageID:      e.stageID,
		StepID:       e.stepID,
		PredictedFwd: predicted.Fwd,
		PredictedAft: predicted.Aft,
		MeasuredFwd:  measured.Fwd,
		MeasuredAft:  measured.Aft,
		DeviationCm:  math.Max(devFwd, devAft),
		Band:         band,
	}, nil
}
