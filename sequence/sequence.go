package sequence

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/stoverud/ballast/alloc"
)

// ErrBadRate indicates a non-positive or non-finite pump rate.
var ErrBadRate = errors.New("sequence: pump rate must be positive and finite")

// Action is the pumping direction of one step.
type Action int

const (
	// Discharge pumps ballast overboard (negative delta).
	Discharge Action = iota
	// Fill takes ballast on (positive delta).
	Fill
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case Discharge:
		return "DISCHARGE"
	case Fill:
		return "FILL"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Step is one crew instruction: move Amount tonnes in/out of one tank.
type Step struct {
	StageID  string
	TankID   string
	Action   Action
	Amount   float64 // tonnes, always positive
	Duration time.Duration
}

// Options tunes plan expansion.
type Options struct {
	// PumpRate is the default transfer rate in t/h for tanks without a
	// dedicated entry in Rates.
	PumpRate float64

	// Rates maps tank ID to a dedicated transfer rate in t/h.
	Rates map[string]float64

	// Priority orders tanks within a phase; unlisted tanks follow in
	// ascending ID order.
	Priority []string
}

// DefaultOptions returns a single shared 100 t/h ballast pump.
func DefaultOptions() Options {
	return Options{PumpRate: 100}
}

// Build expands solved deltas into the ordered pumping plan.
//
// Contracts: every delta's rate (dedicated or default) must be positive.
// Complexity: O(n log n) over n non-zero deltas.
// Errors: ErrBadRate.
func Build(deltas []alloc.Delta, opts Options) ([]Step, error) {
	steps := make([]Step, 0, len(deltas))
	for _, d := range deltas {
		if d.Tonnes == 0 {
			continue
		}
		rate := opts.PumpRate
		if r, ok := opts.Rates[d.TankID]; ok {
			rate = r
		}
		if !(rate > 0) || math.IsInf(rate, 1) {
			return nil, fmt.Errorf("%w: tank %s rate %v", ErrBadRate, d.TankID, rate)
		}

		amount := math.Abs(d.Tonnes)
		action := Fill
		if d.Tonnes < 0 {
			action = Discharge
		}
		steps = append(steps, Step{
			StageID:  d.StageID,
			TankID:   d.TankID,
			Action:   action,
			Amount:   amount,
			Duration: time.Duration(amount/rate*float64(time.Hour)).Round(time.Second),
		})
	}

	rank := make(map[string]int, len(opts.Priority))
	for i, id := range opts.Priority {
		if _, ok := rank[id]; !ok {
			rank[id] = i
		}
	}
	phase := func(s Step) int {
		if s.Action == Discharge {
			return 0
		}
		return 1
	}
	sort.SliceStable(steps, func(i, j int) bool {
		if pi, pj := phase(steps[i]), phase(steps[j]); pi != pj {
			return pi < pj
		}
		ri, iOK := rank[steps[i].TankID]
		rj, jOK := rank[steps[j].TankID]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK != jOK:
			return iOK
		default:
			return steps[i].TankID < steps[j].TankID
		}
	})
	return steps, nil
}

// Total sums the step durations — the stage's pumping time if steps run
// one pump at a time.
func Total(steps []Step) time.Duration {
	var sum time.Duration
	for _, s := range steps {
		sum += s.Duration
	}
	return sum
}
