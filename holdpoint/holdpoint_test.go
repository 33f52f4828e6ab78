package holdpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/holdpoint"
)

func newEval(t *testing.T) *holdpoint.Evaluator {
	t.Helper()
	ev, err := holdpoint.New("VOID3", "VOID3.S", holdpoint.DefaultBands())
	require.NoError(t, err)
	return ev
}

// TestEvaluate_Bands drives the inclusive band boundaries: exactly 2.00 cm
// is still GO, 2.01 cm tips into RECALCULATE; exactly 4.00 cm is still
// RECALCULATE, 4.01 cm tips into STOP.
func TestEvaluate_Bands(t *testing.T) {
	cases := []struct {
		name  string
		devCm float64
		want  holdpoint.Band
	}{
		{"zero", 0.00, holdpoint.Go},
		{"well inside", 0.50, holdpoint.Go},
		{"go boundary inclusive", 2.00, holdpoint.Go},
		{"just over go", 2.01, holdpoint.Recalculate},
		{"recalc boundary inclusive", 4.00, holdpoint.Recalculate},
		{"just over recalc", 4.01, holdpoint.Stop},
		{"gross", 12.00, holdpoint.Stop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := newEval(t)
			predicted := coord.Drafts{Fwd: 2.200, Aft: 2.700}
			measured := coord.Drafts{Fwd: 2.200 + tc.devCm/100, Aft: 2.700}

			rec, err := ev.Evaluate(predicted, measured)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rec.Band)
			assert.InDelta(t, tc.devCm, rec.DeviationCm, 1e-9)
			assert.Equal(t, tc.want, ev.Band())
		})
	}
}

// TestEvaluate_WorstEndGoverns: the forward end is fine but the aft end is
// out of the GO band — the checkpoint must take the aft verdict.
func TestEvaluate_WorstEndGoverns(t *testing.T) {
	ev := newEval(t)
	rec, err := ev.Evaluate(
		coord.Drafts{Fwd: 2.200, Aft: 2.700},
		coord.Drafts{Fwd: 2.205, Aft: 2.730}, // 0.5 cm vs 3.0 cm
	)
	require.NoError(t, err)
	assert.Equal(t, holdpoint.Recalculate, rec.Band)
	assert.InDelta(t, 3.0, rec.DeviationCm, 1e-9)
}

// TestEvaluate_NegativeDeviation: deviation is a magnitude — a shallower
// reading counts the same as a deeper one.
func TestEvaluate_NegativeDeviation(t *testing.T) {
	ev := newEval(t)
	rec, err := ev.Evaluate(
		coord.Drafts{Fwd: 2.200, Aft: 2.700},
		coord.Drafts{Fwd: 2.200, Aft: 2.650}, // 5 cm shallow
	)
	require.NoError(t, err)
	assert.Equal(t, holdpoint.Stop, rec.Band)
}

// TestEvaluate_TypicalGo reproduces a routine sounding: predicted
// 2.200/2.700, measured 2.205/2.695 — 0.5 cm both ends, a clean GO.
func TestEvaluate_TypicalGo(t *testing.T) {
	ev := newEval(t)
	rec, err := ev.Evaluate(
		coord.Drafts{Fwd: 2.200, Aft: 2.700},
		coord.Drafts{Fwd: 2.205, Aft: 2.695},
	)
	require.NoError(t, err)
	assert.Equal(t, holdpoint.Go, rec.Band)
	assert.InDelta(t, 0.5, rec.DeviationCm, 1e-9)
	assert.Equal(t, "VOID3", rec.StageID)
	assert.Equal(t, "VOID3.S", rec.StepID)
}

// TestEvaluate_Terminal: a checkpoint is consumed by its first Evaluate;
// the second attempt is refused and the recorded band is unchanged.
func TestEvaluate_Terminal(t *testing.T) {
	ev := newEval(t)
	_, err := ev.Evaluate(coord.Drafts{Fwd: 2.2, Aft: 2.7}, coord.Drafts{Fwd: 2.2, Aft: 2.7})
	require.NoError(t, err)
	require.Equal(t, holdpoint.Go, ev.Band())

	_, err = ev.Evaluate(coord.Drafts{Fwd: 2.2, Aft: 2.7}, coord.Drafts{Fwd: 2.2, Aft: 2.9})
	assert.ErrorIs(t, err, holdpoint.ErrAlreadyEvaluated)
	assert.Equal(t, holdpoint.Go, ev.Band(), "a refused re-evaluation must not move the state")
}

// TestNew_BadBands rejects inverted and non-positive thresholds.
func TestNew_BadBands(t *testing.T) {
	_, err := holdpoint.New("S", "P", holdpoint.Bands{GoMax: 0, RecalcMax: 4})
	assert.ErrorIs(t, err, holdpoint.ErrBadBands)

	_, err = holdpoint.New("S", "P", holdpoint.Bands{GoMax: 4, RecalcMax: 2})
	assert.ErrorIs(t, err, holdpoint.ErrBadBands)
}

// TestBand_String covers the operator-facing labels.
func TestBand_String(t *testing.T) {
	assert.Equal(t, "PENDING", holdpoint.Pending.String())
	assert.Equal(t, "GO", holdpoint.Go.String())
	assert.Equal(t, "RECALCULATE", holdpoint.Recalculate.String())
	assert.Equal(t, "STOP", holdpoint.Stop.String())
}
