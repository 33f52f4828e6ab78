package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoverud/ballast/alloc"
	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/gates"
	"github.com/stoverud/ballast/holdpoint"
	"github.com/stoverud/ballast/hydro"
	"github.com/stoverud/ballast/plan"
	"github.com/stoverud/ballast/sequence"
	"github.com/stoverud/ballast/tanks"
)

// The fixture vessel: 120 m, constant TPC=12 and MTC=100 so every number
// is checkable by hand (sinkage 1/1200 m/t, trim moment/10000 m). With
// lightship 3000 t and 1200 t of midship cargo the empty-ballast condition
// floats at exactly 3.00 m even keel.
func testTable(t *testing.T) *hydro.Table {
	t.Helper()
	tbl, err := hydro.NewTable([]hydro.Point{
		{MeanDraft: 2.0, Displacement: 3600, TPC: 12, MTC: 100, LCF: coord.AtMidship},
		{MeanDraft: 3.0, Displacement: 4800, TPC: 12, MTC: 100, LCF: coord.AtMidship},
		{MeanDraft: 4.0, Displacement: 6000, TPC: 12, MTC: 100, LCF: coord.AtMidship},
	})
	require.NoError(t, err)
	return tbl
}

func testRegistry(t *testing.T) *gates.Registry {
	t.Helper()
	reg, err := gates.NewRegistry([]gates.Gate{
		{Name: "aft-departure", Kind: gates.AftMin, Threshold: 3.10, Stages: []string{"S1"}},
		{Name: "aft-canal", Kind: gates.AftMin, Threshold: 3.05, Stages: []string{"S2"}},
	})
	require.NoError(t, err)
	return reg
}

func testInventory(t *testing.T) tanks.Inventory {
	t.Helper()
	inv, err := tanks.NewInventory([]tanks.Tank{
		{ID: "APT", Capacity: 200, MaxContent: 200, Position: coord.AftOf(40)},
		{ID: "DB3", Capacity: 300, MaxContent: 300, Position: coord.AtMidship},
	})
	require.NoError(t, err)
	return inv
}

func testConfig(t *testing.T) plan.Config {
	t.Helper()
	return plan.Config{
		Frame:     coord.Frame{Version: "GA-test", LBP: 120, Depth: 9.5},
		Table:     testTable(t),
		Lightship: coord.Weight{Tonnes: 3000, Pos: coord.AtMidship},
		Gates:     testRegistry(t),
		Stages: []plan.Stage{
			{ID: "S1", Cargo: []coord.Weight{{Tonnes: 1200, Pos: coord.AtMidship}}},
			{ID: "S2", Cargo: []coord.Weight{{Tonnes: 1200, Pos: coord.AtMidship}}},
		},
	}
}

// TestNewEngine_Validation walks the ErrBadConfig taxonomy.
func TestNewEngine_Validation(t *testing.T) {
	inv := testInventory(t)

	cfg := testConfig(t)
	cfg.Table = nil
	_, err := plan.NewEngine(cfg, inv)
	assert.ErrorIs(t, err, plan.ErrBadConfig)

	cfg = testConfig(t)
	cfg.Stages = nil
	_, err = plan.NewEngine(cfg, inv)
	assert.ErrorIs(t, err, plan.ErrBadConfig)

	cfg = testConfig(t)
	cfg.Stages = append(cfg.Stages, plan.Stage{ID: "S1"})
	_, err = plan.NewEngine(cfg, inv)
	assert.ErrorIs(t, err, plan.ErrBadConfig)

	cfg = testConfig(t)
	cfg.Lightship = coord.Weight{}
	_, err = plan.NewEngine(cfg, inv)
	assert.ErrorIs(t, err, plan.ErrBadConfig)
}

// TestEngine_StagePipeline runs the first stage end to end: baseline at
// 3.00 m even keel, the aft gate needs +0.10 m, and APT (the highest aft
// sensitivity, 17/6000 m/t) carries it alone with 600/17 t.
func TestEngine_StagePipeline(t *testing.T) {
	eng, err := plan.NewEngine(testConfig(t), testInventory(t))
	require.NoError(t, err)

	res, err := eng.SolveNext()
	require.NoError(t, err)

	assert.Equal(t, "S1", res.StageID)
	assert.InDelta(t, 3.00, res.Base.Fwd, 1e-9)
	assert.InDelta(t, 3.00, res.Base.Aft, 1e-9)
	assert.Equal(t, 1, res.Attempts)

	require.Len(t, res.Solution.Deltas, 1)
	assert.Equal(t, "APT", res.Solution.Deltas[0].TankID)
	assert.InDelta(t, 600.0/17.0, res.Solution.Deltas[0].Tonnes, 1e-6)
	assert.InDelta(t, 3.10, res.Solution.Predicted.Aft, 1e-9)

	require.Len(t, res.Steps, 1)
	assert.Equal(t, sequence.Fill, res.Steps[0].Action)
	assert.Equal(t, "APT", res.Steps[0].TankID)

	for _, gr := range res.Gates {
		assert.NotEqual(t, gates.StatusFail, gr.Status, gr.Gate.Name)
	}

	apt, ok := res.Inventory.Get("APT")
	require.True(t, ok)
	assert.InDelta(t, 600.0/17.0, apt.Content, 1e-6, "the commit must land in the inventory")
	assert.Equal(t, []string{"S2"}, eng.Remaining())
}

// TestEngine_StageOrder: stages run strictly in configured order.
func TestEngine_StageOrder(t *testing.T) {
	eng, err := plan.NewEngine(testConfig(t), testInventory(t))
	require.NoError(t, err)

	_, err = eng.Solve("S2")
	assert.ErrorIs(t, err, plan.ErrStageOrder)

	_, err = eng.Solve("S1")
	assert.NoError(t, err)
}

// TestEngine_CarriedStateMatchesPrediction: after a GO hold point, the next
// stage's independently re-derived baseline must equal the previous stage's
// linearized prediction exactly — the fixture's coefficients are constant,
// so carry-forward and prediction agree to machine precision.
func TestEngine_CarriedStateMatchesPrediction(t *testing.T) {
	eng, err := plan.NewEngine(testConfig(t), testInventory(t))
	require.NoError(t, err)

	first, err := eng.SolveNext()
	require.NoError(t, err)

	rec, err := eng.ConfirmDrafts(first.Solution.Predicted)
	require.NoError(t, err)
	assert.Equal(t, holdpoint.Go, rec.Band)

	second, err := eng.SolveNext()
	require.NoError(t, err)
	assert.InDelta(t, first.Solution.Predicted.Fwd, second.Base.Fwd, 1e-9)
	assert.InDelta(t, first.Solution.Predicted.Aft, second.Base.Aft, 1e-9)
	assert.Empty(t, second.Solution.Deltas, "aft 3.10 already clears the 3.05 canal gate")
}

// TestEngine_StopLatchesAndRearm: a 6 cm deviation is a STOP; the engine
// refuses further work until re-armed.
func TestEngine_StopLatchesAndRearm(t *testing.T) {
	eng, err := plan.NewEngine(testConfig(t), testInventory(t))
	require.NoError(t, err)

	first, err := eng.SolveNext()
	require.NoError(t, err)

	measured := first.Solution.Predicted
	measured.Aft += 0.06
	rec, err := eng.ConfirmDrafts(measured)
	require.NoError(t, err)
	assert.Equal(t, holdpoint.Stop, rec.Band)
	assert.True(t, eng.Latched())

	_, err = eng.SolveNext()
	assert.ErrorIs(t, err, plan.ErrStopLatched)

	eng.Rearm()
	assert.False(t, eng.Latched())
	_, err = eng.SolveNext()
	assert.NoError(t, err)
}

// TestEngine_ConfirmWithoutHoldPoint: confirming before any solve, or
// twice after one solve, is refused.
func TestEngine_ConfirmWithoutHoldPoint(t *testing.T) {
	eng, err := plan.NewEngine(testConfig(t), testInventory(t))
	require.NoError(t, err)

	_, err = eng.ConfirmDrafts(coord.Drafts{Fwd: 3, Aft: 3})
	assert.ErrorIs(t, err, plan.ErrNoHoldPoint)

	first, err := eng.SolveNext()
	require.NoError(t, err)
	_, err = eng.ConfirmDrafts(first.Solution.Predicted)
	require.NoError(t, err)
	_, err = eng.ConfirmDrafts(first.Solution.Predicted)
	assert.ErrorIs(t, err, plan.ErrNoHoldPoint)
}

// TestEngine_SensorOverrideRebaselines: a sensor-audited 60 t already in
// APT deepens and trims the baseline enough that the departure gate holds
// without pumping a tonne.
func TestEngine_SensorOverrideRebaselines(t *testing.T) {
	cfg := testConfig(t)
	sixty := 60.0
	cfg.Stages[0].Overrides = []tanks.Override{{Target: "APT", Content: &sixty}}

	eng, err := plan.NewEngine(cfg, testInventory(t))
	require.NoError(t, err)

	res, err := eng.SolveNext()
	require.NoError(t, err)

	// 4860 t → mean 3.05; APT moment 2400 t·m → trim 0.24 m.
	assert.InDelta(t, 3.17, res.Base.Aft, 1e-9)
	assert.Empty(t, res.Solution.Deltas)
	apt, ok := res.Inventory.Get("APT")
	require.True(t, ok)
	assert.InDelta(t, 60.0, apt.Content, 1e-9)
}

// TestEngine_PlanComplete: the engine reports completion, not an error
// loop, after the last stage.
func TestEngine_PlanComplete(t *testing.T) {
	eng, err := plan.NewEngine(testConfig(t), testInventory(t))
	require.NoError(t, err)

	_, err = eng.SolveNext()
	require.NoError(t, err)
	_, err = eng.SolveNext()
	require.NoError(t, err)

	_, err = eng.SolveNext()
	assert.ErrorIs(t, err, plan.ErrPlanComplete)
	assert.Empty(t, eng.Remaining())
}

// TestEngine_ChecksWired: a failing secondary check with no possible fix
// surfaces as *alloc.BudgetExhausted through the engine.
func TestEngine_ChecksWired(t *testing.T) {
	cfg := testConfig(t)
	cfg.Checks = []alloc.SecondaryCheck{stuckCheck{}}

	eng, err := plan.NewEngine(cfg, testInventory(t))
	require.NoError(t, err)

	_, err = eng.SolveNext()
	var be *alloc.BudgetExhausted
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "S1", be.StageID)
}

type stuckCheck struct{}

func (stuckCheck) Name() string { return "stuck" }
func (stuckCheck) Inspect(alloc.Input, alloc.Solution) (bool, []alloc.Restriction, string) {
	return false, nil, "always fails"
}
