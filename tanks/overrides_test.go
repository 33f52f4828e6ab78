package tanks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoverud/ballast/tanks"
)

func modePtr(m tanks.Mode) *tanks.Mode { return &m }

func tonnes(v float64) *float64 { return &v }

// TestCarryForward_BaseMatchesPair: a base-name override reaches both tanks
// of a port/starboard pair, explicitly, not by accident.
func TestCarryForward_BaseMatchesPair(t *testing.T) {
	inv := mustInventory(t)

	next, err := inv.CarryForward([]tanks.Override{
		{Target: "VOID3", Mode: modePtr(tanks.ModeFillOnly)},
	})
	require.NoError(t, err)

	p, _ := next.Get("VOID3.P")
	s, _ := next.Get("VOID3.S")
	assert.Equal(t, tanks.ModeFillOnly, p.Mode)
	assert.Equal(t, tanks.ModeFillOnly, s.Mode)

	// Unrelated tanks keep their mode.
	fpt, _ := next.Get("FPT")
	assert.Equal(t, tanks.ModeNormal, fpt.Mode)
}

// TestCarryForward_ExactBeatsBase: documented precedence — the explicit
// VOID3.S override wins over the VOID3 base override for that tank only.
func TestCarryForward_ExactBeatsBase(t *testing.T) {
	inv := mustInventory(t)

	next, err := inv.CarryForward([]tanks.Override{
		{Target: "VOID3", Mode: modePtr(tanks.ModeDisabled)},
		{Target: "VOID3.S", Mode: modePtr(tanks.ModeNormal)},
	})
	require.NoError(t, err)

	p, _ := next.Get("VOID3.P")
	s, _ := next.Get("VOID3.S")
	assert.Equal(t, tanks.ModeDisabled, p.Mode, "base override applies to the sibling")
	assert.Equal(t, tanks.ModeNormal, s.Mode, "exact override wins on its tank")
}

// TestCarryForward_AmbiguityRejected: equal-specificity overrides on the
// same field are an error, never silently merged.
func TestCarryForward_AmbiguityRejected(t *testing.T) {
	inv := mustInventory(t)

	_, err := inv.CarryForward([]tanks.Override{
		{Target: "VOID3", Mode: modePtr(tanks.ModeFillOnly)},
		{Target: "VOID3", Mode: modePtr(tanks.ModeDischargeOnly)},
	})
	assert.ErrorIs(t, err, tanks.ErrAmbiguousOverride)

	_, err = inv.CarryForward([]tanks.Override{
		{Target: "APT", Content: tonnes(50)},
		{Target: "APT", Content: tonnes(60)},
	})
	assert.ErrorIs(t, err, tanks.ErrAmbiguousOverride)

	// Different fields on the same tank are fine.
	_, err = inv.CarryForward([]tanks.Override{
		{Target: "APT", Content: tonnes(50)},
		{Target: "APT", Mode: modePtr(tanks.ModeDischargeOnly)},
	})
	assert.NoError(t, err)
}

// TestCarryForward_SensorContent: an audited sensor reading replaces the
// carried-forward content; an out-of-bounds reading is a capacity violation
// (bad sensor or bad catalog — either needs human eyes).
func TestCarryForward_SensorContent(t *testing.T) {
	inv := mustInventory(t)

	next, err := inv.CarryForward([]tanks.Override{
		{Target: "FPT", Content: tonnes(33.5)},
	})
	require.NoError(t, err)
	fpt, _ := next.Get("FPT")
	assert.InDelta(t, 33.5, fpt.Content, 1e-9)

	_, err = inv.CarryForward([]tanks.Override{
		{Target: "FPT", Content: tonnes(300)},
	})
	var cv *tanks.CapacityViolation
	assert.ErrorAs(t, err, &cv)
}

// TestCarryForward_UnknownTarget rejects overrides that match nothing.
func TestCarryForward_UnknownTarget(t *testing.T) {
	inv := mustInventory(t)
	_, err := inv.CarryForward([]tanks.Override{
		{Target: "WING9", Mode: modePtr(tanks.ModeNormal)},
	})
	assert.ErrorIs(t, err, tanks.ErrUnknownTank)
}
