package alloc

import (
	"fmt"
	"math"

	"github.com/stoverud/ballast/gates"
)

// validateInput is the single gate every solve passes through before any
// matrix is assembled. Only sentinel-wrapped errors, no panics.
//
// Complexity: O(t + g + p).
func validateInput(in Input) error {
	if in.StageID == "" {
		return fmt.Errorf("%w: empty stage id", ErrBadInput)
	}
	if !(in.Frame.LBP > 0) || math.IsInf(in.Frame.LBP, 0) {
		return fmt.Errorf("%w: frame LBP must be positive", ErrBadInput)
	}
	if !(in.Coeffs.TPC > 0) || !(in.Coeffs.MTC > 0) {
		return fmt.Errorf("%w: TPC and MTC must be positive", ErrBadInput)
	}
	if !finite(in.Base.Fwd) || !finite(in.Base.Aft) {
		return fmt.Errorf("%w: base drafts must be finite", ErrBadInput)
	}

	ids := make(map[string]struct{}, len(in.Tanks))
	for _, tk := range in.Tanks {
		if tk.ID == "" {
			return fmt.Errorf("%w: tank with empty id", ErrBadInput)
		}
		if _, dup := ids[tk.ID]; dup {
			return fmt.Errorf("%w: duplicate tank %q", ErrBadInput, tk.ID)
		}
		ids[tk.ID] = struct{}{}
		if !finite(tk.Position.Meters()) {
			return fmt.Errorf("%w: tank %q has non-finite position", ErrBadInput, tk.ID)
		}
	}

	for _, id := range in.Priority {
		if _, ok := ids[id]; !ok {
			return fmt.Errorf("%w: priority entry %q is not a stage tank", ErrBadInput, id)
		}
	}

	for _, g := range in.Gates {
		if g.GuardBand < 0 || !finite(g.Threshold) {
			return fmt.Errorf("%w: gate %q has invalid threshold or guard-band", ErrBadInput, g.Name)
		}
		if g.Kind == gates.UKCMin && !(in.WaterDepth > 0) {
			return fmt.Errorf("%w: gate %q needs a positive water depth", ErrBadInput, g.Name)
		}
		if g.Kind == gates.FreeboardMin && !(in.Frame.Depth > 0) {
			return fmt.Errorf("%w: gate %q needs a positive molded depth", ErrBadInput, g.Name)
		}
	}

	if in.Target != nil && (!finite(in.Target.Fwd) || !finite(in.Target.Aft)) {
		return fmt.Errorf("%w: target drafts must be finite", ErrBadInput)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
