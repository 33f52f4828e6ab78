package alloc

import (
	"fmt"
	"math"

	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/tanks"
)

// checkTol absorbs linearization round-off in secondary checks, meters.
const checkTol = 1e-9

// TrimEnvelope fails a solution whose predicted |trim| exceeds MaxTrim.
// Its fix bans, for every moved tank, the direction that pushed the trim
// toward the breach, steering the re-solve onto lower-lever tanks.
type TrimEnvelope struct {
	MaxTrim float64 // meters, > 0
}

// Name implements SecondaryCheck.
func (TrimEnvelope) Name() string { return "trim-envelope" }

// Inspect implements SecondaryCheck.
func (t TrimEnvelope) Inspect(in Input, sol Solution) (bool, []Restriction, string) {
	trim := sol.Predicted.Trim()
	if math.Abs(trim) <= t.MaxTrim+checkTol {
		return true, nil, ""
	}

	excess := 1.0 // trimmed too far by the stern
	if trim < 0 {
		excess = -1.0
	}
	var fixes []Restriction
	for _, d := range sol.Deltas {
		tk, ok := tankByID(in, d.TankID)
		if !ok {
			continue
		}
		// Moment contribution of this delta, aft-positive.
		moment := d.Tonnes * (tk.Position.Meters() - in.Coeffs.LCF.Meters())
		if moment*excess <= 0 {
			continue // this delta eased the trim, keep it available
		}
		if d.Tonnes > 0 {
			fixes = append(fixes, Restriction{TankID: d.TankID, BanFill: true})
		} else {
			fixes = append(fixes, Restriction{TankID: d.TankID, BanDischarge: true})
		}
	}
	return false, fixes, fmt.Sprintf("predicted trim %+.3fm exceeds envelope ±%.3fm", trim, t.MaxTrim)
}

// ForwardDischargeRule enforces the operability rule that no forward tank
// may be used to raise the aft draft: a forward-tank discharge whose net
// effect is an aft-draft increase is banned and the stage re-solved.
type ForwardDischargeRule struct{}

// Name implements SecondaryCheck.
func (ForwardDischargeRule) Name() string { return "forward-discharge-rule" }

// Inspect implements SecondaryCheck.
func (ForwardDischargeRule) Inspect(in Input, sol Solution) (bool, []Restriction, string) {
	var fixes []Restriction
	var offender string
	for _, d := range sol.Deltas {
		if d.Tonnes >= 0 {
			continue
		}
		tk, ok := tankByID(in, d.TankID)
		if !ok || !tk.Position.IsForward() {
			continue
		}
		_, dAft := coord.Sensitivity(in.Frame, in.Coeffs.TPC, in.Coeffs.MTC, in.Coeffs.LCF, tk.Position)
		if dAft*d.Tonnes > checkTol { // discharge raised the aft draft
			fixes = append(fixes, Restriction{TankID: d.TankID, BanDischarge: true})
			offender = d.TankID
		}
	}
	if len(fixes) == 0 {
		return true, nil, ""
	}
	return false, fixes, fmt.Sprintf("forward tank %s discharged to raise aft draft", offender)
}

// StabilityMargin is a free-surface proxy for the stability budget: the
// effective metacentric height GM0 − Σ FSM/Δ over slack tanks must stay at
// or above MinGM. Its fix withdraws the moved slack tank with the largest
// free-surface moment from the eligible set.
type StabilityMargin struct {
	GM0   float64 // solid metacentric height at the stage, meters
	MinGM float64 // required margin, meters
}

// Name implements SecondaryCheck.
func (StabilityMargin) Name() string { return "stability-margin" }

// Inspect implements SecondaryCheck.
func (s StabilityMargin) Inspect(in Input, sol Solution) (bool, []Restriction, string) {
	net := make(map[string]float64, len(sol.Deltas))
	var movedTotal float64
	for _, d := range sol.Deltas {
		net[d.TankID] += d.Tonnes
		movedTotal += d.Tonnes
	}
	disp := in.Coeffs.Displacement + movedTotal

	var (
		fsmSum  float64
		worstID string
		worst   float64
	)
	for _, tk := range in.Tanks {
		content := tk.Content + net[tk.ID]
		slack := content > tk.MinContent+checkTol && content < tk.MaxContent-checkTol
		if !slack || tk.FreeSurface <= 0 {
			continue
		}
		fsmSum += tk.FreeSurface
		moved := math.Abs(net[tk.ID]) > zeroTol
		if moved && (tk.FreeSurface > worst || (tk.FreeSurface == worst && tk.ID < worstID)) {
			worst, worstID = tk.FreeSurface, tk.ID
		}
	}

	gm := s.GM0 - fsmSum/disp
	if gm+checkTol >= s.MinGM {
		return true, nil, ""
	}
	var fixes []Restriction
	if worstID != "" {
		fixes = append(fixes, Restriction{TankID: worstID, BanFill: true, BanDischarge: true})
	}
	return false, fixes, fmt.Sprintf("effective GM %.3fm below minimum %.3fm", gm, s.MinGM)
}

func tankByID(in Input, id string) (tanks.Tank, bool) {
	for _, tk := range in.Tanks {
		if tk.ID == id {
			return tk, true
		}
	}
	return tanks.Tank{}, false
}
