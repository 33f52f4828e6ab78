package tanks

import (
	"fmt"
	"strings"
)

// Override adjusts one or more tanks between stages. Target is either an
// exact tank ID ("VOID3.S") or a base name ("VOID3") matching every tank
// whose ID is base + "." + suffix. Nil fields are left untouched.
type Override struct {
	Target string
	// Mode replaces the tank's operability for the coming stage.
	Mode *Mode
	// Content replaces the carried-forward content with a sensor-audited
	// reading (tonnes). The value is external input, already audited.
	Content *float64
}

// fieldKind discriminates which tank field an override touched, so that two
// base-name overrides setting *different* fields on one tank stay legal.
type fieldKind int

const (
	fieldMode fieldKind = iota
	fieldContent
)

// CarryForward produces the next stage's starting inventory: the current
// contents carried over, with overrides resolved and applied.
//
// Resolution precedence (documented, validated, no silent application):
//  1. exact-ID overrides beat base-name overrides for the same field;
//  2. two exact-ID or two base-name overrides hitting the same tank's same
//     field are ambiguous → ErrAmbiguousOverride;
//  3. an override matching no tank → ErrUnknownTank.
//
// Overridden contents must still satisfy the tank's bounds; a sensor value
// outside [MinContent, MaxContent] is reported as *CapacityViolation since
// it signals either a failed sensor or a wrong catalog.
//
// Complexity: O(o·n) resolution over o overrides and n tanks.
func (inv Inventory) CarryForward(overrides []Override) (Inventory, error) {
	type claim struct {
		exact bool
		ov    int // index into overrides
	}
	// (tankID, field) -> winning claim
	claims := make(map[string]map[fieldKind]claim)

	stake := func(id string, f fieldKind, c claim) error {
		if claims[id] == nil {
			claims[id] = make(map[fieldKind]claim)
		}
		prev, taken := claims[id][f]
		switch {
		case !taken:
			claims[id][f] = c
		case prev.exact == c.exact:
			return fmt.Errorf("%w: overrides %q and %q both set the same field on %q",
				ErrAmbiguousOverride, overrides[prev.ov].Target, overrides[c.ov].Target, id)
		case c.exact: // exact beats base
			claims[id][f] = c
		}
		return nil
	}

	for oi, ov := range overrides {
		matched := inv.match(ov.Target)
		if len(matched) == 0 {
			return inv, fmt.Errorf("%w: override target %q", ErrUnknownTank, ov.Target)
		}
		exact := len(matched) == 1 && matched[0] == ov.Target
		for _, id := range matched {
			if ov.Mode != nil {
				if err := stake(id, fieldMode, claim{exact: exact, ov: oi}); err != nil {
					return inv, err
				}
			}
			if ov.Content != nil {
				if err := stake(id, fieldContent, claim{exact: exact, ov: oi}); err != nil {
					return inv, err
				}
			}
		}
	}

	// Claims are unambiguous: materialize the resolved per-tank config.
	ts := make([]Tank, len(inv.ts))
	copy(ts, inv.ts)
	for i := range ts {
		fs, ok := claims[ts[i].ID]
		if !ok {
			continue
		}
		if c, ok := fs[fieldMode]; ok {
			ts[i].Mode = *overrides[c.ov].Mode
		}
		if c, ok := fs[fieldContent]; ok {
			v := *overrides[c.ov].Content
			if v < ts[i].MinContent || v > ts[i].MaxContent {
				return inv, &CapacityViolation{TankID: ts[i].ID, Delta: v - ts[i].Content,
					Content: ts[i].Content, Min: ts[i].MinContent, Max: ts[i].MaxContent}
			}
			ts[i].Content = v
		}
	}
	return Inventory{ts: ts}, nil
}

// match returns the tank IDs an override target addresses: the exact ID if
// it exists, otherwise every ID of the form target + "." + suffix.
func (inv Inventory) match(target string) []string {
	if inv.find(target) >= 0 {
		return []string{target}
	}
	var ids []string
	prefix := target + "."
	for _, tk := range inv.ts {
		if strings.HasPrefix(tk.ID, prefix) {
			ids = append(ids, tk.ID)
		}
	}
	return ids
}
