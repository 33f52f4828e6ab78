package profile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/gates"
	"github.com/stoverud/ballast/holdpoint"
	"github.com/stoverud/ballast/hydro"
	"github.com/stoverud/ballast/plan"
	"github.com/stoverud/ballast/sequence"
	"github.com/stoverud/ballast/tanks"
)

// ErrBadProfile indicates a profile that cannot be parsed or that names an
// unknown enum value. Domain validation failures (bad table, bad tank, bad
// gate) surface as the owning package's own errors.
var ErrBadProfile = errors.New("profile: invalid profile")

// File mirrors the YAML document. Positions are signed meters from
// midship, aft positive.
type File struct {
	Vessel struct {
		Version   string  `yaml:"version"`
		LBP       float64 `yaml:"lbp"`
		Depth     float64 `yaml:"depth"`
		Lightship struct {
			Tonnes   float64 `yaml:"tonnes"`
			Position float64 `yaml:"position"`
		} `yaml:"lightship"`
	} `yaml:"vessel"`

	Hydrostatics []struct {
		Draft        float64 `yaml:"draft"`
		Displacement float64 `yaml:"displacement"`
		TPC          float64 `yaml:"tpc"`
		MTC          float64 `yaml:"mtc"`
		LCF          float64 `yaml:"lcf"`
	} `yaml:"hydrostatics"`

	Tanks []struct {
		ID          string  `yaml:"id"`
		Capacity    float64 `yaml:"capacity"`
		Content     float64 `yaml:"content"`
		Min         float64 `yaml:"min"`
		Max         float64 `yaml:"max"`
		Position    float64 `yaml:"position"`
		Mode        string  `yaml:"mode"`
		FreeSurface float64 `yaml:"free_surface"`
	} `yaml:"tanks"`

	Gates []struct {
		Name      string   `yaml:"name"`
		Kind      string   `yaml:"kind"`
		Threshold float64  `yaml:"threshold"`
		GuardBand float64  `yaml:"guard_band"`
		Stages    []string `yaml:"stages"`
	} `yaml:"gates"`

	Bands struct {
		GoMaxCm     float64 `yaml:"go_max_cm"`
		RecalcMaxCm float64 `yaml:"recalc_max_cm"`
	} `yaml:"bands"`

	RetryBudget int `yaml:"retry_budget"`

	Pump struct {
		DefaultRate float64            `yaml:"default_rate"`
		Rates       map[string]float64 `yaml:"rates"`
	} `yaml:"pump"`

	Stages []struct {
		ID    string `yaml:"id"`
		Cargo []struct {
			Tonnes   float64 `yaml:"tonnes"`
			Position float64 `yaml:"position"`
		} `yaml:"cargo"`
		Target *struct {
			Fwd float64 `yaml:"fwd"`
			Aft float64 `yaml:"aft"`
		} `yaml:"target"`
		WaterDepth float64  `yaml:"water_depth"`
		Priority   []string `yaml:"priority"`
		Overrides  []struct {
			Target  string   `yaml:"target"`
			Mode    *string  `yaml:"mode"`
			Content *float64 `yaml:"content"`
		} `yaml:"overrides"`
	} `yaml:"stages"`
}

// Load parses and validates a profile document.
func Load(r io.Reader) (plan.Config, tanks.Inventory, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return plan.Config{}, tanks.Inventory{}, fmt.Errorf("%w: %v", ErrBadProfile, err)
	}
	return f.materialize()
}

// LoadFile is Load over a file on disk.
func LoadFile(path string) (plan.Config, tanks.Inventory, error) {
	fd, err := os.Open(path)
	if err != nil {
		return plan.Config{}, tanks.Inventory{}, err
	}
	defer fd.Close()
	return Load(fd)
}

func (f File) materialize() (plan.Config, tanks.Inventory, error) {
	pts := make([]hydro.Point, len(f.Hydrostatics))
	for i, h := range f.Hydrostatics {
		pts[i] = hydro.Point{
			MeanDraft:    h.Draft,
			Displacement: h.Displacement,
			TPC:          h.TPC,
			MTC:          h.MTC,
			LCF:          coord.FromMidship(h.LCF),
		}
	}
	table, err := hydro.NewTable(pts)
	if err != nil {
		return plan.Config{}, tanks.Inventory{}, err
	}

	catalog := make([]tanks.Tank, len(f.Tanks))
	for i, tk := range f.Tanks {
		mode, err := parseMode(tk.Mode)
		if err != nil {
			return plan.Config{}, tanks.Inventory{}, err
		}
		catalog[i] = tanks.Tank{
			ID:          tk.ID,
			Capacity:    tk.Capacity,
			Content:     tk.Content,
			MinContent:  tk.Min,
			MaxContent:  tk.Max,
			Position:    coord.FromMidship(tk.Position),
			Mode:        mode,
			FreeSurface: tk.FreeSurface,
		}
	}
	inv, err := tanks.NewInventory(catalog)
	if err != nil {
		return plan.Config{}, tanks.Inventory{}, err
	}

	gs := make([]gates.Gate, len(f.Gates))
	for i, g := range f.Gates {
		kind, err := parseKind(g.Kind)
		if err != nil {
			return plan.Config{}, tanks.Inventory{}, err
		}
		gs[i] = gates.Gate{
			Name:      g.Name,
			Kind:      kind,
			Threshold: g.Threshold,
			GuardBand: g.GuardBand,
			Stages:    g.Stages,
		}
	}
	registry, err := gates.NewRegistry(gs)
	if err != nil {
		return plan.Config{}, tanks.Inventory{}, err
	}

	stages := make([]plan.Stage, len(f.Stages))
	for i, s := range f.Stages {
		st := plan.Stage{
			ID:         s.ID,
			WaterDepth: s.WaterDepth,
			Priority:   s.Priority,
		}
		for _, c := range s.Cargo {
			st.Cargo = append(st.Cargo, coord.Weight{
				Tonnes: c.Tonnes,
				Pos:    coord.FromMidship(c.Position),
			})
		}
		if s.Target != nil {
			st.Target = &coord.Drafts{Fwd: s.Target.Fwd, Aft: s.Target.Aft}
		}
		for _, ov := range s.Overrides {
			o := tanks.Override{Target: ov.Target, Content: ov.Content}
			if ov.Mode != nil {
				m, err := parseMode(*ov.Mode)
				if err != nil {
					return plan.Config{}, tanks.Inventory{}, err
				}
				o.Mode = &m
			}
			st.Overrides = append(st.Overrides, o)
		}
		stages[i] = st
	}

	cfg := plan.Config{
		Frame: coord.Frame{
			Version: f.Vessel.Version,
			LBP:     f.Vessel.LBP,
			Depth:   f.Vessel.Depth,
		},
		Table: table,
		Lightship: coord.Weight{
			Tonnes: f.Vessel.Lightship.Tonnes,
			Pos:    coord.FromMidship(f.Vessel.Lightship.Position),
		},
		Gates:       registry,
		Bands:       holdpoint.Bands{GoMax: f.Bands.GoMaxCm, RecalcMax: f.Bands.RecalcMaxCm},
		RetryBudget: f.RetryBudget,
		Pump:        sequence.Options{PumpRate: f.Pump.DefaultRate, Rates: f.Pump.Rates},
		Stages:      stages,
	}
	return cfg, inv, nil
}

func parseMode(s string) (tanks.Mode, error) {
	switch s {
	case "", "normal":
		return tanks.ModeNormal, nil
	case "fill_only":
		return tanks.ModeFillOnly, nil
	case "discharge_only":
		return tanks.ModeDischargeOnly, nil
	case "disabled":
		return tanks.ModeDisabled, nil
	default:
		return 0, fmt.Errorf("%w: unknown tank mode %q", ErrBadProfile, s)
	}
}

func parseKind(s string) (gates.Kind, error) {
	switch s {
	case "aft_min":
		return gates.AftMin, nil
	case "fwd_max":
		return gates.FwdMax, nil
	case "freeboard_min":
		return gates.FreeboardMin, nil
	case "ukc_min":
		return gates.UKCMin, nil
	default:
		return 0, fmt.Errorf("%w: unknown gate kind %q", ErrBadProfile, s)
	}
}
