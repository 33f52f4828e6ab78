package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stoverud/ballast/gates"
	"github.com/stoverud/ballast/plan"
	"github.com/stoverud/ballast/profile"
	"github.com/stoverud/ballast/sequence"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve every stage of the voyage profile",
	Long: `Solve every stage of the voyage profile in order and print the
pumping plan, predicted drafts and gate margins per stage.

Examples:
  # Solve the default profile
  ballast solve --profile voyage.yaml

  # With engine logs
  ballast solve --profile voyage.yaml --verbose`,
	RunE: runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, inv, err := profile.LoadFile(profilePath)
	if err != nil {
		return err
	}
	log, err := logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	eng, err := plan.NewEngine(cfg, inv, plan.WithLogger(log))
	if err != nil {
		return err
	}

	for {
		res, err := eng.SolveNext()
		if errors.Is(err, plan.ErrPlanComplete) {
			return nil
		}
		if err != nil {
			return err
		}
		printStage(cmd, res)
	}
}

func printStage(cmd *cobra.Command, res plan.StageResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "stage %s  base %.3f/%.3f m  →  predicted %.3f/%.3f m  (%s, %.1f t moved)\n",
		res.StageID, res.Base.Fwd, res.Base.Aft,
		res.Solution.Predicted.Fwd, res.Solution.Predicted.Aft,
		res.Solution.Status, res.Solution.Moved)
	if res.Solution.ViolationFwd > 0 || res.Solution.ViolationAft > 0 {
		fmt.Fprintf(out, "  target deviation: fwd %.3f m, aft %.3f m\n",
			res.Solution.ViolationFwd, res.Solution.ViolationAft)
	}

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	for _, s := range res.Steps {
		fmt.Fprintf(w, "  %s\t%s\t%.1f t\t%s\n", s.Action, s.TankID, s.Amount, s.Duration)
	}
	for _, g := range res.Gates {
		if g.Status == gates.StatusNotApplicable {
			continue
		}
		fmt.Fprintf(w, "  gate %s\t%s\tmargin %.3f m\t\n", g.Gate.Name, g.Status, g.Margin)
	}
	w.Flush()
	if len(res.Steps) > 0 {
		fmt.Fprintf(out, "  pumping time: %s\n", sequence.Total(res.Steps))
	}
}
