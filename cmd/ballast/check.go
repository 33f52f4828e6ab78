package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/holdpoint"
	"github.com/stoverud/ballast/plan"
	"github.com/stoverud/ballast/profile"
)

var (
	// check command flags
	checkStage string
	checkFwd   float64
	checkAft   float64
)

func init() {
	checkCmd.Flags().StringVar(&checkStage, "stage", "", "stage whose hold point to evaluate (required)")
	checkCmd.Flags().Float64Var(&checkFwd, "fwd", 0, "measured forward draft, meters (required)")
	checkCmd.Flags().Float64Var(&checkAft, "aft", 0, "measured aft draft, meters (required)")
	_ = checkCmd.MarkFlagRequired("stage")
	_ = checkCmd.MarkFlagRequired("fwd")
	_ = checkCmd.MarkFlagRequired("aft")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Band measured drafts against a stage's prediction",
	Long: `Re-solve the profile up to the named stage and band the measured
drafts against its prediction: GO, RECALCULATE or STOP.

Examples:
  ballast check --profile voyage.yaml --stage VOID3 --fwd 2.205 --aft 2.695`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	var res plan.StageResult
	for {
		res, err = eng.SolveNext()
		if errors.Is(err, plan.ErrPlanComplete) {
			return fmt.Errorf("stage %q not in profile", checkStage)
		}
		if err != nil {
			return err
		}
		if res.StageID == checkStage {
			break
		}
	}

	rec, err := eng.ConfirmDrafts(coord.Drafts{Fwd: checkFwd, Aft: checkAft})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "stage %s: predicted %.3f/%.3f m, measured %.3f/%.3f m\n",
		rec.StageID, rec.PredictedFwd, rec.PredictedAft, rec.MeasuredFwd, rec.MeasuredAft)
	fmt.Fprintf(out, "deviation %.1f cm → %s\n", rec.DeviationCm, rec.Band)
	if rec.Band == holdpoint.Stop {
		fmt.Fprintln(out, "STOP: halt ballast operations and investigate before continuing")
	}
	return nil
}
