// Package main implements the ballast CLI: solving voyage profiles and
// banding measured drafts from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// profilePath points at the voyage profile YAML.
	profilePath string
	// verbose enables structured engine logging on stderr.
	verbose bool
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ballast",
	Short: "Gate-constrained ballast planning from a voyage profile",
	Long: `ballast solves a voyage profile stage by stage: it reads the vessel
geometry, hydrostatic table, tank catalog, gates and stages from a single
YAML profile, computes the minimal ballast movements that satisfy every
gate, and prints the timed pumping plan per stage.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "voyage.yaml", "voyage profile YAML")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "structured engine logs on stderr")
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(checkCmd)
}

// logger builds the engine logger per the --verbose flag.
func logger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
