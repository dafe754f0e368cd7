package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/gap"
	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/skills"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Analyze the skill gap between a candidate and a role",
	Long:  "Compare candidate skills against explicit --required skills, or against the required skills of a corpus --role, and print the gap analysis with a learning path.",
	RunE:  runGap,
}

var (
	gapSkills     []string
	gapRequired   []string
	gapRole       string
	gapCorpus     string
	gapOutputFile string
	gapVerbose    bool
)

func init() {
	gapCmd.Flags().StringSliceVarP(&gapSkills, "skills", "s", nil, "Candidate skills, comma-separated or repeated")
	gapCmd.Flags().StringSliceVarP(&gapRequired, "required", "r", nil, "Required skills, comma-separated or repeated")
	gapCmd.Flags().StringVar(&gapRole, "role", "", "Corpus role to compare against (case-insensitive)")
	gapCmd.Flags().StringVar(&gapCorpus, "corpus", "", "Corpus file used with --role")
	gapCmd.Flags().StringVarP(&gapOutputFile, "out", "o", "", "Write JSON analysis to this file")
	gapCmd.Flags().BoolVarP(&gapVerbose, "verbose", "v", false, "Print a formatted summary instead of JSON")

	gapCmd.MarkFlagsMutuallyExclusive("required", "role")
	gapCmd.MarkFlagsOneRequired("required", "role")
	rootCmd.AddCommand(gapCmd)
}

func runGap(cmd *cobra.Command, _ []string) error {
	candidate := splitSkills(gapSkills)
	required := splitSkills(gapRequired)

	k := skills.Default()
	if gapRole != "" {
		cfg, err := loadConfig(gapCorpus)
		if err != nil {
			return err
		}
		logger, err := cliLogger(gapVerbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := context.Background()
		store, cleanup, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		snap, err := store.Snapshot(ctx)
		if err != nil {
			return err
		}
		posting, ok := snap.FindRole(gapRole)
		if !ok {
			return fmt.Errorf("role %q not found in corpus %s", gapRole, snap.Source)
		}
		required = posting.RequiredSkills
		k = store.Knowledge()
	}

	analysis := gap.NewAnalyzer(k).Analyze(candidate, required)
	warnOnSchema(cmd.ErrOrStderr(), schemas.GapAnalysis, analysis)

	if gapVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintGap(analysis)
	}
	if gapOutputFile != "" {
		if err := writeJSON(cmd.OutOrStdout(), gapOutputFile, analysis); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", gapOutputFile)
		return nil
	}
	if gapVerbose {
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", analysis)
}
