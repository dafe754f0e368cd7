package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/ranking"
	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank corpus job postings for a candidate",
	Long:  "Score every posting in the corpus against the candidate's skills and experience and print the ranking. Salary bounds switch to preference-weighted ranking.",
	RunE:  runMatch,
}

var (
	matchSkills     []string
	matchExperience float64
	matchTop        int
	matchMinSalary  float64
	matchMaxSalary  float64
	matchCorpus     string
	matchOutputFile string
	matchVerbose    bool
)

func init() {
	matchCmd.Flags().StringSliceVarP(&matchSkills, "skills", "s", nil, "Candidate skills, comma-separated or repeated (required)")
	matchCmd.Flags().Float64VarP(&matchExperience, "experience", "e", 0, "Candidate years of experience")
	matchCmd.Flags().IntVarP(&matchTop, "top", "n", 10, "Number of matches to show (0 for all)")
	matchCmd.Flags().Float64Var(&matchMinSalary, "min-salary", 0, "Minimum salary in LPA")
	matchCmd.Flags().Float64Var(&matchMaxSalary, "max-salary", 0, "Maximum salary in LPA")
	matchCmd.Flags().StringVar(&matchCorpus, "corpus", "", "Corpus file (overrides corpus.path and corpus.source)")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Write JSON results to this file")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a formatted summary instead of JSON")

	_ = matchCmd.MarkFlagRequired("skills")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	candidateSkills := splitSkills(matchSkills)
	if len(candidateSkills) == 0 {
		return fmt.Errorf("--skills must list at least one skill")
	}
	if matchExperience < 0 {
		return fmt.Errorf("--experience must be >= 0")
	}

	filters := types.RankFilters{}
	if cmd.Flags().Changed("min-salary") {
		filters.MinSalary = &matchMinSalary
	}
	if cmd.Flags().Changed("max-salary") {
		filters.MaxSalary = &matchMaxSalary
	}
	if filters.MinSalary != nil && filters.MaxSalary != nil && *filters.MinSalary > *filters.MaxSalary {
		return fmt.Errorf("--min-salary must not exceed --max-salary")
	}

	cfg, err := loadConfig(matchCorpus)
	if err != nil {
		return err
	}
	logger, err := cliLogger(matchVerbose)
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

	scorer := ranking.NewScorer(store.Knowledge())
	candidate := types.CandidateProfile{Skills: candidateSkills, ExperienceYears: matchExperience}
	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if filters.MinSalary != nil || filters.MaxSalary != nil {
		ranked := ranking.Top(scorer.RankWithFilters(candidate, snap.Postings, snap.Index, filters), matchTop)
		if matchVerbose {
			observability.NewPrinter(out).PrintRanked(ranked)
		}
		resp := types.FilteredMatchResponse{CorpusVersion: snap.Version, Matches: ranked}
		return emitResult(cmd, resp, matchVerbose)
	}

	matches := ranking.Top(scorer.MatchJobs(candidate, snap.Postings, snap.Index), matchTop)
	resp := types.MatchResponse{CorpusVersion: snap.Version, TotalJobs: snap.Index.TotalJobs(), Matches: matches}
	warnOnSchema(stderr, schemas.MatchResults, resp)
	if matchVerbose {
		observability.NewPrinter(out).PrintMatches(matches)
	}
	return emitResult(cmd, resp, matchVerbose)
}

// emitResult writes JSON to --out when set, or to stdout unless the
// formatted summary was already printed.
func emitResult(cmd *cobra.Command, v any, printed bool) error {
	if matchOutputFile != "" {
		if err := writeJSON(cmd.OutOrStdout(), matchOutputFile, v); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", matchOutputFile)
		return nil
	}
	if printed {
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", v)
}
