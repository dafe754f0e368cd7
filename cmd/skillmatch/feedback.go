package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/career"
	"github.com/jonathan/skillmatch/internal/fetch"
	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/types"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Recommend a role and explain the gap to it",
	Long: `Score the candidate against the corpus, pick the best-matching role,
analyze the gap to that role and print career feedback.

A target job description can be read from --job-file or fetched from
--job-url; it is passed to the feedback generator as extra context.`,
	RunE: runFeedback,
}

var (
	feedbackSkills     []string
	feedbackExperience float64
	feedbackJobFile    string
	feedbackJobURL     string
	feedbackCorpus     string
	feedbackOutputFile string
	feedbackVerbose    bool
)

func init() {
	feedbackCmd.Flags().StringSliceVarP(&feedbackSkills, "skills", "s", nil, "Candidate skills, comma-separated or repeated")
	feedbackCmd.Flags().Float64VarP(&feedbackExperience, "experience", "e", 0, "Years of experience")
	feedbackCmd.Flags().StringVar(&feedbackJobFile, "job-file", "", "Path to a target job description text file")
	feedbackCmd.Flags().StringVar(&feedbackJobURL, "job-url", "", "URL of a target job posting to fetch")
	feedbackCmd.Flags().StringVar(&feedbackCorpus, "corpus", "", "Corpus file (overrides config)")
	feedbackCmd.Flags().StringVarP(&feedbackOutputFile, "out", "o", "", "Write JSON response to this file")
	feedbackCmd.Flags().BoolVarP(&feedbackVerbose, "verbose", "v", false, "Print a formatted report instead of JSON")

	_ = feedbackCmd.MarkFlagRequired("skills")
	feedbackCmd.MarkFlagsMutuallyExclusive("job-file", "job-url")
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, _ []string) error {
	req := types.FeedbackRequest{
		Skills:          splitSkills(feedbackSkills),
		ExperienceYears: feedbackExperience,
	}
	if len(req.Skills) == 0 {
		return fmt.Errorf("--skills must list at least one skill")
	}

	cfg, err := loadConfig(feedbackCorpus)
	if err != nil {
		return err
	}
	logger, err := cliLogger(feedbackVerbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jd, err := jobDescription(ctx, logger)
	if err != nil {
		return err
	}
	req.JobDescription = jd

	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	store, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := store.Snapshot(ctx)
	if err != nil {
		return err
	}

	resp, err := career.New(store.Knowledge(), newAdvisor(ctx, cfg, logger)).Recommend(ctx, snap, req)
	if err != nil {
		return fmt.Errorf("failed to build feedback from %s: %w", snap.Source, err)
	}

	if feedbackVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintFeedback(resp)
	}
	if feedbackOutputFile != "" {
		if err := writeJSON(cmd.OutOrStdout(), feedbackOutputFile, resp); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", feedbackOutputFile)
		return nil
	}
	if feedbackVerbose {
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", resp)
}

// jobDescription reads the optional target posting from --job-file or --job-url.
func jobDescription(ctx context.Context, logger logging.Logger) (string, error) {
	switch {
	case feedbackJobFile != "":
		data, err := os.ReadFile(feedbackJobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case feedbackJobURL != "":
		result, err := fetch.JobDescription(ctx, feedbackJobURL, nil)
		if err != nil {
			return "", err
		}
		logger.Debug("fetched job description", logging.Fields{
			"url":      feedbackJobURL,
			"platform": string(result.Platform),
			"chars":    len(result.Text),
		})
		return result.Text, nil
	}
	return "", nil
}
