package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/schemas"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Print corpus statistics",
	Long:  "Load the corpus, build its skill index and print total jobs, the most frequent skills and the rare-skill list. JSON corpora can be checked against the corpus schema first.",
	RunE:  runIndex,
}

var (
	indexCorpus   string
	indexTop      int
	indexValidate bool
	indexVerbose  bool
)

func init() {
	indexCmd.Flags().StringVar(&indexCorpus, "corpus", "", "Corpus file (overrides corpus.path and corpus.source)")
	indexCmd.Flags().IntVarP(&indexTop, "top", "n", 10, "Number of most frequent skills to list")
	indexCmd.Flags().BoolVar(&indexValidate, "validate", false, "Validate a JSON corpus file against the corpus schema")
	indexCmd.Flags().BoolVarP(&indexVerbose, "verbose", "v", false, "Print a formatted summary instead of JSON")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(indexCorpus)
	if err != nil {
		return err
	}
	logger, err := cliLogger(indexVerbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if indexValidate {
		if cfg.Corpus.Source != config.SourceFile || !strings.EqualFold(filepath.Ext(cfg.Corpus.Path), ".json") {
			return fmt.Errorf("--validate applies to JSON corpus files only")
		}
		if err := schemas.ValidateFile(schemas.JobCorpus, cfg.Corpus.Path); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		} else {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s matches %s\n", cfg.Corpus.Path, schemas.JobCorpus)
		}
	}

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

	if indexVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintCorpusStats(snap, indexTop)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", snap.Stats(indexTop))
}
