package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/schemas"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a CSV or JSON corpus file into Postgres",
	Long:  "Parse a corpus file with the same rules as the file source, apply the database schema and insert the postings. --replace swaps out rows previously imported under the same source label.",
	RunE:  runImport,
}

var (
	importInputFile   string
	importDatabaseURL string
	importSource      string
	importReplace     bool
)

func init() {
	importCmd.Flags().StringVarP(&importInputFile, "in", "i", "", "Corpus file to import (required)")
	importCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "Database URL (overrides database.url)")
	importCmd.Flags().StringVar(&importSource, "source", "", "Source label stored with each row (default: file name)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Delete rows with the same source label before inserting")

	_ = importCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	databaseURL := importDatabaseURL
	if databaseURL == "" {
		cfg, err := loadConfig("")
		if err != nil {
			return err
		}
		databaseURL = cfg.Database.URL
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set --db-url, database.url or DATABASE_URL)")
	}

	if strings.EqualFold(filepath.Ext(importInputFile), ".json") {
		if err := schemas.ValidateFile(schemas.JobCorpus, importInputFile); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	logger, err := cliLogger(false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	postings, err := corpus.LoadFile(importInputFile, logger)
	if err != nil {
		return err
	}

	source := importSource
	if source == "" {
		source = filepath.Base(importInputFile)
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	ids, err := database.InsertJobPostings(ctx, postings, source, importReplace)
	if err != nil {
		return err
	}

	total, err := database.CountJobPostings(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d postings from %s (source %q); %d postings in database\n", len(ids), importInputFile, source, total)
	return nil
}
