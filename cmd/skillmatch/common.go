package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/skills"
)

// loadConfig reads the config named by --config, applying a --corpus override.
func loadConfig(corpusOverride string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if corpusOverride != "" {
		cfg.Corpus.Source = config.SourceFile
		cfg.Corpus.Path = corpusOverride
		cfg.Corpus.Watch = false
	}
	return cfg, nil
}

// loadKnowledge returns the configured knowledge pack or the built-in one.
func loadKnowledge(cfg *config.Config) (*skills.Knowledge, error) {
	if cfg.Corpus.KnowledgePath == "" {
		return skills.Default(), nil
	}
	return skills.LoadKnowledge(cfg.Corpus.KnowledgePath)
}

// openStore builds a corpus store for the configured source. The returned
// cleanup closes any database pool it opened.
func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger, opts ...corpus.StoreOption) (*corpus.Store, func(), error) {
	k, err := loadKnowledge(cfg)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]corpus.StoreOption{corpus.WithLogger(logger)}, opts...)

	switch cfg.Corpus.Source {
	case config.SourcePostgres:
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		src := corpus.DBSource{Lister: database}
		return corpus.NewStore(src, k, opts...), database.Close, nil
	default:
		return corpus.NewStore(corpus.FileSource{Path: cfg.Corpus.Path, Logger: logger}, k, opts...), func() {}, nil
	}
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// warnOnSchema validates v and reports problems on stderr. Validation never
// fails the command.
func warnOnSchema(stderr io.Writer, schema string, v any) {
	err := schemas.ValidateValue(schema, v)
	if err == nil {
		return
	}
	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		_, _ = fmt.Fprintf(stderr, "Warning: output does not match %s: %v\n", schema, err)
	case errors.As(err, &schemaLoadErr):
		_, _ = fmt.Fprintf(stderr, "Warning: could not load schema %s: %v\n", schema, err)
	default:
		_, _ = fmt.Fprintf(stderr, "Warning: could not validate output: %v\n", err)
	}
}

// splitSkills flattens repeated and comma-separated skill flags.
func splitSkills(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, skills.SplitList(v)...)
	}
	return out
}

// cliLogger builds the stderr logger for CLI commands: warnings only unless verbose.
func cliLogger(verbose bool) (logging.Logger, error) {
	if verbose {
		return logging.New("debug", "console")
	}
	return logging.New("warn", "console")
}
