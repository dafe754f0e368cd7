package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillmatch/internal/advisor"
	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/prompts"
	"github.com/jonathan/skillmatch/internal/server"
)

var (
	servePort   int
	serveCorpus string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes matching, gap analysis, career feedback and corpus administration endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveCorpus, "corpus", "", "Corpus file (overrides corpus.path and corpus.source)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the corpus file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveCorpus)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("watch") {
		cfg.Corpus.Watch = serveWatch
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()
	store, cleanup, err := openStore(ctx, cfg, logger, corpus.WithReloadHook(func(snap *corpus.Snapshot, err error) {
		if err != nil {
			metrics.ObserveReload(0, err)
			return
		}
		metrics.ObserveReload(snap.Index.TotalJobs(), nil)
	}))
	if err != nil {
		return err
	}
	defer cleanup()

	// Fail fast on an unreadable corpus rather than on the first request.
	if _, err := store.Snapshot(ctx); err != nil {
		return err
	}

	deps := server.Deps{
		Store:   store,
		Metrics: metrics,
		Logger:  logger,
		Advisor: newAdvisor(ctx, cfg, logger),
	}

	if cfg.Redis.Enabled() {
		matchCache := cache.New(cfg.Redis)
		if err := matchCache.Ping(ctx); err != nil {
			logger.WithError(err).Warn("redis unavailable, match cache disabled", logging.Fields{"addr": cfg.Redis.Addr})
			_ = matchCache.Close()
		} else {
			deps.Cache = matchCache
			defer func() { _ = matchCache.Close() }()
		}
	}

	if jwtCfg, err := cfg.JWT(); err == nil {
		deps.JWT = server.NewJWTService(jwtCfg)
	} else {
		logger.Warn("admin auth not configured, corpus reload endpoint disabled", logging.Fields{"reason": err.Error()})
	}

	srv, err := server.New(cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if cfg.Corpus.Watch && cfg.Corpus.Source == config.SourceFile {
		watcher := corpus.NewWatcher(cfg.Corpus.Path, store, cfg.Corpus.Debounce, logger)
		g.Go(func() error { return watcher.Run(gctx) })
	}
	return g.Wait()
}

// newAdvisor wires the LLM client behind a circuit breaker when an API key is
// configured. Without one, feedback uses the template.
func newAdvisor(ctx context.Context, cfg *config.Config, logger logging.Logger) *advisor.Advisor {
	if cfg.LLM.APIKey == "" {
		logger.Info("no LLM API key configured, feedback uses the template", nil)
		return advisor.New(nil, nil, logger)
	}

	llmCfg := llm.DefaultConfig().WithModel(cfg.LLM.Model).WithTimeout(cfg.LLM.Timeout)
	if system, err := prompts.Get(prompts.AdvisorFile, prompts.AdvisorSystem); err == nil {
		llmCfg.SystemPrompt = system
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
	if err != nil {
		logger.WithError(err).Warn("LLM client unavailable, feedback uses the template", nil)
		return advisor.New(nil, nil, logger)
	}
	breaker := advisor.NewBreaker("llm-feedback", cfg.LLM.Breaker, logger)
	return advisor.New(client, breaker, logger)
}
