package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Corpus.Source)
	assert.Equal(t, "data/jobs_dataset.csv", cfg.Corpus.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Corpus.Debounce)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 0.6, cfg.LLM.Breaker.FailureThreshold)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 24, cfg.Auth.ExpirationHours)
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
corpus:
  path: /tmp/jobs.json
  watch: true
  debounce: 2s
server:
  port: 9090
redis:
  addr: localhost:6379
  ttl: 1m
log:
  level: debug
  format: console
rate_limit:
  whitelist: ["10.0.0.1", "10.0.0.2"]
`
	path := filepath.Join(t.TempDir(), "skillmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/jobs.json", cfg.Corpus.Path)
	assert.True(t, cfg.Corpus.Watch)
	assert.Equal(t, 2*time.Second, cfg.Corpus.Debounce)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimit.Whitelist)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skillmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("SKILLMATCH_SERVER_PORT", "7070")
	t.Setenv("SKILLMATCH_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_UnprefixedFallbacks(t *testing.T) {
	t.Setenv("SKILLMATCH_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/skillmatch")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/skillmatch", cfg.Database.URL)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skillmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Corpus:    CorpusConfig{Source: SourceFile, Path: "jobs.csv"},
		Server:    ServerConfig{Port: 8080, MaxBodyBytes: 1024, BatchWorkers: 4},
		LLM:       LLMConfig{Breaker: BreakerConfig{FailureThreshold: 0.5}},
		RateLimit: RateLimitConfig{Enabled: true, DefaultLimit: 10},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Corpus.Source = "s3" },
			wantErr: "corpus.source",
		},
		{
			name:    "file source without path",
			mutate:  func(c *Config) { c.Corpus.Path = "" },
			wantErr: "corpus.path",
		},
		{
			name:    "postgres source without url",
			mutate:  func(c *Config) { c.Corpus.Source = SourcePostgres },
			wantErr: "database.url",
		},
		{
			name: "watch with postgres",
			mutate: func(c *Config) {
				c.Corpus.Source = SourcePostgres
				c.Database.URL = "postgres://x"
				c.Corpus.Watch = true
			},
			wantErr: "corpus.watch",
		},
		{
			name:    "missing knowledge pack",
			mutate:  func(c *Config) { c.Corpus.KnowledgePath = "/does/not/exist.json" },
			wantErr: "knowledge pack not found",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "redis without ttl",
			mutate:  func(c *Config) { c.Redis.Addr = "localhost:6379" },
			wantErr: "redis.ttl",
		},
		{
			name:    "breaker threshold out of range",
			mutate:  func(c *Config) { c.LLM.Breaker.FailureThreshold = 1.5 },
			wantErr: "failure_threshold",
		},
		{
			name:    "rate limit without limit",
			mutate:  func(c *Config) { c.RateLimit.DefaultLimit = 0 },
			wantErr: "rate_limit.default_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
