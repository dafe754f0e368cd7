// Package config loads skillmatch configuration from defaults, an optional
// file, and SKILLMATCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SKILLMATCH_SERVER_PORT.
const EnvPrefix = "SKILLMATCH"

// Corpus source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config is the full runtime configuration.
type Config struct {
	Corpus    CorpusConfig    `mapstructure:"corpus"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// CorpusConfig selects where job postings come from.
type CorpusConfig struct {
	Source        string        `mapstructure:"source"`         // file or postgres
	Path          string        `mapstructure:"path"`           // CSV or JSON file when source=file
	Watch         bool          `mapstructure:"watch"`          // reload on file change
	Debounce      time.Duration `mapstructure:"debounce"`       // watcher debounce
	KnowledgePath string        `mapstructure:"knowledge_path"` // optional knowledge pack override
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	BatchWorkers    int           `mapstructure:"batch_workers"`
}

// DatabaseConfig holds the Postgres connection string.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig enables the match response cache when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig configures the feedback text generator. An empty APIKey disables it.
type LLMConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig tunes the circuit breaker around LLM calls.
type BreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

// AuthConfig holds JWT settings for admin endpoints.
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// RateLimitConfig holds the global rate limit defaults.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("corpus.source", SourceFile)
	v.SetDefault("corpus.path", "data/jobs_dataset.csv")
	v.SetDefault("corpus.watch", false)
	v.SetDefault("corpus.debounce", 500*time.Millisecond)
	v.SetDefault("corpus.knowledge_path", "")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("server.batch_workers", 8)

	v.SetDefault("database.url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.0-flash-lite")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.breaker.max_requests", 3)
	v.SetDefault("llm.breaker.interval", 60*time.Second)
	v.SetDefault("llm.breaker.timeout", 60*time.Second)
	v.SetDefault("llm.breaker.min_requests", 3)
	v.SetDefault("llm.breaker.failure_threshold", 0.6)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiration_hours", 24)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 600)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})
}

// Load builds a Config. path may be empty, in which case ./skillmatch.yaml is
// used if present. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("skillmatch")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyFallbacks honors the unprefixed variable names the deployment
// environment commonly provides.
func (c *Config) applyFallbacks() {
	if c.Database.URL == "" {
		c.Database.URL = os.Getenv("DATABASE_URL")
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	}
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	switch c.Corpus.Source {
	case SourceFile:
		if c.Corpus.Path == "" {
			return fmt.Errorf("config error: 'corpus.path' is required when corpus.source is %q", SourceFile)
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("config error: 'database.url' is required when corpus.source is %q", SourcePostgres)
		}
		if c.Corpus.Watch {
			return fmt.Errorf("config error: 'corpus.watch' is only supported for file sources")
		}
	default:
		return fmt.Errorf("config error: 'corpus.source' must be %q or %q, got %q", SourceFile, SourcePostgres, c.Corpus.Source)
	}

	if c.Corpus.KnowledgePath != "" {
		if _, err := os.Stat(c.Corpus.KnowledgePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: knowledge pack not found: %s", c.Corpus.KnowledgePath)
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config error: 'server.max_body_bytes' must be positive")
	}
	if c.Server.BatchWorkers < 1 {
		return fmt.Errorf("config error: 'server.batch_workers' must be at least 1")
	}

	if c.Redis.Enabled() && c.Redis.TTL <= 0 {
		return fmt.Errorf("config error: 'redis.ttl' must be positive when redis is enabled")
	}

	if c.LLM.Breaker.FailureThreshold <= 0 || c.LLM.Breaker.FailureThreshold > 1 {
		return fmt.Errorf("config error: 'llm.breaker.failure_threshold' must be in (0, 1]")
	}

	if c.RateLimit.Enabled && c.RateLimit.DefaultLimit < 1 {
		return fmt.Errorf("config error: 'rate_limit.default_limit' must be positive when rate limiting is enabled")
	}

	return nil
}
