// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution and overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/crop-advisor/internal/cache"
	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CROP_ADVISOR_"

// APIKeyEnv is the conventional variable holding the Gemini API key. It is
// consulted when no key is configured any other way.
const APIKeyEnv = "GEMINI_API_KEY"

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"        envPrefix:"SERVER_"`
	Database      DatabaseConfig      `yaml:"database"      envPrefix:"DATABASE_"`
	LLM           LLMConfig           `yaml:"llm"           envPrefix:"LLM_"`
	Recommend     RecommendConfig     `yaml:"recommend"     envPrefix:"RECOMMEND_"`
	Cache         CacheConfig         `yaml:"cache"         envPrefix:"CACHE_"`
	Schedule      ScheduleConfig      `yaml:"schedule"      envPrefix:"SCHEDULE_"`
	Notifications NotificationsConfig `yaml:"notifications" envPrefix:"NOTIFICATIONS_"`
	Tracing       TracingConfig       `yaml:"tracing"       envPrefix:"TRACING_"`
	Logging       LoggingConfig       `yaml:"logging"       envPrefix:"LOGGING_"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"`
	Port            int           `yaml:"port"             env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig defines PostgreSQL connection settings. Profiles and
// recommendation history are disabled when Host is empty.
type DatabaseConfig struct {
	Host     string `yaml:"host"      env:"HOST"`
	Port     int    `yaml:"port"      env:"PORT"`
	Name     string `yaml:"name"      env:"NAME"`
	User     string `yaml:"user"      env:"USER"`
	Password string `yaml:"password"  env:"PASSWORD"`
	SSLMode  string `yaml:"sslmode"   env:"SSLMODE"`
	PoolSize int    `yaml:"pool_size" env:"POOL_SIZE"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// Enabled reports whether a database is configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// LLMConfig defines the text-generation backend settings.
type LLMConfig struct {
	Backend         string          `yaml:"backend"           env:"BACKEND"` // gemini, genai
	Endpoint        string          `yaml:"endpoint"          env:"ENDPOINT"`
	Model           string          `yaml:"model"             env:"MODEL"`
	APIKey          string          `yaml:"api_key"           env:"API_KEY"`
	Timeout         time.Duration   `yaml:"timeout"           env:"TIMEOUT"`
	MaxAttempts     int             `yaml:"max_attempts"      env:"MAX_ATTEMPTS"`
	BaseDelay       time.Duration   `yaml:"base_delay"        env:"BASE_DELAY"`
	Temperature     float64         `yaml:"temperature"       env:"TEMPERATURE"`
	TopK            int             `yaml:"top_k"             env:"TOP_K"`
	TopP            float64         `yaml:"top_p"             env:"TOP_P"`
	MaxOutputTokens int             `yaml:"max_output_tokens" env:"MAX_OUTPUT_TOKENS"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"        envPrefix:"RATE_LIMIT_"`
}

// RetryPolicy returns the configured attempt budget and backoff.
func (l *LLMConfig) RetryPolicy() advisor.RetryPolicy {
	return advisor.RetryPolicy{MaxAttempts: l.MaxAttempts, BaseDelay: l.BaseDelay}
}

// RateLimitConfig defines outbound LLM rate limiting. Zero disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second" env:"PER_SECOND"`
	Burst     int     `yaml:"burst"      env:"BURST"`
}

// RecommendConfig defines orchestrator behavior.
type RecommendConfig struct {
	SingleFlight bool `yaml:"single_flight" env:"SINGLE_FLIGHT"`
}

// CacheConfig defines the result cache.
type CacheConfig struct {
	Backend string        `yaml:"backend" env:"BACKEND"` // memory, redis
	TTL     time.Duration `yaml:"ttl"     env:"TTL"`
	Redis   RedisConfig   `yaml:"redis"   envPrefix:"REDIS_"`
}

// RedisConfig defines Redis connection settings.
type RedisConfig struct {
	Addr      string `yaml:"addr"       env:"ADDR"`
	Password  string `yaml:"password"   env:"PASSWORD"`
	DB        int    `yaml:"db"         env:"DB"`
	KeyPrefix string `yaml:"key_prefix" env:"KEY_PREFIX"`
}

// ScheduleConfig defines background job intervals. Zero disables a job.
type ScheduleConfig struct {
	CacheSweepInterval   time.Duration `yaml:"cache_sweep_interval"   env:"CACHE_SWEEP_INTERVAL"`
	HistoryPruneInterval time.Duration `yaml:"history_prune_interval" env:"HISTORY_PRUNE_INTERVAL"`
	HistoryRetention     time.Duration `yaml:"history_retention"      env:"HISTORY_RETENTION"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord" envPrefix:"DISCORD_"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"     env:"ENABLED"`
	WebhookURL string `yaml:"webhook_url" env:"WEBHOOK_URL"`
}

// TracingConfig defines OpenTelemetry export settings. Metrics export
// reuses the same collector endpoint.
type TracingConfig struct {
	Enabled        bool          `yaml:"enabled"         env:"ENABLED"`
	Endpoint       string        `yaml:"endpoint"        env:"ENDPOINT"`
	Insecure       bool          `yaml:"insecure"        env:"INSECURE"`
	ServiceName    string        `yaml:"service_name"    env:"SERVICE_NAME"`
	SampleRatio    float64       `yaml:"sample_ratio"    env:"SAMPLE_RATIO"`
	ExportMetrics  bool          `yaml:"export_metrics"  env:"EXPORT_METRICS"`
	MetricInterval time.Duration `yaml:"metric_interval" env:"METRIC_INTERVAL"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"LEVEL"`  // debug, info, warn, error
	Format string `yaml:"format" env:"FORMAT"` // text, json, pretty
}

// Load reads and parses a YAML config file, performing environment variable
// substitution, environment overrides, and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadDotenv loads variables from a dotenv file without overriding variables
// already set. A missing file is not an error.
func LoadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment overrides: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(APIKeyEnv)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyLLMDefaults(&cfg.LLM)
	applyCacheDefaults(&cfg.Cache)
	applyScheduleDefaults(&cfg.Schedule)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	// Long enough for three attempts at the default timeout plus backoff.
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 90 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Backend == "" {
		l.Backend = "gemini"
	}
	if l.Model == "" {
		l.Model = "gemini-2.0-flash"
	}
	if l.Timeout == 0 {
		l.Timeout = advisor.DefaultTimeout
	}
	if l.MaxAttempts == 0 {
		l.MaxAttempts = advisor.DefaultMaxAttempts
	}
	if l.BaseDelay == 0 {
		l.BaseDelay = advisor.DefaultBaseDelay
	}
	if l.Temperature == 0 {
		l.Temperature = advisor.DefaultTemperature
	}
	if l.TopK == 0 {
		l.TopK = advisor.DefaultTopK
	}
	if l.TopP == 0 {
		l.TopP = advisor.DefaultTopP
	}
	if l.MaxOutputTokens == 0 {
		l.MaxOutputTokens = advisor.DefaultMaxOutputTokens
	}
	if l.RateLimit.PerSecond > 0 && l.RateLimit.Burst == 0 {
		l.RateLimit.Burst = 1
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.TTL == 0 {
		c.TTL = cache.DefaultTTL
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = cache.DefaultKeyPrefix
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.HistoryPruneInterval == 0 {
		s.HistoryPruneInterval = 24 * time.Hour
	}
	if s.HistoryRetention == 0 {
		s.HistoryRetention = 30 * 24 * time.Hour
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "crop-advisor"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.MetricInterval == 0 {
		t.MetricInterval = time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Enabled() {
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required when database.host is set"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required when database.host is set"))
		}
	}

	switch cfg.LLM.Backend {
	case "gemini", "genai":
	default:
		errs = append(
			errs,
			fmt.Errorf("llm.backend must be one of: gemini, genai (got %q)", cfg.LLM.Backend),
		)
	}
	if cfg.LLM.APIKey == "" {
		errs = append(errs, fmt.Errorf(
			"%w: llm.api_key is required (set %s or %sLLM_API_KEY)",
			advisor.ErrConfiguration, APIKeyEnv, EnvPrefix,
		))
	}
	if cfg.LLM.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("llm.max_attempts must be at least 1"))
	}
	if cfg.LLM.Timeout < 0 || cfg.LLM.BaseDelay < 0 {
		errs = append(errs, fmt.Errorf("llm.timeout and llm.base_delay must not be negative"))
	}

	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		errs = append(
			errs,
			fmt.Errorf("cache.backend must be one of: memory, redis (got %q)", cfg.Cache.Backend),
		)
	}
	if cfg.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf(
			"notifications.discord.webhook_url is required when discord is enabled",
		))
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, fmt.Errorf("tracing.endpoint is required when tracing is enabled"))
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1"))
	}

	return errors.Join(errs...)
}
