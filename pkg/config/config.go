// Package config loads flowreader yaml configuration
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Feed refresh and retention"`
	Fetch      FetchConfig      `yaml:"fetch" json:"fetch" jsonschema:"description=HTTP fetch of feeds and pages"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article content extraction"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=Optional LLM for article summaries"`
}

// ServerConfig holds http api settings
type ServerConfig struct {
	Listen   string        `yaml:"listen" json:"listen" jsonschema:"required,minLength=1,default=:8080,description=HTTP server listen address"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	PageSize int           `yaml:"page_size" json:"page_size" jsonschema:"default=50,minimum=1,description=Default number of articles per page"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"required,minLength=1,default=file:flowreader.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,minimum=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,minimum=0,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds refresh and retention settings
type ScheduleConfig struct {
	UpdateInterval  time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=30m,description=Feed refresh interval (at least 1m)"`
	MaxWorkers      int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum feeds refreshed concurrently"`
	Retention       time.Duration `yaml:"retention" json:"retention" jsonschema:"default=720h,description=Unbookmarked articles older than this are deleted"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval" jsonschema:"default=24h,description=How often to run the retention sweep"`
}

// FetchConfig holds http client settings
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP request timeout"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests (browser-like by default)"`
	MaxBodySize int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=10485760,minimum=1024,description=Maximum response size in bytes"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Reader    string        `yaml:"reader" json:"reader" jsonschema:"default=readability,enum=readability,enum=trafilatura,description=Reader-mode engine"`
	RulesFile string        `yaml:"rules_file" json:"rules_file" jsonschema:"description=Heuristic rules yaml overriding the built-in tables"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Upper bound for one article extraction"`
}

// LLMConfig holds LLM configuration for article summaries
type LLMConfig struct {
	Endpoint      string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (summaries are disabled when empty)"`
	APIKey        string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model         string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature   float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,minimum=0,maximum=2,description=Temperature for response generation"`
	MaxTokens     int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,minimum=1,description=Maximum tokens in response"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt  string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	MaxInputChars int           `yaml:"max_input_chars" json:"max_input_chars" jsonschema:"default=12000,minimum=100,description=Article text is cut to this many characters"`
}

// Enabled reports whether summaries can be requested
func (l LLMConfig) Enabled() bool {
	return l.Endpoint != ""
}

// Load reads configuration from a YAML file, empty path means defaults only
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema check is supplementary, explicit validation above is authoritative
	if err := VerifySchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.PageSize == 0 {
		cfg.Server.PageSize = 50
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:flowreader.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 30 * time.Minute
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}
	if cfg.Schedule.Retention == 0 {
		cfg.Schedule.Retention = 30 * 24 * time.Hour
	}
	if cfg.Schedule.CleanupInterval == 0 {
		cfg.Schedule.CleanupInterval = 24 * time.Hour
	}

	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.MaxBodySize == 0 {
		cfg.Fetch.MaxBodySize = 10 * 1024 * 1024
	}

	if cfg.Extraction.Reader == "" {
		cfg.Extraction.Reader = "readability"
	}
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 60 * time.Second
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 500
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.MaxInputChars == 0 {
		cfg.LLM.MaxInputChars = 12000
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.PageSize < 1 {
		return fmt.Errorf("server.page_size must be at least 1")
	}

	if cfg.Schedule.UpdateInterval < 0 {
		return fmt.Errorf("schedule.update_interval must be non-negative")
	}
	if cfg.Schedule.UpdateInterval > 0 && cfg.Schedule.UpdateInterval < time.Minute {
		return fmt.Errorf("schedule.update_interval must be at least 1 minute")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}
	if cfg.Schedule.Retention < 0 {
		return fmt.Errorf("schedule.retention must be non-negative")
	}

	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}

	switch cfg.Extraction.Reader {
	case "readability", "trafilatura":
	default:
		return fmt.Errorf("extraction.reader must be readability or trafilatura, got %q", cfg.Extraction.Reader)
	}
	if cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}

	if cfg.LLM.Enabled() {
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
		if cfg.LLM.MaxTokens < 1 {
			return fmt.Errorf("llm.max_tokens must be at least 1")
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetPageSize returns default page size for article lists
func (c *Config) GetPageSize() int {
	return c.Server.PageSize
}

// GetExtractionConfig returns content extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
