package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the website-builder backend.
// Configuration comes from config.yaml with environment variable overrides.
// Secrets (database password, API keys, encryption key) are env-only.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Generation tuning knobs
	Generation GenerationConfig `yaml:"generation"`

	// Provider models and process-wide default API keys
	Providers ProvidersConfig `yaml:"providers"`

	// Encryption key for stored provider credentials. Must be explicitly
	// configured - the server refuses to start without it.
	// Generate with: openssl rand -base64 32
	CredentialsKey string `yaml:"-" env:"CREDENTIALS_ENCRYPTION_KEY"` // Secret - not in YAML
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"builder"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"website_builder"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// GenerationConfig holds the generation pipeline's tuning parameters.
// The similarity thresholds and scan cap are design choices without a
// verified "correct" value, so they are configurable rather than constants.
type GenerationConfig struct {
	// AdaptThreshold is the minimum top-match similarity to adapt an
	// existing snippet instead of generating fresh code.
	AdaptThreshold float64 `yaml:"adapt_threshold" env:"GENERATION_ADAPT_THRESHOLD" env-default:"0.7"`

	// MinSimilarity is the floor below which search results are discarded.
	MinSimilarity float64 `yaml:"min_similarity" env:"GENERATION_MIN_SIMILARITY" env-default:"0.1"`

	// ScanLimit caps how many filter-matching entries one search will score.
	ScanLimit int `yaml:"scan_limit" env:"GENERATION_SCAN_LIMIT" env-default:"50"`

	// MaxResults caps how many matches a search returns.
	MaxResults int `yaml:"max_results" env:"GENERATION_MAX_RESULTS" env-default:"10"`

	// MaxReferenceSnippets caps how many matches are cited in prompts.
	MaxReferenceSnippets int `yaml:"max_reference_snippets" env:"GENERATION_MAX_REFERENCE_SNIPPETS" env-default:"3"`

	// RequestTimeoutSeconds bounds a single outbound backend call.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" env:"GENERATION_REQUEST_TIMEOUT_SECONDS" env-default:"60"`

	// MaxTokens and Temperature are passed to every backend call.
	MaxTokens   int     `yaml:"max_tokens" env:"GENERATION_MAX_TOKENS" env-default:"4000"`
	Temperature float64 `yaml:"temperature" env:"GENERATION_TEMPERATURE" env-default:"0.7"`

	// FallbackOrderStr is a comma-separated provider list tried in order
	// when the user's preferred provider has no credential.
	FallbackOrderStr string `yaml:"fallback_order" env:"GENERATION_FALLBACK_ORDER" env-default:"openai,claude,gemini,deepseek,openrouter"`

	// FallbackOrder is parsed from FallbackOrderStr (not from config file).
	FallbackOrder []string `yaml:"-"`
}

// ProvidersConfig holds per-provider model names and the process-wide
// default API keys used when a user has no stored credential.
type ProvidersConfig struct {
	OpenAIModel     string `yaml:"openai_model" env:"OPENAI_MODEL" env-default:"gpt-4o"`
	ClaudeModel     string `yaml:"claude_model" env:"CLAUDE_MODEL" env-default:"claude-sonnet-4-5-20250929"`
	GeminiModel     string `yaml:"gemini_model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	DeepSeekModel   string `yaml:"deepseek_model" env:"DEEPSEEK_MODEL" env-default:"deepseek-chat"`
	OpenRouterModel string `yaml:"openrouter_model" env:"OPENROUTER_MODEL" env-default:"anthropic/claude-sonnet-4.5"`

	// Process-wide default keys. Secrets - not in YAML.
	OpenAIKey     string `yaml:"-" env:"OPENAI_API_KEY"`
	ClaudeKey     string `yaml:"-" env:"ANTHROPIC_API_KEY"`
	GeminiKey     string `yaml:"-" env:"GEMINI_API_KEY"`
	DeepSeekKey   string `yaml:"-" env:"DEEPSEEK_API_KEY"`
	OpenRouterKey string `yaml:"-" env:"OPENROUTER_API_KEY"`
}

// DefaultKey returns the process-wide default API key for a provider name,
// or empty if none is configured.
func (p *ProvidersConfig) DefaultKey(provider string) string {
	switch provider {
	case "openai":
		return p.OpenAIKey
	case "claude":
		return p.ClaudeKey
	case "gemini":
		return p.GeminiKey
	case "deepseek":
		return p.DeepSeekKey
	case "openrouter":
		return p.OpenRouterKey
	default:
		return ""
	}
}

// Model returns the configured model name for a provider name.
func (p *ProvidersConfig) Model(provider string) string {
	switch provider {
	case "openai":
		return p.OpenAIModel
	case "claude":
		return p.ClaudeModel
	case "gemini":
		return p.GeminiModel
	case "deepseek":
		return p.DeepSeekModel
	case "openrouter":
		return p.OpenRouterModel
	default:
		return ""
	}
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.Generation.FallbackOrder = parseFallbackOrder(cfg.Generation.FallbackOrderStr)

	return cfg, nil
}

// validate rejects configurations the server must not start with.
func (c *Config) validate() error {
	if c.CredentialsKey == "" {
		return fmt.Errorf("CREDENTIALS_ENCRYPTION_KEY must be set (generate with: openssl rand -base64 32)")
	}
	if c.Generation.AdaptThreshold < c.Generation.MinSimilarity {
		return fmt.Errorf("adapt_threshold (%v) must not be below min_similarity (%v)",
			c.Generation.AdaptThreshold, c.Generation.MinSimilarity)
	}
	return nil
}

// parseFallbackOrder splits and trims the comma-separated provider list.
func parseFallbackOrder(value string) []string {
	parts := strings.Split(value, ",")
	order := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			order = append(order, trimmed)
		}
	}
	return order
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
