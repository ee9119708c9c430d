package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	cadreerr "github.com/cadre-sh/cadre/internal/errors"
)

// PersonasConfig holds persona registry settings
type PersonasConfig struct {
	Dir          string `yaml:"dir"`           // Persona definition files (default: personas)
	BootstrapDir string `yaml:"bootstrap_dir"` // Bootstrap instruction documents (default: personas/bootstrap)
	Watch        bool   `yaml:"watch"`         // Reload the registry when files change (default: true)
}

// KnowledgeConfig holds knowledge server settings
type KnowledgeConfig struct {
	BaseURL string        `yaml:"base_url"` // Knowledge server base URL (empty disables remote tools)
	Token   string        `yaml:"-"`        // Invocation token, from CADRE_KNOWLEDGE_TOKEN only
	Timeout time.Duration `yaml:"timeout"`  // Per-call HTTP timeout (default: 30s)
}

// ModelsConfig holds model selection settings
type ModelsConfig struct {
	// Preferred lists model family prefixes in descending preference order.
	// The first family with an available model wins; an unlisted model is a
	// last resort.
	Preferred   []string `yaml:"preferred"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature float64  `yaml:"temperature"`
}

// LoopConfig holds conversation loop bounds
type LoopConfig struct {
	MaxRounds    int `yaml:"max_rounds"`    // Tool rounds per user turn (default: 10)
	HistoryTurns int `yaml:"history_turns"` // Prior text turns replayed into the transcript (default: 20)
}

// AnnotateConfig holds contextual suggestion settings
type AnnotateConfig struct {
	MaxPerDocument int    `yaml:"max_per_document"` // Suggestion cap per document (default: 25)
	MappingsFile   string `yaml:"mappings_file"`    // Optional local mapping override file
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	MaxRetries         int           `yaml:"max_retries"`
	BaseDelay          time.Duration `yaml:"base_delay"`
	MaxDelay           time.Duration `yaml:"max_delay"`
	TokensPerMinute    int           `yaml:"tokens_per_minute"`
	EnableRateLimiting bool          `yaml:"enable_rate_limiting"`
}

// Config holds the application configuration
type Config struct {
	APIKey    string          `yaml:"-"` // From environment only
	LogLevel  string          `yaml:"log_level"`
	Personas  PersonasConfig  `yaml:"personas"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Models    ModelsConfig    `yaml:"models"`
	Loop      LoopConfig      `yaml:"loop"`
	Annotate  AnnotateConfig  `yaml:"annotate"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Internal: where config was loaded from
	configPath string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Personas: PersonasConfig{
			Dir:          "personas",
			BootstrapDir: filepath.Join("personas", "bootstrap"),
			Watch:        true,
		},
		Knowledge: KnowledgeConfig{
			Timeout: 30 * time.Second,
		},
		Models: ModelsConfig{
			Preferred:   []string{"claude-opus", "claude-sonnet", "claude-haiku"},
			MaxTokens:   8192,
			Temperature: 0.7,
		},
		Loop: LoopConfig{
			MaxRounds:    10,
			HistoryTurns: 20,
		},
		Annotate: AnnotateConfig{
			MaxPerDocument: 25,
		},
		RateLimit: RateLimitConfig{
			MaxRetries:         5,
			BaseDelay:          1 * time.Second,
			MaxDelay:           60 * time.Second,
			TokensPerMinute:    30000,
			EnableRateLimiting: true,
		},
	}
}

// LoadOptions controls config loading
type LoadOptions struct {
	// Path forces a specific config file instead of the search paths.
	Path string
	// RequireAPIKey fails loading when ANTHROPIC_API_KEY is unset. Commands
	// that never talk to the provider (personas, annotate, workflow) load
	// without it.
	RequireAPIKey bool
}

// Load loads configuration from files and environment with defaults
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{RequireAPIKey: true})
}

// LoadWithOptions loads configuration with explicit options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	cfg := DefaultConfig()

	paths := getConfigPaths()
	if opts.Path != "" {
		paths = []string{opts.Path}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			cfg.configPath = path
			break
		}
	}

	cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	if cfg.APIKey == "" && opts.RequireAPIKey {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
	}

	cfg.Knowledge.Token = os.Getenv("CADRE_KNOWLEDGE_TOKEN")

	if level := os.Getenv("CADRE_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// getConfigPaths returns config file paths in priority order
func getConfigPaths() []string {
	paths := []string{
		"cadre.yaml",
		filepath.Join(".cadre", "config.yaml"),
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cadre", "config.yaml"))
	}

	return paths
}

// loadFromFile loads config from a YAML file
func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return cadreerr.ConfigInvalid(err)
	}
	return nil
}

// ConfigPath returns where the config was loaded from
func (c *Config) ConfigPath() string {
	return c.configPath
}
