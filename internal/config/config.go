package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type AIConfig struct {
	Provider string `yaml:"provider"` // "openai" or "claude"
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

type Config struct {
	// TargetRegions are matched as case-insensitive substrings of each
	// business's region token (the text after the last comma in its
	// location), so abbreviations and full names both belong here.
	TargetRegions []string  `yaml:"target_regions"`
	MinScore      float64   `yaml:"min_score"`
	Concurrency   int       `yaml:"concurrency"`
	AI            *AIConfig `yaml:"ai,omitempty"`
}

// AIEnabled returns true if AI is configured with a valid API key.
func (c *Config) AIEnabled() bool {
	if c.AI == nil {
		return false
	}
	key := c.AI.APIKey
	if key == "" {
		key = os.Getenv("SUCCESSION_AI_KEY")
	}
	return key != ""
}

// AIKey returns the resolved API key (config or env var).
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv("SUCCESSION_AI_KEY")
}

// GetConcurrency returns the scan fan-out bound, defaulting to 4.
func (c *Config) GetConcurrency() int {
	if c.Concurrency <= 0 {
		return 4
	}
	return c.Concurrency
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "succession", "config.yaml")
}

func StorePath() string {
	return filepath.Join(xdg.DataHome, "succession", "succession.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.MinScore < 0 || cfg.MinScore > 100 {
		return fmt.Errorf("min_score must be between 0 and 100, got %v", cfg.MinScore)
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if cfg.AI != nil {
		switch cfg.AI.Provider {
		case "", "openai", "claude":
		default:
			return fmt.Errorf("ai provider %q unknown (valid: openai, claude)", cfg.AI.Provider)
		}
	}
	return nil
}
