package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if len(cfg.TargetRegions) == 0 {
		t.Error("expected default target regions")
	}
	if cfg.MinScore != 40 {
		t.Errorf("default min_score = %v, want 40", cfg.MinScore)
	}
	if cfg.GetConcurrency() != 4 {
		t.Errorf("default concurrency = %d, want 4", cfg.GetConcurrency())
	}
}

func TestDefaultRegionsIncludeAbbreviations(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	have := make(map[string]bool, len(cfg.TargetRegions))
	for _, r := range cfg.TargetRegions {
		have[r] = true
	}
	// Region matching tests "selected name is a substring of the region
	// token", so abbreviated tokens need abbreviated entries.
	for _, want := range []string{"VA", "CO", "TN", "Virginia", "Colorado", "Tennessee"} {
		if !have[want] {
			t.Errorf("default target_regions missing %q", want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `target_regions: [NC, "North Carolina"]
min_score: 55
concurrency: 8
ai:
  provider: openai
  model: gpt-4o-mini
  api_key: test-key
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinScore != 55 {
		t.Errorf("min_score = %v, want 55", cfg.MinScore)
	}
	if cfg.GetConcurrency() != 8 {
		t.Errorf("concurrency = %d, want 8", cfg.GetConcurrency())
	}
	if !cfg.AIEnabled() {
		t.Error("expected AI enabled with api_key set")
	}
	if cfg.AIKey() != "test-key" {
		t.Errorf("AIKey = %q, want test-key", cfg.AIKey())
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinScore != 40 {
		t.Errorf("min_score = %v, want default 40", cfg.MinScore)
	}

	// First run writes the defaults out for editing.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults written to %s: %v", path, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{MinScore: 40, Concurrency: 4}, true},
		{"zero values", Config{}, true},
		{"min score too high", Config{MinScore: 101}, false},
		{"min score negative", Config{MinScore: -1}, false},
		{"negative concurrency", Config{Concurrency: -2}, false},
		{"unknown provider", Config{AI: &AIConfig{Provider: "bard"}}, false},
		{"claude provider", Config{AI: &AIConfig{Provider: "claude"}}, true},
	}
	for _, tt := range tests {
		err := validate(&tt.cfg)
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestAIKeyFromEnv(t *testing.T) {
	t.Setenv("SUCCESSION_AI_KEY", "env-key")

	cfg := Config{AI: &AIConfig{Provider: "openai"}}
	if !cfg.AIEnabled() {
		t.Error("expected AI enabled via env key")
	}
	if cfg.AIKey() != "env-key" {
		t.Errorf("AIKey = %q, want env-key", cfg.AIKey())
	}

	// Config key wins over env.
	cfg.AI.APIKey = "file-key"
	if cfg.AIKey() != "file-key" {
		t.Errorf("AIKey = %q, want file-key", cfg.AIKey())
	}
}

func TestAIDisabledWithoutConfig(t *testing.T) {
	t.Setenv("SUCCESSION_AI_KEY", "")
	cfg := Config{}
	if cfg.AIEnabled() {
		t.Error("expected AI disabled with no config")
	}
}
