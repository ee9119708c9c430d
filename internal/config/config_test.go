package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	cadreerr "github.com/cadre-sh/cadre/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Loop.MaxRounds != 10 {
		t.Errorf("expected 10 max rounds, got %d", cfg.Loop.MaxRounds)
	}
	if cfg.Loop.HistoryTurns != 20 {
		t.Errorf("expected 20 history turns, got %d", cfg.Loop.HistoryTurns)
	}
	if cfg.Annotate.MaxPerDocument != 25 {
		t.Errorf("expected annotation cap 25, got %d", cfg.Annotate.MaxPerDocument)
	}
	if len(cfg.Models.Preferred) == 0 || cfg.Models.Preferred[0] != "claude-opus" {
		t.Errorf("expected claude-opus as first preference, got %v", cfg.Models.Preferred)
	}
	if !cfg.Personas.Watch {
		t.Error("persona watching should default to on")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cadre.yaml")
	content := `
log_level: debug
loop:
  max_rounds: 5
personas:
  dir: /tmp/personas
knowledge:
  base_url: http://localhost:9090
  timeout: 5s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithOptions(LoadOptions{Path: path})
	if err != nil {
		t.Fatalf("LoadWithOptions returned error: %v", err)
	}

	if cfg.Loop.MaxRounds != 5 {
		t.Errorf("expected 5 max rounds from file, got %d", cfg.Loop.MaxRounds)
	}
	if cfg.Personas.Dir != "/tmp/personas" {
		t.Errorf("expected persona dir override, got %q", cfg.Personas.Dir)
	}
	if cfg.Knowledge.BaseURL != "http://localhost:9090" {
		t.Errorf("expected knowledge url, got %q", cfg.Knowledge.BaseURL)
	}
	if cfg.Knowledge.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Knowledge.Timeout)
	}
	if cfg.ConfigPath() != path {
		t.Errorf("expected config path %q, got %q", path, cfg.ConfigPath())
	}
	// Untouched fields keep defaults
	if cfg.Loop.HistoryTurns != 20 {
		t.Errorf("expected default history turns, got %d", cfg.Loop.HistoryTurns)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := LoadWithOptions(LoadOptions{Path: filepath.Join(t.TempDir(), "none.yaml"), RequireAPIKey: true}); err == nil {
		t.Error("expected error when API key required but unset")
	}

	if _, err := LoadWithOptions(LoadOptions{Path: filepath.Join(t.TempDir(), "none.yaml")}); err != nil {
		t.Errorf("expected no error without key requirement, got %v", err)
	}
}

func TestLoadKnowledgeTokenFromEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("CADRE_KNOWLEDGE_TOKEN", "kn-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Knowledge.Token != "kn-token" {
		t.Errorf("expected knowledge token from env, got %q", cfg.Knowledge.Token)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cadre.yaml")
	if err := os.WriteFile(path, []byte("loop: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadWithOptions(LoadOptions{Path: path})
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
	if cadreerr.GetCategory(err) != cadreerr.CategoryConfig {
		t.Errorf("expected config category, got %q", cadreerr.GetCategory(err))
	}
}
