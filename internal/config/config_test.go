package config

import (
	"os"
	"path/filepath"
	"testing"

	"loom/internal/chunk"
	"loom/internal/render"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AI.Provider != "openai" {
		t.Errorf("Expected default provider openai, got %q", cfg.AI.Provider)
	}
	if cfg.Pipeline.SplitThreshold != chunk.DefaultThreshold {
		t.Errorf("Expected default split threshold %d, got %d", chunk.DefaultThreshold, cfg.Pipeline.SplitThreshold)
	}
	if cfg.Pipeline.MaxExamples != render.DefaultMaxExamples {
		t.Errorf("Expected default max examples %d, got %d", render.DefaultMaxExamples, cfg.Pipeline.MaxExamples)
	}
	if cfg.Pipeline.Temperature != 0.3 || cfg.Pipeline.FinalTemperature != 0.4 {
		t.Errorf("Unexpected default temperatures: %g %g", cfg.Pipeline.Temperature, cfg.Pipeline.FinalTemperature)
	}
	if !cfg.Pipeline.ContinueOnError {
		t.Error("Expected continue_on_error to default to true")
	}
	if cfg.Output.Directory != "reports" || cfg.Output.Filename != "narratives.md" {
		t.Errorf("Unexpected output defaults: %q %q", cfg.Output.Directory, cfg.Output.Filename)
	}
}

func TestLoadFromFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "loom.yaml")
	contents := `
ai:
  provider: gemini
pipeline:
  topic: climate policy
  split_threshold: 50
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("Expected provider gemini, got %q", cfg.AI.Provider)
	}
	if cfg.Pipeline.Topic != "climate policy" {
		t.Errorf("Expected topic from file, got %q", cfg.Pipeline.Topic)
	}
	if cfg.Pipeline.SplitThreshold != 50 {
		t.Errorf("Expected split threshold 50, got %d", cfg.Pipeline.SplitThreshold)
	}
	// untouched keys keep defaults
	if cfg.Pipeline.MaxExamples != render.DefaultMaxExamples {
		t.Errorf("Expected default max examples, got %d", cfg.Pipeline.MaxExamples)
	}
}

func TestLoadEnvironmentBinding(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("GEMINI_API_KEY", "test-gemini-key")
	t.Setenv("LOOM_TOPIC", "election coverage")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.Gemini.APIKey != "test-gemini-key" {
		t.Errorf("Expected Gemini key from environment, got %q", cfg.AI.Gemini.APIKey)
	}
	if cfg.Pipeline.Topic != "election coverage" {
		t.Errorf("Expected topic from environment, got %q", cfg.Pipeline.Topic)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown provider", func(c *Config) { c.AI.Provider = "anthropic" }, true},
		{"negative threshold", func(c *Config) { c.Pipeline.SplitThreshold = -1 }, true},
		{"negative max examples", func(c *Config) { c.Pipeline.MaxExamples = -2 }, true},
		{"temperature too high", func(c *Config) { c.Pipeline.Temperature = 3 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				AI:       AI{Provider: "openai"},
				Pipeline: Pipeline{SplitThreshold: 30, MaxExamples: 10, Temperature: 0.3, FinalTemperature: 0.4},
			}
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr && err == nil {
				t.Error("Expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}
