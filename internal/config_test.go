package internal

import (
	"strings"
	"testing"
)

func TestNotesConfig_EmptyPolicyDefaultsPreserve(t *testing.T) {
	cfg := NotesConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty policy should default to preserve: %v", err)
	}
	if cfg.UpdatePolicy != "preserve" {
		t.Errorf("policy = %q, want preserve", cfg.UpdatePolicy)
	}
}

func TestNotesConfig_PolicyValues(t *testing.T) {
	for _, policy := range []string{"preserve", "overwrite", "skip"} {
		cfg := NotesConfig{UpdatePolicy: policy}
		if err := cfg.Validate(); err != nil {
			t.Errorf("policy %q should pass: %v", policy, err)
		}
	}
	cfg := NotesConfig{UpdatePolicy: "merge"}
	if err := cfg.Validate(); err == nil {
		t.Error("unknown policy should fail validation")
	}
}

func TestBibliographyConfig_PathRequired(t *testing.T) {
	cfg := BibliographyConfig{}
	if err := cfg.Validate(); err == nil {
		t.Error("missing bibliography path should fail")
	}
}

func TestAIConfig_DisabledSkipsValidation(t *testing.T) {
	cfg := AIConfig{Enabled: false}
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled AI should pass: %v", err)
	}
}

func TestAIConfig_EnabledRequiresModel(t *testing.T) {
	cfg := AIConfig{Enabled: true}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("enabled AI with no model should fail")
	}
	if !strings.Contains(err.Error(), "model is empty") {
		t.Errorf("unexpected error: %v", err)
	}

	cfg = AIConfig{Enabled: true, Model: "gemini-1.5-flash"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("enabled AI with model should pass: %v", err)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("timeout default = %d, want 30", cfg.TimeoutSeconds)
	}
}

func TestWatcherConfig_Defaults(t *testing.T) {
	cfg := WatcherConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero debounce should default: %v", err)
	}
	if cfg.DebounceMS != 1000 {
		t.Errorf("debounce = %d, want 1000", cfg.DebounceMS)
	}
	low := WatcherConfig{DebounceMS: 10}
	if err := low.Validate(); err == nil {
		t.Error("sub-100ms debounce should fail validation")
	}
}

func TestConfig_ValidateAll(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Bibliography.Path = "~/refs/library.bib"
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config with a source path should pass: %v", err)
	}
}
