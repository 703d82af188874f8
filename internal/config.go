package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/engine"
	"github.com/starford/ansuz/internal/tags"
)

// Config represents the application configuration.
type Config struct {
	App          ApplicationConfig  `yaml:"app"`
	Bibliography BibliographyConfig `yaml:"bibliography"`
	Vault        VaultConfig        `yaml:"vault"`
	Notes        NotesConfig        `yaml:"notes"`
	PDF          PDFConfig          `yaml:"pdf"`
	Tagging      TaggingConfig      `yaml:"tagging"`
	AI           AIConfig           `yaml:"ai"`
	Watcher      WatcherConfig      `yaml:"watcher"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Bibliography.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.Notes.Validate(); err != nil {
		return err
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}
	return c.Watcher.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// BibliographyConfig holds the path to the BibTeX source file.
// A leading ~ is expanded to the user's home directory.
type BibliographyConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the bibliography configuration.
func (c *BibliographyConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// VaultConfig holds the note vault location and the vault-relative folder
// notes are written to (empty means the vault root).
type VaultConfig struct {
	Path         string `yaml:"path"`
	OutputFolder string `yaml:"output_folder"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NotesConfig controls how notes are generated and reconciled.
//
// UpdatePolicy is one of:
//   - "preserve" (default): replace the metadata block, keep the body.
//   - "overwrite": replace the whole note.
//   - "skip": never touch an existing note.
type NotesConfig struct {
	UpdatePolicy string `yaml:"update_policy"`
	TemplatePath string `yaml:"template_path"`
}

// Validate validates the notes configuration.
func (c *NotesConfig) Validate() error {
	// Normalise empty policy to "preserve".
	if c.UpdatePolicy == "" {
		c.UpdatePolicy = string(engine.PolicyPreserve)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.UpdatePolicy, validation.Required, validation.In(
			string(engine.PolicyPreserve),
			string(engine.PolicyOverwrite),
			string(engine.PolicySkip),
		)),
	)
}

// PDFConfig holds the attachment root directory. A leading ~ is expanded.
type PDFConfig struct {
	Root string `yaml:"root"`
}

// TaggingConfig holds the keyword-to-tag rules.
type TaggingConfig struct {
	Rules []tags.Rule `yaml:"rules"`
}

// AIConfig controls abstract annotation. APIKey is typically supplied via
// environment expansion, e.g. "${GEMINI_API_KEY}".
type AIConfig struct {
	Enabled        bool       `yaml:"enabled"`
	APIKey         string     `yaml:"api_key"`
	Model          string     `yaml:"model"`
	TimeoutSeconds int        `yaml:"timeout_seconds"`
	Candidates     Candidates `yaml:"candidates"`
}

// Candidates are hint vocabularies forwarded to the annotator.
type Candidates struct {
	Tasks   []string `yaml:"tasks"`
	Methods []string `yaml:"methods"`
	Targets []string `yaml:"targets"`
}

// Validate validates the AI configuration.
func (c *AIConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
	if c.Model == "" {
		return fmt.Errorf("ai: enabled but model is empty")
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.TimeoutSeconds, validation.Min(1)),
	)
}

// WatcherConfig holds the debounce quiet period in milliseconds.
type WatcherConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Validate validates the watcher configuration.
func (c *WatcherConfig) Validate() error {
	if c.DebounceMS == 0 {
		c.DebounceMS = 1000
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.DebounceMS, validation.Min(100)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		Notes: NotesConfig{
			UpdatePolicy: string(engine.PolicyPreserve),
		},
		AI: AIConfig{
			Model:          "gemini-1.5-flash",
			TimeoutSeconds: 30,
		},
		Watcher: WatcherConfig{
			DebounceMS: 1000,
		},
	}
}
