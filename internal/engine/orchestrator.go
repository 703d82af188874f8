// Package engine implements the incremental synchronization core: change
// classification, note synthesis, content merging, and batch orchestration.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/starford/ansuz/internal/annotate"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/bib"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/tags"
)

// Options configures one orchestrator.
type Options struct {
	// SourcePath is the resolved path to the bibliography file.
	SourcePath string
	// OutputFolder is the vault-relative note folder; empty means the root.
	OutputFolder string
	// Policy is the update policy for existing notes.
	Policy Policy
	// Template is a custom note template; empty selects the built-in one.
	Template string
	// Rules are the keyword-to-tag rules.
	Rules []tags.Rule
	// PDFRoot is the attachment root directory.
	PDFRoot string

	AIEnabled bool
	AIModel   string
	AIHints   annotate.Hints
}

// Report aggregates the outcome of one batch.
type Report struct {
	Processed int
	Written   int
	Failed    int
}

// Orchestrator drives synchronization batches. Entries are processed to
// completion one at a time, which gives per-path mutual exclusion by
// construction.
type Orchestrator struct {
	store   storage.Provider
	synth   *Synthesizer
	tracker *Tracker
	opts    Options
	logger  *slog.Logger
}

// New builds an orchestrator with an empty fingerprint baseline.
func New(store storage.Provider, annotator annotate.Annotator, opts Options, logger *slog.Logger) *Orchestrator {
	if opts.Policy == "" {
		opts.Policy = PolicyPreserve
	}
	return &Orchestrator{
		store:   store,
		synth:   NewSynthesizer(annotator, opts, logger),
		tracker: NewTracker(),
		opts:    opts,
		logger:  logger,
	}
}

// SyncOnce reads and parses the bibliography source, classifies entries,
// and runs the batch. A missing or unreadable source yields an
// ErrSourceUnavailable-wrapped error and zero entries; parse diagnostics on
// individual records are logged and do not block the records that parsed.
func (o *Orchestrator) SyncOnce(ctx context.Context, force bool) (Report, error) {
	data, err := os.ReadFile(o.opts.SourcePath)
	if err != nil {
		o.logger.Warn("sync: source unavailable",
			slog.String("path", o.opts.SourcePath),
			slog.String("error", err.Error()))
		return Report{}, fmt.Errorf("sync: read %s: %w", o.opts.SourcePath, apperr.ErrSourceUnavailable)
	}

	lib := bib.Parse(data)
	if n := len(lib.Diagnostics); n > 0 {
		o.logger.Warn("sync: source parsed with errors", slog.Int("count", n))
		for _, d := range lib.Diagnostics {
			o.logger.Debug("sync: parse error", slog.String("diagnostic", d.String()))
		}
	}

	selected := o.tracker.Classify(lib.Entries, force)
	o.logger.Info("sync: classified",
		slog.Int("total", len(lib.Entries)),
		slog.Int("selected", len(selected)),
		slog.Bool("force", force))

	return o.Run(ctx, selected), nil
}

// Run processes entries independently: a failure on one entry is counted
// and logged, never aborts the batch.
func (o *Orchestrator) Run(ctx context.Context, entries []*bib.Entry) Report {
	report := Report{Processed: len(entries)}
	for _, e := range entries {
		if ctx.Err() != nil {
			o.logger.Info("sync: cancelled", slog.Int("remaining", report.Processed-report.Written-report.Failed))
			break
		}
		wrote, err := o.processEntry(ctx, e)
		if err != nil {
			report.Failed++
			o.logger.Warn("sync: entry failed",
				slog.String("key", e.Key),
				slog.String("error", err.Error()))
			continue
		}
		if wrote {
			report.Written++
			o.logger.Debug("sync: note written", slog.String("key", e.Key))
		} else {
			o.logger.Debug("sync: no write needed", slog.String("key", e.Key))
		}
	}
	return report
}

// processEntry takes one entry through synthesize → merge → commit.
func (o *Orchestrator) processEntry(ctx context.Context, e *bib.Entry) (bool, error) {
	name := sanitizeFileName(firstNonEmpty(e.Field("title"), e.Key)) + ".md"

	path := name
	if folder := strings.Trim(o.opts.OutputFolder, "/"); folder != "" {
		if err := o.store.CreateFolder(folder); err != nil {
			return false, err
		}
		path = folder + "/" + name
	}

	var oldText string
	var existingFM map[string]interface{}
	exists := o.store.Exists(path)
	if exists {
		data, err := o.store.Read(path)
		if err != nil {
			return false, err
		}
		oldText = string(data)
		existingFM = parser.Parse(data).Frontmatter
	}

	content, err := o.synth.Synthesize(ctx, e, existingFM)
	if err != nil {
		return false, err
	}

	if !exists {
		if err := o.store.Create(path, []byte(content)); err != nil {
			return false, err
		}
		return true, nil
	}

	merged, write := Merge(oldText, content, o.opts.Policy)
	if !write {
		return false, nil
	}
	if err := o.store.Modify(path, []byte(merged)); err != nil {
		return false, err
	}
	return true, nil
}

// sanitizeFileName strips characters illegal in common filesystems and caps
// the length.
func sanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)
	runes := []rune(cleaned)
	if len(runes) > 255 {
		runes = runes[:255]
	}
	return string(runes)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
