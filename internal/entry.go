// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/annotate"
	"github.com/starford/ansuz/internal/engine"
	"github.com/starford/ansuz/internal/pathutil"
	"github.com/starford/ansuz/internal/storage"
)

// Run starts the application with the given options: one synchronization
// pass, then optionally background watching until interrupted.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	sourcePath := pathutil.ExpandHome(cfg.Bibliography.Path)
	if app.sourcePath != "" {
		sourcePath = pathutil.ExpandHome(app.sourcePath)
	}

	logger.Info("Configuration loaded",
		slog.String("bibliography_path", sourcePath),
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("update_policy", cfg.Notes.UpdatePolicy),
		slog.Bool("ai_enabled", cfg.AI.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure vault directory exists.
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}

	// Initialize note storage.
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	var annotator annotate.Annotator
	if cfg.AI.Enabled {
		annotator = annotate.NewGemini(cfg.AI.APIKey, cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
	}

	var customTemplate string
	if cfg.Notes.TemplatePath != "" {
		data, err := os.ReadFile(pathutil.ExpandHome(cfg.Notes.TemplatePath))
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		customTemplate = string(data)
	}

	orch := engine.New(store, annotator, engine.Options{
		SourcePath:   sourcePath,
		OutputFolder: cfg.Vault.OutputFolder,
		Policy:       engine.Policy(cfg.Notes.UpdatePolicy),
		Template:     customTemplate,
		Rules:        cfg.Tagging.Rules,
		PDFRoot:      pathutil.ExpandHome(cfg.PDF.Root),
		AIEnabled:    cfg.AI.Enabled,
		AIModel:      cfg.AI.Model,
		AIHints: annotate.Hints{
			Tasks:   cfg.AI.Candidates.Tasks,
			Methods: cfg.AI.Candidates.Methods,
			Targets: cfg.AI.Candidates.Targets,
		},
	}, logger)

	// Watch mode always starts from a force pass to seed the baseline.
	force := app.force || app.watch

	report, err := orch.SyncOnce(ctx, force)
	if err != nil {
		if !app.watch {
			return err
		}
		// Not fatal in watch mode: the source may appear later.
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	} else {
		fmt.Printf("Processed %d entries. Created/Updated: %d. Errors: %d\n",
			report.Processed, report.Written, report.Failed)
	}

	if !app.watch {
		return nil
	}

	debounce := time.Duration(cfg.Watcher.DebounceMS) * time.Millisecond

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the bibliography source for changes.
	g.Go(func() error {
		return engine.Watch(gCtx, orch, sourcePath, debounce, logger)
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			return context.Canceled
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Stopped")
	return nil
}
