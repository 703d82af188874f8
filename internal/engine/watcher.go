package engine

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the bibliography source file and triggers a diff-mode pass
// after a quiet period. The parent directory is watched rather than the
// file itself so editors that replace the file on save keep being observed.
//
// Change bursts are coalesced: every event resets the debounce timer, and
// the pass runs synchronously in the event loop, so only one pass is ever
// in flight. Events arriving during a pass queue up and re-debounce after
// it completes. Cancelling ctx stops any pending timer and returns.
func Watch(ctx context.Context, orch *Orchestrator, sourcePath string, debounce time.Duration, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(sourcePath)
	base := filepath.Base(sourcePath)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started",
		slog.String("path", sourcePath),
		slog.Duration("debounce", debounce))

	var timer *time.Timer
	var fireCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fireCh = timer.C
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-fireCh:
			logger.Info("watcher: change detected, running diff pass")
			report, err := orch.SyncOnce(ctx, false)
			if err != nil {
				logger.Warn("watcher: pass failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("watcher: pass complete",
				slog.Int("processed", report.Processed),
				slog.Int("written", report.Written),
				slog.Int("failed", report.Failed))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watcher: event", slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
