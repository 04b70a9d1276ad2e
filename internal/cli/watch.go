package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchPhoto calls rebuild whenever photo is written or replaced, until ctx
// is done. The parent directory is watched because editors often save by
// renaming a temporary file over the original. A failed rebuild is reported
// and watching continues.
func (c *CLI) watchPhoto(ctx context.Context, status io.Writer, photo string, rebuild func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(photo)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	printInfo(status, "Watching %s (ctrl+c to stop)", photo)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target) {
				continue
			}
			c.Logger.Debug("photo changed", "event", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if !fileExists(target) {
				printWarning(status, "%s was removed; waiting for it to come back", photo)
				continue
			}
			if err := rebuild(ctx); err != nil {
				printWarning(status, "%v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "error", err)
		}
	}
}

// relevant reports whether event touches target.
func relevant(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
