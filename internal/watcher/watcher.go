// Package watcher observes a vendor data directory and triggers imports
// when catalogue files appear or change.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/logger"
)

// DefaultSettle is how long a file must be quiet before it is handled.
// Scrapers write catalogue files in several chunks.
const DefaultSettle = 500 * time.Millisecond

// Handler is called with the path of a settled catalogue file.
type Handler func(ctx context.Context, path string)

// Watcher drives import callbacks from filesystem events.
type Watcher struct {
	// Settle overrides DefaultSettle when positive.
	Settle time.Duration
}

// New creates a watcher with default settle time.
func New() *Watcher {
	return &Watcher{Settle: DefaultSettle}
}

// Watch blocks handling events on dir until the context is cancelled.
// Only JSON catalogue files trigger the handler; images and hidden files
// are ignored.
func (w *Watcher) Watch(ctx context.Context, dir string, handler Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("%w: watch %s: %v", domain.ErrDataDirUnreadable, dir, err)
	}
	logger.Info("Watching %s for catalogue files", dir)

	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	handled := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			path := catalogueFile(event)
			if path == "" {
				continue
			}
			pruneHandled(handled, settle, time.Now())
			if _, seen := handled[path]; seen {
				continue
			}

			// Let the writer finish before importing.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(settle):
			}
			handled[path] = time.Now()
			handler(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error on %s: %v", dir, err)
		}
	}
}

// pruneHandled drops entries past the settle window so the dedupe map
// stays bounded on long watch runs.
func pruneHandled(handled map[string]time.Time, settle time.Duration, now time.Time) {
	for path, last := range handled {
		if now.Sub(last) >= settle {
			delete(handled, path)
		}
	}
}

// catalogueFile returns the file an event refers to when it should
// trigger an import, or empty otherwise.
func catalogueFile(event fsnotify.Event) string {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return ""
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return ""
	}
	return event.Name
}
