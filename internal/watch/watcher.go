// Package watch re-runs a callback whenever a script file changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration // quiet period before a change is reported
	Stdout   io.Writer     // status lines, may be nil
	Stderr   io.Writer     // watcher errors, may be nil
}

// Watcher monitors a single file for changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	stdout   io.Writer
	stderr   io.Writer
}

// New watches the directory holding path. Editors often replace a file
// instead of writing it in place, and a directory watch survives that.
func New(path string, opts Options) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		path:     absPath,
		debounce: opts.Debounce,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
	}
	if w.debounce <= 0 {
		w.debounce = 100 * time.Millisecond
	}
	if w.stdout == nil {
		w.stdout = io.Discard
	}
	if w.stderr == nil {
		w.stderr = io.Discard
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls onChange after each burst of changes to the file, until ctx is
// done or the watcher is closed. Calls are serial: events arriving while
// onChange runs are coalesced into the next call.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	w.logInfo("watching %s", w.path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// Restart the quiet period on every event.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.logInfo("changed: %s", filepath.Base(w.path))
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logError("watcher error: %v", err)
		}
	}
}

// relevant keeps writes to the watched file and its creation, which is
// also how a file renamed into place shows up.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) logInfo(format string, args ...interface{}) {
	fmt.Fprintf(w.stdout, "[watch] "+format+"\n", args...)
}

func (w *Watcher) logError(format string, args ...interface{}) {
	fmt.Fprintf(w.stderr, "[watch error] "+format+"\n", args...)
}
