// Package watcher monitors a Rust source tree for changes.
package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// rustExt is the only extension whose changes can affect scan results.
const rustExt = ".rs"

// SourceWatcher monitors a source tree and reports changed .rs files in
// debounced batches.
type SourceWatcher interface {
	// Start begins watching, invoking callback with each debounced batch of
	// changed file paths.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the watcher and cleans up resources.
	Stop() error
}

// sourceWatcher implements SourceWatcher.
type sourceWatcher struct {
	watcher       *fsnotify.Watcher
	root          string               // source root watched recursively
	debounceTime  time.Duration        // quiet period before firing the callback
	callback      func(files []string) // invoked with each debounced batch
	logger        *log.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	accumulated   map[string]bool // accumulated file changes
	accumulatedMu sync.Mutex      // protects accumulated
	debounceTimer *time.Timer     // current debounce timer
	timerMu       sync.Mutex      // protects debounceTimer
	stopOnce      sync.Once       // ensures Stop() is idempotent
	doneCh        chan struct{}   // signals the watch goroutine has finished
}

// New creates a watcher over the given source root. The root and every
// directory below it are registered; directories created later are picked up
// as they appear. A nil logger discards diagnostics.
func New(root string, debounce time.Duration, logger *log.Logger) (SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	sw := &sourceWatcher{
		watcher:      watcher,
		root:         root,
		debounceTime: debounce,
		logger:       logger,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	if err := sw.addDirectoriesRecursively(root); err != nil {
		watcher.Close()
		return nil, err
	}

	return sw, nil
}

// Start begins watching for file changes.
func (sw *sourceWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	sw.callback = callback
	sw.ctx, sw.cancel = context.WithCancel(ctx)

	go sw.watch()
	return nil
}

// Stop stops the watcher.
func (sw *sourceWatcher) Stop() error {
	var err error
	sw.stopOnce.Do(func() {
		if sw.cancel != nil {
			sw.cancel()

			// Wait for the goroutine to finish (only if Start() was called)
			<-sw.doneCh
		} else {
			// Never started, close doneCh manually
			close(sw.doneCh)
		}

		err = sw.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (sw *sourceWatcher) watch() {
	defer close(sw.doneCh)

	rescanCh := make(chan struct{}, 1)

	for {
		select {
		case <-sw.ctx.Done():
			sw.stopDebounceTimer()
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}

			// New directories must be registered before files land in them
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := sw.addDirectoriesRecursively(event.Name); err != nil {
						sw.logger.Warn("failed to watch new directory", "dir", event.Name, "err", err)
					}
				}
			}

			if !sw.shouldProcessEvent(event) {
				continue
			}

			sw.accumulatedMu.Lock()
			sw.accumulated[event.Name] = true
			sw.accumulatedMu.Unlock()

			sw.resetDebounceTimer(rescanCh)

		case <-rescanCh:
			sw.handleDebounceExpired()

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("watch error", "err", err)
		}
	}
}

// handleDebounceExpired fires the callback with the accumulated batch.
func (sw *sourceWatcher) handleDebounceExpired() {
	sw.accumulatedMu.Lock()
	if len(sw.accumulated) == 0 {
		sw.accumulatedMu.Unlock()
		return
	}

	files := make([]string, 0, len(sw.accumulated))
	for file := range sw.accumulated {
		files = append(files, file)
	}
	sw.accumulated = make(map[string]bool)
	sw.accumulatedMu.Unlock()

	if sw.callback != nil {
		sw.callback(files)
	}
}

// resetDebounceTimer resets the debounce timer, properly stopping the old one.
func (sw *sourceWatcher) resetDebounceTimer(rescanCh chan struct{}) {
	sw.timerMu.Lock()
	defer sw.timerMu.Unlock()

	if sw.debounceTimer != nil {
		if !sw.debounceTimer.Stop() {
			// Timer already fired, drain the channel
			select {
			case <-sw.debounceTimer.C:
			default:
			}
		}
	}

	sw.debounceTimer = time.AfterFunc(sw.debounceTime, func() {
		select {
		case rescanCh <- struct{}{}:
		default:
		}
	})
}

// stopDebounceTimer stops the debounce timer if it exists.
func (sw *sourceWatcher) stopDebounceTimer() {
	sw.timerMu.Lock()
	defer sw.timerMu.Unlock()

	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
		sw.debounceTimer = nil
	}
}

// shouldProcessEvent reports whether an event is a relevant change to a
// Rust source file.
func (sw *sourceWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Ext(event.Name) == rustExt
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (sw *sourceWatcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// A missing watch root is an error; broken subdirectories are not
			if path == rootPath {
				return err
			}
			sw.logger.Warn("error accessing path", "path", path, "err", err)
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if err := sw.watcher.Add(path); err != nil {
			sw.logger.Warn("failed to watch directory", "dir", path, "err", err)
			return nil
		}

		return nil
	})
}
