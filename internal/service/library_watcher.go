package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FingerprintFunc summarizes the persisted library; a different value means
// the library was written since the last call.
type FingerprintFunc func(ctx context.Context) (string, error)

// LibraryWatcher detects library writes made by other processes (the MCP
// server or a second window) and emits EventLibraryChanged. Writes made by
// this process are acknowledged through Touch; an echo that slips through
// only makes the frontend re-read.
type LibraryWatcher struct {
	fingerprint FingerprintFunc
	emitter     EventEmitter
	dbPath      string
	interval    time.Duration

	mu     sync.Mutex
	last   string
	stopCh chan struct{}
	done   chan struct{}
}

// NewLibraryWatcher creates a watcher for the database file at dbPath.
func NewLibraryWatcher(dbPath string, fp FingerprintFunc, emitter EventEmitter) *LibraryWatcher {
	return &LibraryWatcher{
		fingerprint: fp,
		emitter:     emitter,
		dbPath:      dbPath,
		interval:    2 * time.Second,
	}
}

// SetInterval changes the polling period. Must be called before Start.
func (w *LibraryWatcher) SetInterval(d time.Duration) {
	if d > 0 {
		w.interval = d
	}
}

// Start records the current fingerprint and begins watching.
func (w *LibraryWatcher) Start(ctx context.Context) {
	w.Touch(ctx)
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("library watcher: fsnotify unavailable, polling only", "err", err)
		watcher = nil
	} else if err := watcher.Add(filepath.Dir(w.dbPath)); err != nil {
		slog.Warn("library watcher: cannot watch data dir, polling only", "dir", filepath.Dir(w.dbPath), "err", err)
		watcher.Close()
		watcher = nil
	}

	go w.loop(ctx, watcher)
}

// Stop terminates the watch loop.
func (w *LibraryWatcher) Stop() {
	if w.stopCh == nil {
		return
	}
	close(w.stopCh)
	<-w.done
	w.stopCh = nil
}

// Touch records the current state as seen. Call after local writes.
func (w *LibraryWatcher) Touch(ctx context.Context) {
	fp, err := w.fingerprint(ctx)
	if err != nil {
		return
	}
	w.mu.Lock()
	w.last = fp
	w.mu.Unlock()
}

// Check compares the fingerprint with the last one seen and emits
// EventLibraryChanged when it differs. It reports whether it emitted.
func (w *LibraryWatcher) Check(ctx context.Context) bool {
	fp, err := w.fingerprint(ctx)
	if err != nil {
		return false
	}
	w.mu.Lock()
	changed := w.last != "" && w.last != fp
	w.last = fp
	w.mu.Unlock()

	if changed && w.emitter != nil {
		w.emitter.Emit(ctx, EventLibraryChanged, nil)
	}
	return changed
}

func (w *LibraryWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var events chan fsnotify.Event
	var errs chan error
	if watcher != nil {
		defer watcher.Close()
		events = watcher.Events
		errs = watcher.Errors
	}

	base := filepath.Base(w.dbPath)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			// covers the -wal and -shm companions as well
			if strings.HasPrefix(filepath.Base(ev.Name), base) && ev.Has(fsnotify.Write) {
				w.Check(ctx)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("library watcher: error", "err", err)
		case <-ticker.C:
			w.Check(ctx)
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}
