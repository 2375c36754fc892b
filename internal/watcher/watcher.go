package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/guttosm/tradesync/internal/domain/models"
	"github.com/guttosm/tradesync/internal/logger"
)

// DefaultDebounce is the quiet window after which a burst of events is considered settled.
const DefaultDebounce = time.Second

// ErrAlreadyStarted is returned by Start on a watcher that is running or was stopped.
var ErrAlreadyStarted = errors.New("watcher already started")

// ScanFunc produces a fresh snapshot of the watched directory.
type ScanFunc func() (*models.Snapshot, error)

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration // quiet window; 0 uses DefaultDebounce
}

// WatchSetupError reports that the root could not be placed under observation.
// It is fatal to the watcher only.
type WatchSetupError struct {
	Root string
	Err  error
}

func (e *WatchSetupError) Error() string {
	return fmt.Sprintf("watch %q: %v", e.Root, e.Err)
}

func (e *WatchSetupError) Unwrap() error { return e.Err }

// notifier is the subset of fsnotify used by the watcher; tests provide fakes.
type notifier interface {
	Add(name string) error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Close() error
}

type fsNotifier struct{ w *fsnotify.Watcher }

func (n fsNotifier) Add(name string) error          { return n.w.Add(name) }
func (n fsNotifier) Events() <-chan fsnotify.Event { return n.w.Events }
func (n fsNotifier) Errors() <-chan error           { return n.w.Errors }
func (n fsNotifier) Close() error                   { return n.w.Close() }

func newFSNotifier() (notifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return fsNotifier{w: w}, nil
}

// Watcher observes a directory tree and re-scans it whenever a burst of
// filesystem events settles, publishing each snapshot on Snapshots().
//
// Re-scans are strictly sequential: a snapshot is handed off before the next
// re-scan starts. A failed re-scan publishes an empty snapshot instead of an error.
type Watcher struct {
	root     string
	scan     ScanFunc
	debounce time.Duration
	out      chan *models.Snapshot

	newNotifier func() (notifier, error)

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns a Watcher for root. Nothing is observed until Start is called.
func New(root string, scan ScanFunc, opts Options) *Watcher {
	d := opts.Debounce
	if d <= 0 {
		d = DefaultDebounce
	}
	return &Watcher{
		root:        root,
		scan:        scan,
		debounce:    d,
		out:         make(chan *models.Snapshot),
		newNotifier: newFSNotifier,
	}
}

// Snapshots returns the channel snapshots are published on. It is closed once
// the watch loop exits.
func (w *Watcher) Snapshots() <-chan *models.Snapshot { return w.out }

// Start places the root (and every directory beneath it) under observation
// and launches the watch loop. The loop runs until ctx is cancelled or Stop is called.
//
// Returns:
//   - *WatchSetupError: the root could not be watched; no loop is started.
//   - ErrAlreadyStarted: Start was already called successfully.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}

	n, err := w.newNotifier()
	if err != nil {
		return w.setupFailed(err)
	}
	if err := w.addTree(n, w.root); err != nil {
		_ = n.Close()
		return w.setupFailed(err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.started = true

	go w.loop(loopCtx, n)

	logger.L().Info().Str("root", w.root).Dur("debounce", w.debounce).Msg("watcher started")
	return nil
}

// Stop terminates the watch loop and waits for it to exit. It is safe to call
// more than once and on a watcher that never started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Watcher) setupFailed(err error) error {
	werr := &WatchSetupError{Root: w.root, Err: err}
	logger.L().Error().Str("root", w.root).Err(err).Msg("watch setup failed")
	return werr
}

// addTree watches dir and all directories below it. Only a failure on dir
// itself is returned; nested failures are logged.
func (w *Watcher) addTree(n notifier, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}
	// WalkDir does not descend into a symlinked root.
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	return filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == resolved {
				return err
			}
			logger.L().Warn().Str("dir", path).Err(err).Msg("skip unwatchable directory")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := n.Add(path); err != nil {
			if path == resolved {
				return err
			}
			logger.L().Warn().Str("dir", path).Err(err).Msg("skip unwatchable directory")
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context, n notifier) {
	defer close(w.done)
	defer close(w.out)
	defer func() { _ = n.Close() }()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := 0
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-n.Events():
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(n, ev.Name); err != nil {
						logger.L().Warn().Str("dir", ev.Name).Err(err).Msg("watch new directory failed")
					}
				}
			}
			pending++
			timer.Reset(w.debounce)

		case err, ok := <-n.Errors():
			if !ok {
				return
			}
			logger.L().Warn().Str("root", w.root).Err(err).Msg("watch error")

		case <-timer.C:
			logger.L().Info().Str("root", w.root).Int("events", pending).Msg("change settled, rescanning")
			pending = 0
			if !w.publish(ctx, w.rescan()) {
				return
			}
		}
	}
}

// rescan runs the scan function, degrading to an empty snapshot on failure.
func (w *Watcher) rescan() *models.Snapshot {
	snap, err := w.scan()
	if err != nil || snap == nil {
		logger.L().Error().Str("root", w.root).Err(err).Msg("rescan degraded, publishing empty snapshot")
		return models.EmptySnapshot(models.TriggerWatch)
	}
	return snap
}

// publish hands snap to the consumer, giving up only when ctx is done.
func (w *Watcher) publish(ctx context.Context, snap *models.Snapshot) bool {
	select {
	case w.out <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}
