// Package watch reports when a directory has stopped changing, so new
// images dropped into a class directory can be renamed once the copy is
// finished.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/logger"
)

// DefaultDebounce is how long a directory must stay quiet before it counts
// as settled.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors one directory with fsnotify.
type Watcher struct {
	Dir string
	// Settled receives a value after a burst of changes goes quiet. At most
	// one notification is buffered.
	Settled <-chan struct{}

	settled  chan struct{}
	debounce time.Duration
	log      logger.Logger
	done     chan struct{}
	watcher  *fsnotify.Watcher
	started  bool
	stopOnce sync.Once
}

// NewWatcher creates a Watcher for dir. It does not start watching.
func NewWatcher(dir string, debounce time.Duration, log logger.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Nop()
	}

	ch := make(chan struct{}, 1)
	return &Watcher{
		Dir:      dir,
		Settled:  ch,
		settled:  ch,
		debounce: debounce,
		log:      log,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		_ = w.watcher.Close()
		if w.started {
			<-w.done
		}
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	var last time.Time
	pending := false

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == dataset.Marker {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				last = time.Now()
				pending = true
			}

		case <-ticker.C:
			if pending && time.Since(last) >= w.debounce {
				pending = false
				w.notify()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "dir", w.Dir, "error", err)
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.settled <- struct{}{}:
	default:
	}
}

// Run watches dir and calls fn once at start and again every time the
// directory settles, until ctx is done or fn fails.
func Run(ctx context.Context, dir string, debounce time.Duration, log logger.Logger, fn func(context.Context) error) error {
	w, err := NewWatcher(dir, debounce, log)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	defer w.Stop()

	if err := fn(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Settled:
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}
