package persona

import (
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cadre-sh/cadre/internal/logger"
)

// debounceWindow coalesces bursts of filesystem events (editors often write
// a file several times per save) into a single reload.
const debounceWindow = 300 * time.Millisecond

// Watcher reloads the registry when persona definition files change.
type Watcher struct {
	registry *Registry
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// Watch starts watching the registry's directory. Returns nil if the
// directory does not exist or the watcher cannot be created; persona editing
// then requires a manual reload, which is not an error.
func Watch(r *Registry) *Watcher {
	if _, err := os.Stat(r.Dir()); err != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("persona watcher unavailable: %v", err)
		return nil
	}
	if err := fsw.Add(r.Dir()); err != nil {
		_ = fsw.Close()
		logger.Warn("cannot watch %s: %v", r.Dir(), err)
		return nil
	}

	w := &Watcher{
		registry: r,
		watcher:  fsw,
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Watcher) run() {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := false

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
				event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				if pending && !timer.Stop() {
					<-timer.C
				}
				timer.Reset(debounceWindow)
				pending = true
			}

		case <-timer.C:
			pending = false
			logger.Debug("persona files changed, reloading registry")
			w.registry.Reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("persona watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() {
	if w == nil {
		return
	}
	close(w.done)
	_ = w.watcher.Close()
}
