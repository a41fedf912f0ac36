package audio

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher drops cached sounds when their files change on disk.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	player  *Player
	watcher *fsnotify.Watcher
	paths   map[string]struct{}
	dirs    map[string]struct{}
	done    chan struct{}
}

// NewWatcher creates a watcher that invalidates player's cache.
func NewWatcher(player *Player, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger: logger,
		player: player,
		paths:  make(map[string]struct{}),
		dirs:   make(map[string]struct{}),
	}
}

// Watch adds path to the watch list. Paths added before Start are
// registered when it runs.
func (w *Watcher) Watch(path string) {
	if path == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths[path] = struct{}{}
	w.addDirLocked(filepath.Dir(path))
}

func (w *Watcher) addDirLocked(dir string) {
	if w.watcher == nil {
		return
	}
	if _, ok := w.dirs[dir]; ok {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Warn("failed to watch sound directory", "dir", dir, "error", err)
		return
	}
	w.dirs[dir] = struct{}{}
}

// Watching reports whether path is on the watch list.
func (w *Watcher) Watching(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.paths[path]
	return ok
}

// Start begins watching. Calling it again is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fw
	w.done = make(chan struct{})
	for path := range w.paths {
		w.addDirLocked(filepath.Dir(path))
	}
	go w.run(fw, w.done)
	return nil
}

func (w *Watcher) run(fw *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if w.Watching(event.Name) {
				w.player.Invalidate(event.Name)
				w.logger.Debug("sound file changed", "path", event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("sound watcher error", "error", err)
		case <-done:
			return
		}
	}
}

// Stop stops watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return
	}
	close(w.done)
	_ = w.watcher.Close()
	w.watcher = nil
	clear(w.dirs)
}
