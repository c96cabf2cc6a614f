package table

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// A Watcher reloads a table file when it changes. A table never changes in
// place: each reload produces a new Table for the callbacks to adopt.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce func(func())
	logger   *slog.Logger

	mu       sync.RWMutex
	current  *Table
	onChange []func(*Table)

	done chan struct{}
}

func Watch(path string, delay time.Duration, logger *slog.Logger) (*Watcher, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// editors often replace the file, so watch its directory
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		debounce: debounce.New(delay),
		logger:   logger,
		current:  t,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounce(w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("chord table watch", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) reload() {
	t, err := Load(w.path)
	if err != nil {
		// keep serving the last good table
		w.logger.Error("chord table reload", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	w.current = t
	callbacks := append([]func(*Table){}, w.onChange...)
	w.mu.Unlock()

	w.logger.Info("chord table reloaded", "path", w.path, "chords", t.Len())
	for _, cb := range callbacks {
		cb(t)
	}
}

func (w *Watcher) Table() *Table {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) OnChange(cb func(*Table)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, cb)
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
