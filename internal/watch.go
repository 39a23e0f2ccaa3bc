package internal

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce groups the writes an editor makes when saving a file.
const debounce = 100 * time.Millisecond

// Watcher re-runs the engine on Java files as they are written.
type Watcher struct {
	engine  *Engine
	watcher *fsnotify.Watcher
	handle  func(*Result)
	logger  *zap.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher watches dirs recursively and passes each result to handle.
func NewWatcher(e *Engine, dirs []string, handle func(*Result)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	w := &Watcher{
		engine:  e,
		watcher: fw,
		handle:  handle,
		logger:  e.logger,
		pending: make(map[string]*time.Timer),
	}
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return fw.Add(path)
			}
			return nil
		})
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return w, nil
}

// Run handles events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !strings.HasSuffix(event.Name, ".java") {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[event.Name]; ok {
		t.Reset(debounce)
		return
	}
	w.pending[event.Name] = time.AfterFunc(debounce, func() {
		w.mu.Lock()
		delete(w.pending, event.Name)
		w.mu.Unlock()
		w.process(ctx, event.Name)
	})
}

func (w *Watcher) process(ctx context.Context, filename string) {
	res, err := w.engine.Run(ctx, filename)
	if err != nil {
		w.logger.Error("error refactoring file", zap.String("file", filename), zap.Error(err))
		return
	}
	w.logger.Info("processed file", zap.String("file", filename), zap.Int("changes", len(res.Changes)))
	if w.handle != nil {
		w.handle(res)
	}
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, t := range w.pending {
		t.Stop()
		delete(w.pending, name)
	}
}
