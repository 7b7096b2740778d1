package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/stylekit/jsstyle/internal/jsast"
	tt "github.com/stylekit/jsstyle/internal/types"
)

// DefaultDebounce is how long a file must stay quiet before it is re-linted.
const DefaultDebounce = 100 * time.Millisecond

// ReportFunc receives the result of re-linting a changed file.
type ReportFunc func(filename string, issues []tt.Issue, err error)

// Watcher re-lints source files as they change on disk.
type Watcher struct {
	engine   *Engine
	logger   *zap.Logger
	report   ReportFunc
	Debounce time.Duration

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	pending map[string]*time.Timer
	running bool
	done    chan struct{}
}

func NewWatcher(engine *Engine, logger *zap.Logger, report ReportFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		engine:   engine,
		logger:   logger,
		report:   report,
		Debounce: DefaultDebounce,
		watcher:  fw,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Add watches dir and every directory below it, except dependency folders.
func (w *Watcher) Add(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (d.Name() == "node_modules" || d.Name() == ".git") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	return nil
}

func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errors.New("already watching")
	}
	w.running = true
	go w.watchLoop()
	return nil
}

// Stop closes the underlying watcher and cancels pending runs.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return errors.New("not watching")
	}
	w.running = false
	for name, t := range w.pending {
		t.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				w.logger.Warn("cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}
	if !jsast.Supported(event.Name) || w.engine.IsIgnoredPath(event.Name) {
		return
	}
	w.schedule(event.Name)
}

// schedule coalesces bursts of events on one file into a single run.
func (w *Watcher) schedule(filename string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if t, ok := w.pending[filename]; ok {
		t.Reset(w.Debounce)
		return
	}
	w.pending[filename] = time.AfterFunc(w.Debounce, func() {
		w.mu.Lock()
		delete(w.pending, filename)
		w.mu.Unlock()
		w.lintFile(filename)
	})
}

func (w *Watcher) lintFile(filename string) {
	issues, err := w.engine.Run(filename)
	if err != nil {
		w.logger.Error("error linting changed file", zap.String("file", filename), zap.Error(err))
	} else {
		w.logger.Debug("linted changed file", zap.String("file", filename), zap.Int("issues", len(issues)))
	}
	if w.report != nil {
		w.report(filename, issues, err)
	}
}
