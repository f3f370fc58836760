package placeholder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls back when placeholder value files or template files change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dirs     map[string]bool // watched placeholder directories
	files    map[string]bool // individually watched files
	debounce time.Duration
	logger   *zap.Logger
}

// NewWatcher watches the given placeholder directories and files. Files are
// watched through their parent directory so rename-on-save editors keep
// working.
func NewWatcher(paths []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		dirs:     make(map[string]bool),
		files:    make(map[string]bool),
		debounce: debounce,
		logger:   logger,
	}

	added := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("invalid watch path %s: %w", p, err)
		}

		target := abs
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
			target = filepath.Dir(abs)
		}

		if added[target] {
			continue
		}
		if err := fw.Add(target); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", target, err)
		}
		added[target] = true
		logger.Debug("watching", zap.String("path", target))
	}

	return w, nil
}

// Run blocks until ctx is done, calling onChange once per quiet period
// after relevant changes. Errors from onChange are logged and watching
// continues.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer func() { _ = w.watcher.Close() }()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if err := onChange(); err != nil {
				w.logger.Error("re-run failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)] && strings.HasSuffix(name, FileExtension)
}
