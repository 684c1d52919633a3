package fs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports lines appended to a file. Every distinct non-empty line
// is reported once, including the lines present when watching starts.
type Watcher struct {
	path   string
	logger *slog.Logger
	seen   map[string]bool
}

// NewWatcher creates a Watcher for path. The file does not need to exist
// yet; its directory does.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		path:   filepath.Clean(path),
		logger: logger,
		seen:   make(map[string]bool),
	}
}

// Run calls fn for every new line until ctx is done. It returns nil on
// cancellation and an error if the watch cannot be set up.
func (w *Watcher) Run(ctx context.Context, fn func(line string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// Watch the directory so the file may be created or replaced later.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.scan(fn)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.scan(fn)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) scan(fn func(line string)) {
	lines, err := ReadLinesFile(w.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.logger.Warn("read watched file", "path", w.path, "err", err)
		}
		return
	}
	for _, line := range lines {
		if w.seen[line] {
			continue
		}
		w.seen[line] = true
		w.logger.Debug("new watched line", "line", line)
		fn(line)
	}
}
