package devices

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/observability"
)

// WatchSource reports file system changes under a set of paths. Each watched
// path is its own device; the message is the operation and the file name,
// e.g. "WRITE notes.txt".
type WatchSource struct {
	paths  []string
	logger *observability.Logger
}

// NewWatchSource creates a source watching paths. Directories are watched
// non-recursively.
func NewWatchSource(logger *observability.Logger, paths ...string) *WatchSource {
	if logger == nil {
		logger = observability.Discard()
	}
	clean := make([]string, len(paths))
	for i, p := range paths {
		clean[i] = filepath.Clean(p)
	}
	return &WatchSource{paths: clean, logger: logger.WithDevice("watch", "watch")}
}

// Kind returns "watch".
func (s *WatchSource) Kind() string { return "watch" }

// Run watches until ctx is done.
func (s *WatchSource) Run(ctx context.Context, sink Sink) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDevice, "create file watcher")
	}
	defer w.Close()

	for _, p := range s.paths {
		if err := w.Add(p); err != nil {
			return errors.Wrap(err, errors.ErrCodeDevice, "watch path").
				WithContext("path", p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			root := s.rootOf(ev.Name)
			msg := ev.Op.String() + " " + filepath.Base(ev.Name)
			emit(sink, s.logger, ID("watch", root), []byte(msg))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("file watcher error", "error", err)
		}
	}
}

// rootOf returns the watched path name belongs to.
func (s *WatchSource) rootOf(name string) string {
	name = filepath.Clean(name)
	for _, p := range s.paths {
		if name == p || strings.HasPrefix(name, p+string(filepath.Separator)) {
			return p
		}
	}
	return filepath.Dir(name)
}
