// Package watch reports filesystem changes under a file or directory tree.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// ErrTargetNotFound is returned when the watch target is neither a file nor
// a directory.
var ErrTargetNotFound = errors.New("watch target not found")

// Event is one observed change.
type Event struct {
	Path string
	Op   string // e.g. "CREATE", "WRITE|CHMOD"
}

// Handlers receives watch notifications. Nil fields are ignored.
type Handlers struct {
	OnReady func()      // called once the watch is established
	OnEvent func(Event) // called for every change
	OnError func(error) // called for watcher errors; the watch continues
}

func (h Handlers) ready() {
	if h.OnReady != nil {
		h.OnReady()
	}
}

func (h Handlers) event(e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

func (h Handlers) fail(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

// Notifier watches paths with fsnotify.
type Notifier struct {
	logger *slog.Logger
}

// New creates a Notifier. A nil logger discards log output.
func New(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{logger: logger}
}

// Watch blocks, reporting every change to target until ctx is done.
// Directories are watched recursively, including directories created while
// watching.
func (n *Notifier) Watch(ctx context.Context, target string, h Handlers) error {
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrTargetNotFound
		}
		return err
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return ErrTargetNotFound
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer watcher.Close()

	if info.IsDir() {
		if err := n.addTree(watcher, target); err != nil {
			return err
		}
	} else if err := watcher.Add(target); err != nil {
		return errors.Wrapf(err, "failed to watch %s", target)
	}

	n.logger.Debug("watching", "target", target)
	h.ready()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := n.addTree(watcher, event.Name); err != nil {
						h.fail(err)
					}
				}
			}
			h.event(Event{Path: event.Name, Op: event.Op.String()})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.fail(err)
		}
	}
}

// addTree adds root and every directory beneath it.
func (n *Notifier) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			n.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}
