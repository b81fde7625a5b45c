package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/peterbourgon/diskv/v3"
)

// WatchDelay is how long Watch lets a burst of writes settle before it
// reports the keys involved.
const WatchDelay = 100 * time.Millisecond

// Event is emitted by Watch when a stored value changes on disk. Key is the
// full (namespaced) key, or empty when the change could not be attributed and
// callers should reload everything.
type Event struct {
	Key string
}

// diskWatcher follows every directory below the diskv base path and turns
// file events into key events.
type diskWatcher struct {
	disk    *Disk
	fsw     *fsnotify.Watcher
	dirs    map[string]bool
	pending map[string]bool
}

// Watch streams change events for the store until ctx is cancelled. The
// channel is closed once ctx is done. Events are dropped while the consumer
// is busy; the next one triggers the same reload.
func (p *Disk) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	w := &diskWatcher{
		disk:    p,
		fsw:     fsw,
		dirs:    make(map[string]bool),
		pending: make(map[string]bool),
	}
	if err := w.addTree(p.basePath); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	events := make(chan Event, 64)
	go w.run(ctx, events)
	return events, nil
}

// addTree subscribes to root and every directory below it.
func (w *diskWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		path = filepath.Clean(path)
		if !d.IsDir() || w.dirs[path] {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("store: watch %s: %w", path, err)
		}
		w.dirs[path] = true
		return nil
	})
}

func (w *diskWatcher) run(ctx context.Context, events chan<- Event) {
	defer close(events)
	defer w.fsw.Close()

	timer := time.NewTimer(WatchDelay)
	timer.Stop()
	defer timer.Stop()
	armed := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			armed = false
			w.flush(events)
			continue
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "store: watcher: %v\n", err)
			w.pending[""] = true
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.handle(evt) {
				continue
			}
		}
		if !armed {
			timer.Reset(WatchDelay)
			armed = true
		}
	}
}

// handle records the key behind evt and reports whether it queued one. New
// directories are subscribed to instead.
func (w *diskWatcher) handle(evt fsnotify.Event) bool {
	if evt.Op == fsnotify.Chmod {
		return false
	}
	if evt.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			if err := w.addTree(evt.Name); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			return false
		}
	}
	key := w.disk.keyForPath(evt.Name)
	if key == "" {
		return false
	}
	w.pending[key] = true
	return true
}

// flush sends one event per pending key, in key order.
func (w *diskWatcher) flush(events chan<- Event) {
	keys := make([]string, 0, len(w.pending))
	for k := range w.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	w.pending = make(map[string]bool)

	for _, k := range keys {
		select {
		case events <- Event{Key: k}:
		default:
		}
	}
}

// keyForPath maps a file below the base path back to its store key.
func (p *Disk) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	return pathToKeyTransform(&diskv.PathKey{Path: parts[:len(parts)-1], FileName: parts[len(parts)-1]})
}
