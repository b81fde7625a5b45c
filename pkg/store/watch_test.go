package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDiskWatchEmitsKeyChanges(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("open disk store: %v", err)
	}
	s := WithNamespace(d, "gardening")
	// Create the namespace directory so the watcher subscribes to it up front.
	if err := s.Set(KeyLanguage, "en"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.(Watcher).Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := s.Set(KeyCustomEntries, `{"plants":[],"tasks":[]}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == "" || evt.Key == KeyCustomEntries {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestWatchUnsupportedBackend(t *testing.T) {
	s := WithNamespace(NewMemory(), "gardening")
	if _, err := s.(Watcher).Watch(context.Background()); err != ErrWatchUnsupported {
		t.Fatalf("expected ErrWatchUnsupported, got %v", err)
	}
}

func TestWatcherCoalescesWrites(t *testing.T) {
	base := t.TempDir()
	d, err := NewDisk(base)
	if err != nil {
		t.Fatalf("open disk store: %v", err)
	}
	w := &diskWatcher{disk: d, dirs: map[string]bool{}, pending: map[string]bool{}}
	file := filepath.Join(base, "gardening", KeyLanguage)

	for _, op := range []fsnotify.Op{fsnotify.Create, fsnotify.Write, fsnotify.Write} {
		if !w.handle(fsnotify.Event{Name: file, Op: op}) {
			t.Fatalf("%v not queued", op)
		}
	}
	if w.handle(fsnotify.Event{Name: file, Op: fsnotify.Chmod}) {
		t.Fatal("chmod should be ignored")
	}
	if w.handle(fsnotify.Event{Name: filepath.Join(filepath.Dir(base), "elsewhere"), Op: fsnotify.Write}) {
		t.Fatal("files outside the base path should be ignored")
	}

	events := make(chan Event, 8)
	w.flush(events)
	close(events)
	var got []string
	for ev := range events {
		got = append(got, ev.Key)
	}
	if want := "gardening." + KeyLanguage; len(got) != 1 || got[0] != want {
		t.Fatalf("events = %v, want [%s]", got, want)
	}
	if len(w.pending) != 0 {
		t.Fatalf("pending not reset: %v", w.pending)
	}
}
