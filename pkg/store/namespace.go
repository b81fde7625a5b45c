package store

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrWatchUnsupported is returned when the backend cannot report changes.
var ErrWatchUnsupported = errors.New("store: backend does not support watching")

// NamespaceSeparator joins a namespace and a key.
const NamespaceSeparator = "."

type namespaced struct {
	base   Store
	prefix string
}

// WithNamespace scopes every key of base under ns. An empty ns returns base.
func WithNamespace(base Store, ns string) Store {
	ns = strings.TrimSpace(ns)
	if ns == "" {
		return base
	}
	return &namespaced{base: base, prefix: ns + NamespaceSeparator}
}

func (n *namespaced) Get(key string) (string, bool) { return n.base.Get(n.prefix + key) }

func (n *namespaced) Set(key, value string) error { return n.base.Set(n.prefix+key, value) }

func (n *namespaced) Remove(key string) error { return n.base.Remove(n.prefix + key) }

// Keys returns the keys inside the namespace with the prefix stripped.
func (n *namespaced) Keys(ctx context.Context) []string {
	var out []string
	for _, k := range n.base.Keys(ctx) {
		if strings.HasPrefix(k, n.prefix) {
			out = append(out, strings.TrimPrefix(k, n.prefix))
		}
	}
	return out
}

// Close closes the base store when it holds resources.
func (n *namespaced) Close() error {
	if c, ok := n.base.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Watcher is implemented by stores that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Watch forwards the base store's events for keys inside the namespace.
func (n *namespaced) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := n.base.(Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	in, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan Event, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			switch {
			case ev.Key == "":
			case strings.HasPrefix(ev.Key, n.prefix):
				ev.Key = strings.TrimPrefix(ev.Key, n.prefix)
			default:
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
