// Package climate maps coordinates to Koeppen-Geiger climate codes using a
// quarter-degree lookup grid, with a persistent user override.
package climate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"tableflip.dev/gardencal/pkg/logging"
	"tableflip.dev/gardencal/pkg/store"
)

var (
	// ErrNotLoaded is returned by ResolveErr before the grid is available.
	ErrNotLoaded = errors.New("climate: grid not loaded")
	// ErrEmptyOverride is returned when a blank override code is set.
	ErrEmptyOverride = errors.New("climate: override code is empty")
)

// OverrideInfo is the match info reported for an override.
const OverrideInfo = "(override)"

// LocationSource provides the last coordinates the user looked up.
type LocationSource interface {
	LastCoordinates() (lat, lon float64, ok bool)
}

// Resolver resolves coordinates against a lazily loaded grid. The grid is
// swapped in atomically, so Resolve never blocks on a load in progress.
type Resolver struct {
	store  store.Store
	src    string
	client *http.Client
	loc    LocationSource
	log    logging.Logger

	grid  atomic.Pointer[Grid]
	group singleflight.Group
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient sets the client used for URL grid sources.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) { r.client = c }
}

// WithLocationSource sets where ClearOverride finds the last coordinates.
func WithLocationSource(l LocationSource) ResolverOption {
	return func(r *Resolver) { r.loc = l }
}

func WithLogger(l logging.Logger) ResolverOption {
	return func(r *Resolver) { r.log = logging.OrNoop(l) }
}

// WithGrid installs an already built grid.
func WithGrid(g *Grid) ResolverOption {
	return func(r *Resolver) {
		if g != nil {
			r.grid.Store(g)
		}
	}
}

// NewResolver returns a resolver reading the override from st and the grid
// from src (a path or URL). Nothing is loaded until Load or Start.
func NewResolver(st store.Store, src string, opts ...ResolverOption) *Resolver {
	r := &Resolver{store: st, src: src, log: logging.Noop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Loaded reports whether the grid is available.
func (r *Resolver) Loaded() bool { return r.grid.Load() != nil }

// Load fetches and parses the grid. Concurrent calls share one fetch. After a
// failure the resolver stays unloaded until Load is called again.
func (r *Resolver) Load(ctx context.Context) (*Grid, error) {
	if g := r.grid.Load(); g != nil {
		return g, nil
	}
	v, err, _ := r.group.Do("grid", func() (any, error) {
		if g := r.grid.Load(); g != nil {
			return g, nil
		}
		rc, err := OpenGridSource(ctx, r.src, r.client)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		g, err := ParseGrid(rc)
		if err != nil {
			return nil, err
		}
		r.grid.Store(g)
		r.log.Info("climate grid loaded", "source", r.src, "cells", g.Len())
		return g, nil
	})
	if err != nil {
		r.log.Warn("climate grid load failed", "source", r.src, "err", err)
		return nil, err
	}
	return v.(*Grid), nil
}

// Start loads the grid in the background. The channel receives the load
// result and is then closed.
func (r *Resolver) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		_, err := r.Load(ctx)
		done <- err
	}()
	return done
}

// Resolve returns the climate code for lat/lon. A stored override wins and
// does not need the grid. Without an override, ok is false until the grid
// has loaded.
func (r *Resolver) Resolve(lat, lon float64) (Match, bool) {
	if code, ok := r.Override(); ok {
		return Match{Code: code, Info: OverrideInfo, Override: true}, true
	}
	g := r.grid.Load()
	if g == nil {
		r.log.Debug("climate grid not loaded yet", "lat", lat, "lon", lon)
		return Match{}, false
	}
	return g.Resolve(lat, lon), true
}

// ResolveErr is Resolve with ErrNotLoaded in place of ok=false.
func (r *Resolver) ResolveErr(lat, lon float64) (Match, error) {
	m, ok := r.Resolve(lat, lon)
	if !ok {
		return Match{}, ErrNotLoaded
	}
	return m, nil
}

// Override returns the stored override code.
func (r *Resolver) Override() (string, bool) {
	raw, ok := r.store.Get(store.KeyClimateZoneOverride)
	code := strings.TrimSpace(raw)
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

// SetOverride stores code as the override.
func (r *Resolver) SetOverride(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrEmptyOverride
	}
	if err := r.store.Set(store.KeyClimateZoneOverride, code); err != nil {
		return fmt.Errorf("climate: save override: %w", err)
	}
	return nil
}

// ClearOverride removes the override and resolves the last known location
// again. ok is false when there is no location or the grid is not loaded.
func (r *Resolver) ClearOverride() (Match, bool, error) {
	if err := r.store.Remove(store.KeyClimateZoneOverride); err != nil {
		return Match{}, false, fmt.Errorf("climate: clear override: %w", err)
	}
	if r.loc == nil {
		return Match{}, false, nil
	}
	lat, lon, ok := r.loc.LastCoordinates()
	if !ok {
		return Match{}, false, nil
	}
	m, ok := r.Resolve(lat, lon)
	return m, ok, nil
}
