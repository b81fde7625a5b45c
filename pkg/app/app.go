package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/logging"
	"tableflip.dev/gardencal/pkg/store"
)

// Service owns the custom entries and the calendar projection derived from
// them. Every mutation persists the new snapshot and rebuilds the affected
// periods before it returns, so readers never see a stale projection.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	catalog *calendar.Catalog
	log     logging.Logger
	now     func() time.Time
	newID   func(entry.Kind) string
	render  func(period string)
	active  string

	snap  entry.Snapshot
	index calendar.Index
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the default "<kind>-<uuid>" ids.
func WithIDGenerator(gen func(entry.Kind) string) Option {
	return func(s *Service) { s.newID = gen }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.log = logging.OrNoop(l) }
}

// WithRenderHook registers fn to run after every successful mutation with the
// active period. It runs outside the service lock and may read the projection.
func WithRenderHook(fn func(period string)) Option {
	return func(s *Service) { s.render = fn }
}

// WithActivePeriod sets the period passed to the render hook.
func WithActivePeriod(period string) Option {
	return func(s *Service) { s.active = period }
}

// New loads the stored snapshot and builds the full projection. A missing or
// unreadable snapshot starts empty.
func New(ctx context.Context, st store.Store, catalog *calendar.Catalog, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("app: no store configured")
	}
	if catalog == nil {
		catalog = calendar.DefaultCatalog()
	}
	s := &Service{
		store:   st,
		catalog: catalog,
		log:     logging.Noop(),
		now:     time.Now,
		newID:   defaultID,
	}
	if len(catalog.Periods) > 0 {
		s.active = catalog.Periods[0]
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.snap = s.load()
	s.index = calendar.NewIndex(catalog)
	s.index.Merge(calendar.Rebuild(s.index, calendar.AllPeriods(s.index, s.snap), s.snap))
	return s, nil
}

func defaultID(kind entry.Kind) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return string(kind) + "-" + id.String()
}

func (s *Service) load() entry.Snapshot {
	raw, ok := s.store.Get(store.KeyCustomEntries)
	if !ok || raw == "" {
		return entry.Snapshot{Plants: []*entry.Entry{}, Tasks: []*entry.Entry{}}
	}
	snap, err := entry.DecodeSnapshot([]byte(raw))
	if err != nil {
		s.log.Warn("ignoring malformed custom entries", "key", store.KeyCustomEntries, "err", err)
		return entry.Snapshot{Plants: []*entry.Entry{}, Tasks: []*entry.Entry{}}
	}
	return snap
}

func (s *Service) stamp() entry.Timestamp {
	return entry.Timestamp{Time: s.now().UTC()}
}

// uniqueID draws ids until one is unused by either kind.
func (s *Service) uniqueID(snap entry.Snapshot, kind entry.Kind) string {
	for {
		id := s.newID(kind)
		if id != "" && !snap.HasID(id) {
			return id
		}
	}
}

// mutate runs fn against a copy of the snapshot. When fn succeeds the copy is
// persisted, the periods it returns are rebuilt (all periods when it returns
// nil) and the render hook fires. changed=false skips persisting.
func (s *Service) mutate(ctx context.Context, fn func(next *entry.Snapshot) (periods []string, changed bool, err error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	next := s.snap.Clone()
	periods, changed, err := fn(&next)
	if err == nil && changed {
		err = s.commitLocked(next, periods)
	}
	s.mu.Unlock()
	if err != nil || !changed {
		return err
	}
	s.notify()
	return nil
}

func (s *Service) commitLocked(next entry.Snapshot, periods []string) error {
	if err := store.SaveJSON(s.store, store.KeyCustomEntries, next); err != nil {
		return fmt.Errorf("app: save custom entries: %w", err)
	}
	if periods == nil {
		periods = calendar.AllPeriods(s.index, next)
	}
	s.snap = next
	s.index.Merge(calendar.Rebuild(s.index, periods, next))
	s.log.Debug("projection rebuilt", "periods", periods, "entries", next.Len())
	return nil
}

func (s *Service) notify() {
	if s.render == nil {
		return
	}
	s.mu.Lock()
	period := s.active
	s.mu.Unlock()
	s.render(period)
}

// Add validates in and stores a new entry of kind.
func (s *Service) Add(ctx context.Context, kind entry.Kind, in entry.Input) (*entry.Entry, error) {
	e, err := in.Build(kind)
	if err != nil {
		return nil, err
	}
	err = s.mutate(ctx, func(next *entry.Snapshot) ([]string, bool, error) {
		e.ID = s.uniqueID(*next, kind)
		e.Created = s.stamp()
		e.Updated = e.Created
		if kind == entry.KindTask {
			next.Tasks = append(next.Tasks, e.Clone())
		} else {
			next.Plants = append(next.Plants, e.Clone())
		}
		return e.Periods, true, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("entry added", "id", e.ID, "kind", kind)
	return e, nil
}

func (s *Service) AddPlant(ctx context.Context, in entry.Input) (*entry.Entry, error) {
	return s.Add(ctx, entry.KindPlant, in)
}

func (s *Service) AddTask(ctx context.Context, in entry.Input) (*entry.Entry, error) {
	return s.Add(ctx, entry.KindTask, in)
}

// Update applies patch to the entry id. Both the old and the new periods are
// rebuilt so an entry moved out of a period disappears from it.
func (s *Service) Update(ctx context.Context, kind entry.Kind, id string, patch entry.Patch) (*entry.Entry, error) {
	var out *entry.Entry
	err := s.mutate(ctx, func(next *entry.Snapshot) ([]string, bool, error) {
		old, i := next.Find(kind, id)
		if old == nil {
			return nil, false, fmt.Errorf("app: %s %q: %w", kind, id, entry.ErrNotFound)
		}
		updated, err := patch.Apply(old)
		if err != nil {
			return nil, false, err
		}
		updated.ID = old.ID
		updated.Created = old.Created
		updated.Updated = s.stamp()
		next.Of(kind)[i] = updated
		out = updated.Clone()
		return union(old.Periods, updated.Periods), true, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("entry updated", "id", id, "kind", kind)
	return out, nil
}

func (s *Service) UpdatePlant(ctx context.Context, id string, patch entry.Patch) (*entry.Entry, error) {
	return s.Update(ctx, entry.KindPlant, id, patch)
}

func (s *Service) UpdateTask(ctx context.Context, id string, patch entry.Patch) (*entry.Entry, error) {
	return s.Update(ctx, entry.KindTask, id, patch)
}

// Delete removes the entry id and reports whether it existed.
func (s *Service) Delete(ctx context.Context, kind entry.Kind, id string) (bool, error) {
	var found bool
	err := s.mutate(ctx, func(next *entry.Snapshot) ([]string, bool, error) {
		old, i := next.Find(kind, id)
		if old == nil {
			return nil, false, nil
		}
		found = true
		list := next.Of(kind)
		list = append(list[:i:i], list[i+1:]...)
		if kind == entry.KindTask {
			next.Tasks = list
		} else {
			next.Plants = list
		}
		return append([]string{}, old.Periods...), true, nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.log.Info("entry deleted", "id", id, "kind", kind)
	}
	return found, nil
}

func (s *Service) DeletePlant(ctx context.Context, id string) (bool, error) {
	return s.Delete(ctx, entry.KindPlant, id)
}

func (s *Service) DeleteTask(ctx context.Context, id string) (bool, error) {
	return s.Delete(ctx, entry.KindTask, id)
}

// List returns a copy of every stored entry.
func (s *Service) List(ctx context.Context) entry.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Get returns a copy of the entry id.
func (s *Service) Get(ctx context.Context, kind entry.Kind, id string) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, _ := s.snap.Find(kind, id)
	if e == nil {
		return nil, fmt.Errorf("app: %s %q: %w", kind, id, entry.ErrNotFound)
	}
	return e.Clone(), nil
}

// Find looks id up among both kinds.
func (s *Service) Find(ctx context.Context, id string) (*entry.Entry, error) {
	for _, kind := range []entry.Kind{entry.KindPlant, entry.KindTask} {
		if e, err := s.Get(ctx, kind, id); err == nil {
			return e, nil
		}
	}
	return nil, fmt.Errorf("app: %q: %w", id, entry.ErrNotFound)
}

// Projection returns a copy of the full calendar projection.
func (s *Service) Projection() calendar.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Clone()
}

// Items returns a copy of one projection bucket.
func (s *Service) Items(period string, category entry.Category) []calendar.DisplayItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]calendar.DisplayItem(nil), s.index.Items(period, category)...)
}

// Periods lists the projected periods, catalog order first.
func (s *Service) Periods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Periods(s.catalog.Periods)
}

// SetActivePeriod changes the period handed to the render hook.
func (s *Service) SetActivePeriod(period string) {
	s.mu.Lock()
	s.active = period
	s.mu.Unlock()
}

// Reload rereads the stored snapshot and rebuilds the whole projection. It is
// used when another process changed the store.
func (s *Service) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	next := s.load()
	idx := calendar.NewIndex(s.catalog)
	for name := range s.index {
		if _, ok := idx[name]; !ok {
			idx[name] = calendar.Period{}
		}
	}
	idx.Merge(calendar.Rebuild(idx, calendar.AllPeriods(idx, next), next))
	s.snap = next
	s.index = idx
	s.mu.Unlock()
	s.notify()
	return nil
}

// Watch streams changes to the underlying store.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	w, ok := s.store.(store.Watcher)
	if !ok {
		return nil, store.ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

// Export returns the snapshot as indented JSON.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	snap := s.List(ctx)
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("app: export: %w", err)
	}
	return b, nil
}

func union(a, b []string) []string {
	return entry.NormalizePeriods(append(append([]string{}, a...), b...))
}
