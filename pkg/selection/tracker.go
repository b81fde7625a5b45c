// Package selection records which calendar items the user has ticked, per
// period and category.
package selection

import (
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/logging"
	"tableflip.dev/gardencal/pkg/store"
)

// ErrNoLabel is returned when an object item without a label is toggled.
var ErrNoLabel = errors.New("selection: object item has no label")

// Record maps period to category to the selected items.
type Record map[string]map[entry.Category][]Item

// Count is the number of selected items across all periods.
func (r Record) Count() int {
	n := 0
	for _, cats := range r {
		for _, items := range cats {
			n += len(items)
		}
	}
	return n
}

// Tracker reads and writes the selection record in the store. The store is
// the source of truth; nothing is cached between calls.
type Tracker struct {
	mu    sync.Mutex
	store store.Store
	log   logging.Logger
}

func NewTracker(st store.Store, log logging.Logger) *Tracker {
	return &Tracker{store: st, log: logging.OrNoop(log)}
}

func (t *Tracker) load() Record {
	rec := Record{}
	raw, ok := t.store.Get(store.KeySelectedItems)
	if !ok {
		return rec
	}
	if !store.LoadJSON(t.store, store.KeySelectedItems, &rec) {
		if raw != "" {
			t.log.Warn("ignoring malformed selection record", "key", store.KeySelectedItems)
		}
		return Record{}
	}
	return rec
}

// Record returns the stored selections.
func (t *Tracker) Record() Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}

func indexOf(items []Item, it Item) int {
	for i, candidate := range items {
		if candidate.Same(it) {
			return i
		}
	}
	return -1
}

// IsSelected reports whether item is selected under period and category.
func (t *Tracker) IsSelected(period string, category entry.Category, item Item) bool {
	return indexOf(t.Record()[period][category], item) >= 0
}

// Selected returns the items selected under period and category.
func (t *Tracker) Selected(period string, category entry.Category) []Item {
	return t.Record()[period][category]
}

// Toggle selects or deselects item. Selecting a selected item and
// deselecting an absent one change nothing. Empty categories and periods are
// removed before the record is written back.
func (t *Tracker) Toggle(period string, category entry.Category, item Item, selected bool) error {
	return t.apply(period, category, []Item{item}, selected)
}

// ToggleAll applies Toggle to every item of a category.
func (t *Tracker) ToggleAll(period string, category entry.Category, items []Item, selected bool) error {
	return t.apply(period, category, items, selected)
}

// AllSelected reports whether every item in items is selected. It is false
// for an empty list.
func (t *Tracker) AllSelected(period string, category entry.Category, items []Item) bool {
	if len(items) == 0 {
		return false
	}
	have := t.Record()[period][category]
	for _, it := range items {
		if indexOf(have, it) < 0 {
			return false
		}
	}
	return true
}

func (t *Tracker) apply(period string, category entry.Category, items []Item, selected bool) error {
	for _, it := range items {
		if it.object && it.Label == "" {
			return ErrNoLabel
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.load()
	cats := rec[period]
	if cats == nil {
		cats = make(map[entry.Category][]Item)
		rec[period] = cats
	}
	list := cats[category]
	for _, it := range items {
		i := indexOf(list, it)
		switch {
		case selected && i < 0:
			list = append(list, clean(it))
		case !selected && i >= 0:
			list = append(list[:i:i], list[i+1:]...)
		}
	}
	cats[category] = list

	rec.compact()
	if err := store.SaveJSON(t.store, store.KeySelectedItems, rec); err != nil {
		return fmt.Errorf("selection: save: %w", err)
	}
	t.log.Debug("selection updated", "period", period, "category", category, "selected", selected, "items", len(items))
	return nil
}

// clean keeps only the label fields of an object item.
func clean(it Item) Item {
	if !it.object {
		return it
	}
	var alt map[string]string
	for k, v := range it.Alt {
		if v == "" {
			continue
		}
		if alt == nil {
			alt = make(map[string]string, len(it.Alt))
		}
		alt[k] = v
	}
	return Object(it.Label, alt)
}

func (r Record) compact() {
	for period, cats := range r {
		for c, items := range cats {
			if len(items) == 0 {
				delete(cats, c)
			}
		}
		if len(cats) == 0 {
			delete(r, period)
		}
	}
}
