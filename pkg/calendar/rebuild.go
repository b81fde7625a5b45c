package calendar

import (
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/gardencal/pkg/entry"
)

// Rebuild derives the given periods from base and snap without modifying
// either. For each period every custom item is dropped from every category,
// the custom_plants and custom_tasks buckets are reset, and each entry of snap
// that applies to the period is inserted under its effective category:
// plants first, then tasks, each in snapshot order. Catalog items keep their
// position. Rebuilding twice from the same inputs yields the same index.
func Rebuild(base Index, periods []string, snap entry.Snapshot) Index {
	out := make(Index, len(periods))
	for _, name := range periods {
		if _, done := out[name]; done {
			continue
		}
		p := make(Period)
		for c, items := range base[name] {
			kept := make([]DisplayItem, 0, len(items))
			for _, it := range items {
				if !it.Custom {
					kept = append(kept, it)
				}
			}
			if len(kept) > 0 {
				p[c] = kept
			}
		}
		p[entry.CustomPlants] = withoutCustom(p[entry.CustomPlants])
		p[entry.CustomTasks] = withoutCustom(p[entry.CustomTasks])

		for _, e := range snap.All() {
			if !e.InPeriod(name) {
				continue
			}
			c := e.EffectiveCategory()
			p[c] = append(p[c], DisplayItem{
				Label:       e.Name,
				Description: e.Description,
				Custom:      true,
				CustomID:    e.ID,
			})
		}
		out[name] = p
	}
	return out
}

func withoutCustom(items []DisplayItem) []DisplayItem {
	out := make([]DisplayItem, 0, len(items))
	for _, it := range items {
		if !it.Custom {
			out = append(out, it)
		}
	}
	return out
}

// AllPeriods is every period known to base or referenced by an entry, sorted.
func AllPeriods(base Index, snap entry.Snapshot) []string {
	seen := make(map[string]struct{}, len(base))
	for name := range base {
		seen[name] = struct{}{}
	}
	for _, e := range snap.All() {
		for _, p := range e.Periods {
			seen[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Check verifies that the custom items of idx mirror snap exactly: every
// custom item belongs to a live entry filed under that period and category,
// and every entry appears once in each of its periods.
func Check(idx Index, snap entry.Snapshot) error {
	type slot struct {
		id, period string
	}
	byID := make(map[string]*entry.Entry, snap.Len())
	for _, e := range snap.All() {
		byID[e.ID] = e
	}

	var errs []error
	seen := make(map[slot]int)
	for period, p := range idx {
		for c, items := range p {
			for _, it := range items {
				if !it.Custom {
					continue
				}
				e, ok := byID[it.CustomID]
				switch {
				case !ok:
					errs = append(errs, fmt.Errorf("calendar: orphan item %q (%s) in %s/%s", it.Label, it.CustomID, period, c))
					continue
				case !e.InPeriod(period):
					errs = append(errs, fmt.Errorf("calendar: %s projected into %s but not scheduled there", e.ID, period))
				case e.EffectiveCategory() != c:
					errs = append(errs, fmt.Errorf("calendar: %s projected under %s, want %s", e.ID, c, e.EffectiveCategory()))
				}
				seen[slot{it.CustomID, period}]++
			}
		}
	}
	for _, e := range snap.All() {
		for _, period := range e.Periods {
			switch n := seen[slot{e.ID, period}]; {
			case n == 0:
				errs = append(errs, fmt.Errorf("calendar: %s missing from %s", e.ID, period))
			case n > 1:
				errs = append(errs, fmt.Errorf("calendar: %s duplicated %d times in %s", e.ID, n, period))
			}
		}
	}
	return errors.Join(errs...)
}
