package calendar

import (
	"strings"

	"tableflip.dev/gardencal/pkg/entry"
)

// Matches reports whether term occurs, ignoring case, in the item's label in
// lang or in any of its other labels. An empty term matches everything.
func (it DisplayItem) Matches(term, lang string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Text(lang)), term) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Label), term) {
		return true
	}
	for _, alt := range it.Alt {
		if strings.Contains(strings.ToLower(alt), term) {
			return true
		}
	}
	return false
}

// Filter returns a copy of the index holding only the items that match term.
// Catalog categories left without items are dropped; the custom buckets stay
// so they can still be shown empty. A blank term returns a full copy.
func (idx Index) Filter(term, lang string) Index {
	if strings.TrimSpace(term) == "" {
		return idx.Clone()
	}
	out := make(Index, len(idx))
	for name, p := range idx {
		fp := make(Period, len(p))
		for c, items := range p {
			kept := make([]DisplayItem, 0, len(items))
			for _, it := range items {
				if it.Matches(term, lang) {
					kept = append(kept, it)
				}
			}
			if len(kept) == 0 && c != entry.CustomPlants && c != entry.CustomTasks {
				continue
			}
			fp[c] = kept
		}
		out[name] = fp
	}
	return out
}
