// Package calendar holds the display projection: for every period and
// category, the ordered items the UI lists. Catalog items are fixed; custom
// items are derived from the entry snapshot by Rebuild.
package calendar

import (
	"sort"

	"tableflip.dev/gardencal/pkg/entry"
)

// DisplayItem is one row of the projection. Catalog items have Custom false
// and no CustomID; Alt holds their labels in other languages.
type DisplayItem struct {
	Label       string            `json:"label"`
	Alt         map[string]string `json:"alt,omitempty"`
	Description string            `json:"description,omitempty"`
	Custom      bool              `json:"isCustom"`
	CustomID    string            `json:"customId,omitempty"`
}

// Text is the label in lang, falling back to Label.
func (it DisplayItem) Text(lang string) string {
	if t, ok := it.Alt[lang]; ok && t != "" {
		return t
	}
	return it.Label
}

// Period maps a category to its items.
type Period map[entry.Category][]DisplayItem

// Index maps a period name to its categories.
type Index map[string]Period

// Clone returns a deep copy of the index.
func (idx Index) Clone() Index {
	out := make(Index, len(idx))
	for name, p := range idx {
		out[name] = p.clone()
	}
	return out
}

func (p Period) clone() Period {
	out := make(Period, len(p))
	for c, items := range p {
		out[c] = append([]DisplayItem{}, items...)
	}
	return out
}

// Merge replaces every period present in partial.
func (idx Index) Merge(partial Index) {
	for name, p := range partial {
		idx[name] = p.clone()
	}
}

// Items returns the items of one bucket, nil when absent.
func (idx Index) Items(period string, category entry.Category) []DisplayItem {
	p, ok := idx[period]
	if !ok {
		return nil
	}
	return p[category]
}

// Categories lists the categories of period in display order; categories
// outside entry.DisplayOrder follow alphabetically.
func (idx Index) Categories(period string) []entry.Category {
	p := idx[period]
	out := make([]entry.Category, 0, len(p))
	known := make(map[entry.Category]bool)
	for _, c := range entry.DisplayOrder() {
		known[c] = true
		if _, ok := p[c]; ok {
			out = append(out, c)
		}
	}
	var extra []entry.Category
	for c := range p {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Periods lists the periods of the index, those named in order first and the
// rest alphabetically.
func (idx Index) Periods(order []string) []string {
	out := make([]string, 0, len(idx))
	seen := make(map[string]bool, len(idx))
	for _, name := range order {
		if _, ok := idx[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range idx {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
