// Package journal keeps the garden journal: dated notes about planting, care
// and harvests, stored next to the calendar data under one key.
package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/gardencal/pkg/entry"
)

// DateLayout is the layout of Entry.Date.
const DateLayout = "2006-01-02"

// Type is the kind of a journal entry.
type Type string

const (
	Planting    Type = "planting"
	Care        Type = "care"
	Harvest     Type = "harvest"
	Observation Type = "observation"
	Maintenance Type = "maintenance"
)

var types = map[Type]struct{ icon, title string }{
	Planting:    {"🌱", "Planting"},
	Care:        {"🌿", "Garden Care"},
	Harvest:     {"🥕", "Harvest"},
	Observation: {"👁️", "Observation"},
	Maintenance: {"🧰", "Maintenance"},
}

// Types lists every entry type in menu order.
func Types() []Type {
	return []Type{Planting, Care, Harvest, Observation, Maintenance}
}

// ParseType accepts a type name in any case; empty means Observation.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return Observation, nil
	}
	if _, ok := types[t]; !ok {
		return "", &entry.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown journal type %q", raw)}
	}
	return t, nil
}

func (t Type) Icon() string {
	if v, ok := types[t]; ok {
		return v.icon
	}
	return "📝"
}

func (t Type) Title() string {
	if v, ok := types[t]; ok {
		return v.title
	}
	return string(t)
}

// Weather is the conditions recorded with an entry.
type Weather struct {
	Temperature   float64 `json:"temperature"`
	WeatherCode   int     `json:"weatherCode"`
	Precipitation float64 `json:"precipitation"`
}

// Entry is one journal record. Timestamp is in Unix milliseconds and changes
// on every write.
type Entry struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"`
	Type      Type           `json:"type"`
	Plants    []string       `json:"plants"`
	Notes     string         `json:"notes"`
	Location  string         `json:"location"`
	Metrics   map[string]any `json:"metrics"`
	Images    []string       `json:"images,omitempty"`
	Weather   *Weather       `json:"weather"`
	Timestamp int64          `json:"timestamp"`
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Plants = append([]string{}, e.Plants...)
	if e.Images != nil {
		c.Images = append([]string{}, e.Images...)
	}
	if e.Metrics != nil {
		c.Metrics = make(map[string]any, len(e.Metrics))
		for k, v := range e.Metrics {
			c.Metrics[k] = v
		}
	}
	if e.Weather != nil {
		w := *e.Weather
		c.Weather = &w
	}
	return &c
}

// Time parses Date; the zero time when it does not parse.
func (e *Entry) Time() time.Time {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Metric returns a metric as text, "" when unset.
func (e *Entry) Metric(name string) string {
	v, ok := e.Metrics[name]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// normalize fills defaults and checks the fields a stored entry must have.
func (e *Entry) normalize() error {
	t, err := ParseType(string(e.Type))
	if err != nil {
		return err
	}
	e.Type = t
	e.Date = strings.TrimSpace(e.Date)
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return &entry.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", e.Date)}
	}
	e.Plants = cleanPlants(e.Plants)
	if e.Metrics == nil {
		e.Metrics = map[string]any{}
	}
	return nil
}

func cleanPlants(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Input is a new journal entry. Empty Date means today, empty Type means
// Observation.
type Input struct {
	Date     string
	Type     string
	Plants   []string
	Notes    string
	Location string
	Metrics  map[string]any
	Weather  *Weather
}

// Patch changes the fields that are set.
type Patch struct {
	Date     *string
	Type     *string
	Plants   []string
	Notes    *string
	Location *string
	Metrics  map[string]any
	Weather  *Weather
}

// Apply returns a patched copy of e.
func (p Patch) Apply(e *Entry) *Entry {
	out := e.Clone()
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Type != nil {
		out.Type = Type(*p.Type)
	}
	if p.Plants != nil {
		out.Plants = append([]string{}, p.Plants...)
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if len(p.Metrics) > 0 {
		if out.Metrics == nil {
			out.Metrics = map[string]any{}
		}
		for k, v := range p.Metrics {
			out.Metrics[k] = v
		}
	}
	if p.Weather != nil {
		w := *p.Weather
		out.Weather = &w
	}
	return out
}

// Filter selects entries for List. Zero fields match everything; From and To
// are inclusive dates.
type Filter struct {
	Type   Type
	Plant  string
	Search string
	From   string
	To     string
}

func (f Filter) match(e *Entry) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	if f.Plant != "" {
		found := false
		for _, p := range e.Plants {
			if strings.EqualFold(p, strings.TrimSpace(f.Plant)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		text := strings.ToLower(e.Notes + "\n" + e.Location + "\n" + strings.Join(e.Plants, "\n"))
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

// sortNewestFirst orders by date, then by timestamp, newest first.
func sortNewestFirst(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Timestamp > entries[j].Timestamp
	})
}
