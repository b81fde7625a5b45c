package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"

	"tableflip.dev/gardencal/pkg/entry"
)

// BaseLanguage is the catalog language used for item labels.
const BaseLanguage = "en"

// Catalog is the built-in part of the calendar: the ordered periods and the
// fixed items of each.
type Catalog struct {
	Periods []string
	Items   Index
}

// NewIndex returns a fresh projection seeded with the catalog. Every period
// starts with empty custom buckets.
func NewIndex(c *Catalog) Index {
	idx := c.Items.Clone()
	for _, name := range c.Periods {
		p, ok := idx[name]
		if !ok {
			p = make(Period)
			idx[name] = p
		}
		for _, cat := range []entry.Category{entry.CustomPlants, entry.CustomTasks} {
			if p[cat] == nil {
				p[cat] = []DisplayItem{}
			}
		}
	}
	return idx
}

var periodTitles = map[string]string{
	"april":      "April",
	"may":        "May",
	"early_june": "Early June",
}

// PeriodTitle is the display name of a period.
func PeriodTitle(name string) string {
	if t, ok := periodTitles[name]; ok {
		return t
	}
	t := strings.ReplaceAll(name, "_", " ")
	if t == "" {
		return t
	}
	return strings.ToUpper(t[:1]) + t[1:]
}

type catalogItem map[string]string

func (ci catalogItem) item() (DisplayItem, error) {
	label := strings.TrimSpace(ci[BaseLanguage])
	if label == "" {
		return DisplayItem{}, fmt.Errorf("catalog item without %q label", BaseLanguage)
	}
	it := DisplayItem{Label: label, Description: ci["description"]}
	for lang, text := range ci {
		if lang == BaseLanguage || lang == "description" || lang == "type" {
			continue
		}
		if it.Alt == nil {
			it.Alt = make(map[string]string)
		}
		it.Alt[lang] = text
	}
	return it, nil
}

// LoadCatalog reads a catalog of the form
// {"period": {"category": [{"en": "carrot", "et": "porgand"}]}}.
// Periods keep the order they appear in. Custom buckets in the input are
// ignored.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	c := &Catalog{Items: make(Index)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("calendar: read catalog: %w", err)
		}
		name, _ := tok.(string)
		var raw map[entry.Category][]catalogItem
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("calendar: period %q: %w", name, err)
		}
		if _, dup := c.Items[name]; dup {
			return nil, fmt.Errorf("calendar: period %q listed twice", name)
		}
		p := make(Period)
		for cat, items := range raw {
			if cat == entry.CustomPlants || cat == entry.CustomTasks {
				continue
			}
			list := make([]DisplayItem, 0, len(items))
			for i, ci := range items {
				it, err := ci.item()
				if err != nil {
					return nil, fmt.Errorf("calendar: %s/%s[%d]: %w", name, cat, i, err)
				}
				list = append(list, it)
			}
			p[cat] = list
		}
		c.Periods = append(c.Periods, name)
		c.Items[name] = p
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if len(c.Periods) == 0 {
		return nil, errors.New("calendar: catalog has no periods")
	}
	return c, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("calendar: read catalog: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("calendar: read catalog: expected %q, got %v", want, tok)
	}
	return nil
}

// OpenCatalog loads the catalog at path, or the default catalog when path is
// empty.
func OpenCatalog(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog(), nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("calendar: open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}
