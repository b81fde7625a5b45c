package selection

import (
	"bytes"
	"encoding/json"
	"sort"

	"tableflip.dev/gardencal/pkg/calendar"
)

// Item is a selection target. Object items carry a canonical label plus
// labels in other languages and are matched by the canonical label alone.
// Primitive items are matched by value. An object never matches a primitive.
type Item struct {
	Label  string
	Alt    map[string]string
	Value  string
	object bool
}

// Object returns an object item.
func Object(label string, alt map[string]string) Item {
	return Item{Label: label, Alt: alt, object: true}
}

// Value returns a primitive item.
func Value(v string) Item {
	return Item{Value: v}
}

// FromDisplay turns a projection row into the item the calendar selects.
func FromDisplay(d calendar.DisplayItem) Item {
	return Object(d.Label, d.Alt)
}

func (it Item) IsObject() bool { return it.object }

// Same reports whether it and other are the same selection target.
func (it Item) Same(other Item) bool {
	if it.object != other.object {
		return false
	}
	if it.object {
		return it.Label != "" && it.Label == other.Label
	}
	return it.Value == other.Value
}

func (it Item) String() string {
	if it.object {
		return it.Label
	}
	return it.Value
}

// MarshalJSON writes objects as {"type":"plant","en":..,"<lang>":..} and
// primitives as bare strings.
func (it Item) MarshalJSON() ([]byte, error) {
	if !it.object {
		return json.Marshal(it.Value)
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":"plant"`)
	if it.Label != "" {
		if err := writeField(&buf, calendar.BaseLanguage, it.Label); err != nil {
			return nil, err
		}
	}
	langs := make([]string, 0, len(it.Alt))
	for lang := range it.Alt {
		if lang != calendar.BaseLanguage && lang != "type" {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if err := writeField(&buf, lang, it.Alt[lang]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.WriteByte(',')
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func (it *Item) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var fields map[string]any
		if err := json.Unmarshal(b, &fields); err != nil {
			return err
		}
		*it = Item{object: true}
		for k, v := range fields {
			s, ok := v.(string)
			if !ok || k == "type" {
				continue
			}
			if k == calendar.BaseLanguage {
				it.Label = s
				continue
			}
			if it.Alt == nil {
				it.Alt = make(map[string]string)
			}
			it.Alt[k] = s
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*it = Item{Value: s}
		return nil
	}
	// Numbers and other scalars are kept by their literal text.
	*it = Item{Value: string(b)}
	return nil
}
