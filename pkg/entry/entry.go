// Package entry defines user-authored custom plants and tasks.
package entry

import (
	"fmt"
	"strings"
)

// Kind distinguishes custom plants from custom tasks.
type Kind string

const (
	KindPlant Kind = "plant"
	KindTask  Kind = "task"
)

// ParseKind accepts "plant(s)" and "task(s)".
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "plant", "plants":
		return KindPlant, nil
	case "task", "tasks":
		return KindTask, nil
	}
	return "", fmt.Errorf("entry: unknown kind %q", raw)
}

// Entry is a custom plant or task. Periods is serialized as "months" so files
// exported by the browser calendar import unchanged.
type Entry struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category,omitempty"`
	Periods     []string  `json:"months"`
	Created     Timestamp `json:"created"`
	Updated     Timestamp `json:"updated"`
}

// EffectiveCategory is the projection bucket for the entry: custom_tasks for
// tasks, the stored category for plants, custom_plants when that is unset or
// unknown.
func (e *Entry) EffectiveCategory() Category {
	if e.Kind == KindTask {
		return CustomTasks
	}
	if e.Category.IsPlantCategory() {
		return e.Category
	}
	return CustomPlants
}

// InPeriod reports whether the entry applies to period.
func (e *Entry) InPeriod(period string) bool {
	for _, p := range e.Periods {
		if p == period {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Periods = append([]string(nil), e.Periods...)
	return &cp
}

// Validate checks the invariants every persisted entry must hold.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return invalid("name", "must not be empty")
	}
	if len(e.Periods) == 0 {
		return invalid("periods", "at least one period is required")
	}
	return nil
}

// Input is the caller-supplied part of a new entry.
type Input struct {
	Name        string
	Description string
	Category    string
	Periods     []string
}

// Build validates in and returns an entry of the given kind without id or
// timestamps.
func (in Input) Build(kind Kind) (*Entry, error) {
	e := &Entry{
		Kind:        kind,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Periods:     NormalizePeriods(in.Periods),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if kind == KindPlant {
		c, err := ParseCategory(in.Category)
		if err != nil {
			return nil, invalid("category", err.Error())
		}
		e.Category = c
	} else {
		e.Category = Category(strings.TrimSpace(in.Category))
	}
	return e, nil
}

// Patch holds optional replacements for an existing entry. Nil fields are
// left unchanged.
type Patch struct {
	Name        *string
	Description *string
	Category    *string
	Periods     []string
}

// Apply returns a copy of e with the patch merged over it. Identity and
// timestamps are left for the caller to manage.
func (p Patch) Apply(e *Entry) (*Entry, error) {
	out := e.Clone()
	if p.Name != nil {
		out.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		out.Description = strings.TrimSpace(*p.Description)
	}
	if p.Periods != nil {
		out.Periods = NormalizePeriods(p.Periods)
	}
	if p.Category != nil {
		if out.Kind == KindPlant {
			c, err := ParseCategory(*p.Category)
			if err != nil {
				return nil, invalid("category", err.Error())
			}
			out.Category = c
		} else {
			out.Category = Category(strings.TrimSpace(*p.Category))
		}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizePeriods trims, drops blanks and removes duplicates, keeping order.
func NormalizePeriods(periods []string) []string {
	seen := make(map[string]struct{}, len(periods))
	out := make([]string, 0, len(periods))
	for _, p := range periods {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
