package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/gardencal/pkg/entry"
)

// ImportMode selects how imported entries combine with stored ones.
type ImportMode int

const (
	// ImportMerge overwrites entries with matching ids and inserts the rest.
	ImportMerge ImportMode = iota
	// ImportReplace discards every stored entry first.
	ImportReplace
)

// ParseImportMode accepts "merge" and "replace".
func ParseImportMode(raw string) (ImportMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "merge":
		return ImportMerge, nil
	case "replace":
		return ImportReplace, nil
	}
	return ImportMerge, fmt.Errorf("app: unknown import mode %q", raw)
}

func (m ImportMode) String() string {
	if m == ImportReplace {
		return "replace"
	}
	return "merge"
}

// ImportResult counts what an import did.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Plants   int `json:"plants"`
	Tasks    int `json:"tasks"`
}

// Total is the number of imported entries.
func (r ImportResult) Total() int { return r.Plants + r.Tasks }

// Import reads a snapshot exported by Export (or by the browser calendar) and
// applies it. Every incoming entry is validated before anything is written.
func (s *Service) Import(ctx context.Context, data []byte, mode ImportMode) (ImportResult, error) {
	incoming, err := decodeImport(data)
	if err != nil {
		return ImportResult{}, err
	}

	var res ImportResult
	err = s.mutate(ctx, func(next *entry.Snapshot) ([]string, bool, error) {
		res = ImportResult{}
		var periods []string
		if mode == ImportReplace {
			*next = entry.Snapshot{Plants: []*entry.Entry{}, Tasks: []*entry.Entry{}}
		}
		for _, in := range incoming.All() {
			old := s.upsert(next, in, mode, &res)
			if old != nil {
				periods = append(periods, old.Periods...)
			}
			periods = append(periods, in.Periods...)
			if in.Kind == entry.KindTask {
				res.Tasks++
			} else {
				res.Plants++
			}
		}
		if mode == ImportReplace {
			return nil, true, nil
		}
		return entry.NormalizePeriods(periods), true, nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	s.log.Info("entries imported", "mode", mode, "plants", res.Plants, "tasks", res.Tasks,
		"inserted", res.Inserted, "updated", res.Updated)
	return res, nil
}

// upsert stores in, overwriting an entry of the same kind and id, and returns
// the entry it replaced.
func (s *Service) upsert(next *entry.Snapshot, in *entry.Entry, mode ImportMode, res *ImportResult) *entry.Entry {
	e := in.Clone()
	now := s.stamp()
	if e.ID != "" {
		if old, i := next.Find(e.Kind, e.ID); old != nil {
			if mode == ImportMerge {
				e.Created = old.Created
				e.Updated = now
			}
			if e.Created.IsZero() {
				e.Created = now
			}
			next.Of(e.Kind)[i] = e
			res.Updated++
			return old
		}
	}
	if e.ID == "" || next.HasID(e.ID) {
		e.ID = s.uniqueID(*next, e.Kind)
	}
	if e.Created.IsZero() {
		e.Created = now
	}
	if e.Updated.IsZero() {
		e.Updated = e.Created
	}
	if e.Kind == entry.KindTask {
		next.Tasks = append(next.Tasks, e)
	} else {
		next.Plants = append(next.Plants, e)
	}
	res.Inserted++
	return nil
}

func decodeImport(data []byte) (entry.Snapshot, error) {
	var shape struct {
		Plants json.RawMessage `json:"plants"`
		Tasks  json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return entry.Snapshot{}, &entry.ValidationError{Field: "snapshot", Reason: err.Error()}
	}
	if shape.Plants == nil && shape.Tasks == nil {
		return entry.Snapshot{}, &entry.ValidationError{Field: "snapshot", Reason: "no plants or tasks"}
	}
	snap, err := entry.DecodeSnapshot(data)
	if err != nil {
		return entry.Snapshot{}, &entry.ValidationError{Field: "snapshot", Reason: err.Error()}
	}
	seen := make(map[string]string)
	for _, kind := range []entry.Kind{entry.KindPlant, entry.KindTask} {
		for i, e := range snap.Of(kind) {
			field := fmt.Sprintf("%ss[%d]", kind, i)
			if e.ID != "" {
				if first, dup := seen[e.ID]; dup {
					return entry.Snapshot{}, &entry.ValidationError{
						Field:  field + ".id",
						Reason: fmt.Sprintf("duplicate id %q, already used by %s", e.ID, first),
					}
				}
				seen[e.ID] = field
			}
			e.Name = strings.TrimSpace(e.Name)
			e.Periods = entry.NormalizePeriods(e.Periods)
			if err := e.Validate(); err != nil {
				var ve *entry.ValidationError
				if errors.As(err, &ve) {
					return entry.Snapshot{}, &entry.ValidationError{
						Field:  field + "." + ve.Field,
						Reason: ve.Reason,
					}
				}
				return entry.Snapshot{}, err
			}
		}
	}
	return snap, nil
}
