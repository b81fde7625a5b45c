package entry

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the persisted and exported form of all custom entries.
type Snapshot struct {
	Plants []*Entry `json:"plants"`
	Tasks  []*Entry `json:"tasks"`
}

// DecodeSnapshot parses data and stamps each entry with its kind. Missing
// lists decode as empty.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("entry: decode snapshot: %w", err)
	}
	s.Plants = compact(s.Plants, KindPlant)
	s.Tasks = compact(s.Tasks, KindTask)
	return s, nil
}

func compact(in []*Entry, kind Kind) []*Entry {
	out := make([]*Entry, 0, len(in))
	for _, e := range in {
		if e == nil {
			continue
		}
		e.Kind = kind
		out = append(out, e)
	}
	return out
}

// Len is the total number of entries.
func (s Snapshot) Len() int {
	return len(s.Plants) + len(s.Tasks)
}

// All returns plants followed by tasks.
func (s Snapshot) All() []*Entry {
	out := make([]*Entry, 0, s.Len())
	out = append(out, s.Plants...)
	return append(out, s.Tasks...)
}

// Of returns the list holding kind.
func (s Snapshot) Of(kind Kind) []*Entry {
	if kind == KindTask {
		return s.Tasks
	}
	return s.Plants
}

// Find returns the entry with id among entries of kind.
func (s Snapshot) Find(kind Kind, id string) (*Entry, int) {
	for i, e := range s.Of(kind) {
		if e.ID == id {
			return e, i
		}
	}
	return nil, -1
}

// HasID reports whether any entry of either kind uses id.
func (s Snapshot) HasID(id string) bool {
	for _, e := range s.All() {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Plants: make([]*Entry, 0, len(s.Plants)),
		Tasks:  make([]*Entry, 0, len(s.Tasks)),
	}
	for _, e := range s.Plants {
		out.Plants = append(out.Plants, e.Clone())
	}
	for _, e := range s.Tasks {
		out.Tasks = append(out.Tasks, e.Clone())
	}
	return out
}
