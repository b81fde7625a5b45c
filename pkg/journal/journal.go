package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/logging"
	"tableflip.dev/gardencal/pkg/store"
)

// ErrEmpty is returned when exporting a journal without entries.
var ErrEmpty = errors.New("journal: no entries")

// Journal reads the stored entries on every call, so writes from another
// gardencal process are never overwritten with an old copy.
type Journal struct {
	mu    sync.Mutex
	store store.Store
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Journal)

func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithIDGenerator replaces the default "journal-<uuid>" ids.
func WithIDGenerator(gen func() string) Option {
	return func(j *Journal) { j.newID = gen }
}

func WithLogger(l logging.Logger) Option {
	return func(j *Journal) { j.log = logging.OrNoop(l) }
}

func New(st store.Store, opts ...Option) *Journal {
	j := &Journal{
		store: st,
		log:   logging.Noop(),
		now:   time.Now,
		newID: defaultID,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func defaultID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "journal-" + id.String()
}

func (j *Journal) load() []*Entry {
	var entries []*Entry
	if !store.LoadJSON(j.store, store.KeyJournal, &entries) {
		if raw, ok := j.store.Get(store.KeyJournal); ok && strings.TrimSpace(raw) != "" {
			j.log.Warn("ignoring malformed journal", "key", store.KeyJournal)
		}
		return []*Entry{}
	}
	out := entries[:0]
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (j *Journal) save(entries []*Entry) error {
	if err := store.SaveJSON(j.store, store.KeyJournal, entries); err != nil {
		return fmt.Errorf("journal: save: %w", err)
	}
	return nil
}

func (j *Journal) stamp() int64 {
	return j.now().UnixMilli()
}

// List returns the entries matching f, newest first.
func (j *Journal) List(f Filter) []*Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]*Entry, 0)
	for _, e := range j.load() {
		if f.match(e) {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	return out
}

func (j *Journal) Get(id string) (*Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, e := range j.load() {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("journal entry %q: %w", id, entry.ErrNotFound)
}

func (j *Journal) Add(ctx context.Context, in Input) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := &Entry{
		Date:     strings.TrimSpace(in.Date),
		Type:     Type(in.Type),
		Plants:   in.Plants,
		Notes:    in.Notes,
		Location: in.Location,
		Metrics:  in.Metrics,
		Images:   []string{},
	}
	if in.Weather != nil {
		w := *in.Weather
		e.Weather = &w
	}
	if e.Date == "" {
		e.Date = j.now().Format(DateLayout)
	}
	if err := e.normalize(); err != nil {
		return nil, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	entries := j.load()
	e.ID = j.uniqueID(entries)
	e.Timestamp = j.stamp()
	if err := j.save(append(entries, e)); err != nil {
		return nil, err
	}
	j.log.Info("journal entry added", "id", e.ID, "type", e.Type, "date", e.Date)
	return e, nil
}

func (j *Journal) Update(ctx context.Context, id string, p Patch) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	entries := j.load()
	for i, old := range entries {
		if old.ID != id {
			continue
		}
		e := p.Apply(old)
		if err := e.normalize(); err != nil {
			return nil, err
		}
		e.Timestamp = j.stamp()
		entries[i] = e
		if err := j.save(entries); err != nil {
			return nil, err
		}
		j.log.Info("journal entry updated", "id", id)
		return e, nil
	}
	return nil, fmt.Errorf("journal entry %q: %w", id, entry.ErrNotFound)
}

// Delete reports whether an entry with id existed.
func (j *Journal) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	entries := j.load()
	kept := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return false, nil
	}
	if err := j.save(kept); err != nil {
		return false, err
	}
	j.log.Info("journal entry deleted", "id", id)
	return true, nil
}

func (j *Journal) uniqueID(entries []*Entry) string {
	for {
		id := j.newID()
		taken := false
		for _, e := range entries {
			if e.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// Export encodes every stored entry as an indented JSON array. Without
// images the images field is left out of each entry.
func (j *Journal) Export(ctx context.Context, includeImages bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j.mu.Lock()
	entries := j.load()
	j.mu.Unlock()
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	if !includeImages {
		for i, e := range entries {
			c := e.Clone()
			c.Images = nil
			entries[i] = c
		}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// ExportName is the file name the browser journal used for an export.
func ExportName(day time.Time, includeImages bool) string {
	suffix := "_no_images"
	if includeImages {
		suffix = "_with_images"
	}
	return "garden_journal_" + day.Format(DateLayout) + suffix + ".json"
}

// ImportResult counts what Import did.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// Import reads a JSON array of entries. With replace the stored journal is
// dropped first; otherwise entries with a known id are overwritten and
// stamped, and the rest are appended. Nothing is written when any entry is
// invalid.
func (j *Journal) Import(ctx context.Context, data []byte, replace bool) (ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return ImportResult{}, err
	}
	incoming, err := decodeImport(data)
	if err != nil {
		return ImportResult{}, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	current := []*Entry{}
	if !replace {
		current = j.load()
	}
	now := j.stamp()
	var res ImportResult
	for _, in := range incoming {
		e := in.Clone()
		if e.ID == "" {
			e.ID = j.uniqueID(current)
		}
		if idx := indexOf(current, e.ID); idx >= 0 {
			e.Timestamp = now
			current[idx] = e
			res.Updated++
			continue
		}
		if e.Timestamp == 0 {
			e.Timestamp = now
		}
		current = append(current, e)
		res.Inserted++
	}
	res.Total = len(current)
	if err := j.save(current); err != nil {
		return ImportResult{}, err
	}
	j.log.Info("journal imported", "replace", replace, "inserted", res.Inserted, "updated", res.Updated)
	return res, nil
}

func indexOf(entries []*Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func decodeImport(data []byte) ([]*Entry, error) {
	var entries []*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &entry.ValidationError{Field: "journal", Reason: err.Error()}
	}
	if len(entries) == 0 {
		return nil, &entry.ValidationError{Field: "journal", Reason: "no journal entries"}
	}
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if e == nil {
			return nil, &entry.ValidationError{Field: fmt.Sprintf("journal[%d]", i), Reason: "null entry"}
		}
		if e.ID != "" {
			if first, dup := seen[e.ID]; dup {
				return nil, &entry.ValidationError{
					Field:  fmt.Sprintf("journal[%d].id", i),
					Reason: fmt.Sprintf("duplicate id %q, already used by journal[%d]", e.ID, first),
				}
			}
			seen[e.ID] = i
		}
		if err := e.normalize(); err != nil {
			var ve *entry.ValidationError
			if errors.As(err, &ve) {
				return nil, &entry.ValidationError{Field: fmt.Sprintf("journal[%d].%s", i, ve.Field), Reason: ve.Reason}
			}
			return nil, err
		}
	}
	return entries, nil
}

// Usage is how much of the store the journal takes, in bytes of JSON.
type Usage struct {
	TotalSize  int `json:"totalSize"`
	ImageSize  int `json:"imageSize"`
	TextSize   int `json:"textSize"`
	EntryCount int `json:"entryCount"`
}

func (j *Journal) Usage() (Usage, error) {
	j.mu.Lock()
	entries := j.load()
	j.mu.Unlock()
	b, err := json.Marshal(entries)
	if err != nil {
		return Usage{}, err
	}
	u := Usage{TotalSize: len(b), EntryCount: len(entries)}
	for _, e := range entries {
		for _, img := range e.Images {
			u.ImageSize += len(img)
		}
	}
	u.TextSize = u.TotalSize - u.ImageSize
	return u, nil
}
