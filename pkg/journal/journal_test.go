package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/store"
)

func newJournal(t *testing.T, st store.Store) *Journal {
	t.Helper()
	now := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	n := 0
	return New(st,
		WithClock(func() time.Time { now = now.Add(time.Second); return now }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("journal-%d", n) }),
	)
}

func TestAddDefaultsAndList(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t, store.NewMemory())

	first, err := j.Add(ctx, Input{Notes: "buds on the apple", Plants: []string{" Apple ", ""}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.Date != "2025-05-10" || first.Type != Observation {
		t.Fatalf("defaults = %q %q", first.Date, first.Type)
	}
	if len(first.Plants) != 1 || first.Plants[0] != "Apple" {
		t.Fatalf("plants = %q", first.Plants)
	}

	harvest, err := j.Add(ctx, Input{
		Date:    "2025-07-01",
		Type:    "Harvest",
		Plants:  []string{"Tomato"},
		Metrics: map[string]any{"weight": "2kg", "quality": 4},
		Weather: &Weather{Temperature: 24, WeatherCode: 2},
	})
	if err != nil {
		t.Fatalf("add harvest: %v", err)
	}
	if _, err := j.Add(ctx, Input{Date: "2025-04-20", Type: "care", Notes: "mulched"}); err != nil {
		t.Fatal(err)
	}

	all := j.List(Filter{})
	var dates []string
	for _, e := range all {
		dates = append(dates, e.Date)
	}
	if strings.Join(dates, ",") != "2025-07-01,2025-05-10,2025-04-20" {
		t.Fatalf("order = %v", dates)
	}

	if got := j.List(Filter{Type: Harvest}); len(got) != 1 || got[0].ID != harvest.ID {
		t.Fatalf("harvest filter = %v", got)
	}
	if got := j.List(Filter{Plant: "tomato"}); len(got) != 1 {
		t.Fatalf("plant filter = %v", got)
	}
	if got := j.List(Filter{From: "2025-05-01", To: "2025-06-30"}); len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("date filter = %v", got)
	}
	if got := j.List(Filter{Search: "MULCH"}); len(got) != 1 {
		t.Fatalf("search = %v", got)
	}
	if harvest.Metric("quality") != "4" || harvest.Metric("missing") != "" {
		t.Fatalf("metrics = %v", harvest.Metrics)
	}
	if icon, text := harvest.Weather.Describe(); icon == "" || text != "Partly cloudy" {
		t.Fatalf("weather = %q %q", icon, text)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	j := newJournal(t, store.NewMemory())
	for name, in := range map[string]Input{
		"type": {Type: "weeding"},
		"date": {Date: "10.05.2025"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := j.Add(context.Background(), in); !errors.Is(err, entry.ErrInvalid) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if n := len(j.List(Filter{})); n != 0 {
		t.Fatalf("rejected entries stored: %d", n)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t, store.NewMemory())
	e, err := j.Add(ctx, Input{Type: "planting", Plants: []string{"Pea"}, Notes: "row one"})
	if err != nil {
		t.Fatal(err)
	}

	notes := "rows one and two"
	got, err := j.Update(ctx, e.ID, Patch{Notes: &notes, Metrics: map[string]any{"quantity": "40"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Notes != notes || got.Type != Planting || got.Plants[0] != "Pea" {
		t.Fatalf("updated = %+v", got)
	}
	if got.Timestamp <= e.Timestamp {
		t.Fatalf("timestamp not advanced: %d <= %d", got.Timestamp, e.Timestamp)
	}
	if stored, _ := j.Get(e.ID); stored.Metric("quantity") != "40" {
		t.Fatalf("stored = %+v", stored)
	}

	bad := "someday"
	if _, err := j.Update(ctx, e.ID, Patch{Date: &bad}); !errors.Is(err, entry.ErrInvalid) {
		t.Fatalf("bad date: %v", err)
	}
	if _, err := j.Update(ctx, "nope", Patch{Notes: &notes}); !errors.Is(err, entry.ErrNotFound) {
		t.Fatalf("missing id: %v", err)
	}

	if ok, err := j.Delete(ctx, e.ID); err != nil || !ok {
		t.Fatalf("delete = %v %v", ok, err)
	}
	if ok, err := j.Delete(ctx, e.ID); err != nil || ok {
		t.Fatalf("second delete = %v %v", ok, err)
	}
	if _, err := j.Get(e.ID); !errors.Is(err, entry.ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
}

func TestSharedStoreSeesOtherWriter(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	a := newJournal(t, st)
	b := New(st)
	if _, err := a.Add(ctx, Input{Notes: "from a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Add(ctx, Input{Notes: "from b"}); err != nil {
		t.Fatal(err)
	}
	if n := len(a.List(Filter{})); n != 2 {
		t.Fatalf("a sees %d entries", n)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newJournal(t, store.NewMemory())
	if _, err := src.Export(ctx, true); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty export: %v", err)
	}
	e, err := src.Add(ctx, Input{Type: "harvest", Plants: []string{"Bean"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Update(ctx, e.ID, Patch{}); err != nil {
		t.Fatal(err)
	}
	withImages := `[{"id":"journal-img","date":"2025-06-01","type":"observation","plants":[],"notes":"","location":"","metrics":{},"images":["data:image/jpeg;base64,AAAA"],"weather":null,"timestamp":1}]`
	if _, err := src.Import(ctx, []byte(withImages), false); err != nil {
		t.Fatal(err)
	}

	full, err := src.Export(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(full), "base64,AAAA") {
		t.Fatalf("images missing from full export: %s", full)
	}
	light, err := src.Export(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(light), `"images"`) {
		t.Fatalf("light export kept images: %s", light)
	}
	if img, _ := src.Get("journal-img"); len(img.Images) != 1 {
		t.Fatal("light export dropped stored images")
	}

	dst := New(store.NewMemory())
	if _, err := dst.Add(ctx, Input{Notes: "local only"}); err != nil {
		t.Fatal(err)
	}
	res, err := dst.Import(ctx, full, false)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if res != (ImportResult{Inserted: 2, Total: 3}) {
		t.Fatalf("merge result = %+v", res)
	}
	res, err = dst.Import(ctx, full, false)
	if err != nil {
		t.Fatal(err)
	}
	if res != (ImportResult{Updated: 2, Total: 3}) {
		t.Fatalf("second merge = %+v", res)
	}

	res, err = dst.Import(ctx, light, true)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if res.Total != 2 || len(dst.List(Filter{})) != 2 {
		t.Fatalf("replace result = %+v", res)
	}
}

func TestImportRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t, store.NewMemory())
	if _, err := j.Add(ctx, Input{Notes: "keep me"}); err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"not json":     `{`,
		"object":       `{"plants": []}`,
		"empty":        `[]`,
		"null entry":   `[null]`,
		"bad type":     `[{"id":"a","date":"2025-05-01","type":"weeding"}]`,
		"bad date":     `[{"id":"a","date":"May 1st"}]`,
		"duplicate id": `[{"id":"a","date":"2025-05-01"},{"id":"a","date":"2025-05-02"}]`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := j.Import(ctx, []byte(data), true); !errors.Is(err, entry.ErrInvalid) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if n := len(j.List(Filter{})); n != 1 {
				t.Fatalf("rejected import changed the journal: %d entries", n)
			}
		})
	}
}

func TestMalformedStoredJournal(t *testing.T) {
	st := store.NewMemory()
	if err := st.Set(store.KeyJournal, "not json"); err != nil {
		t.Fatal(err)
	}
	j := newJournal(t, st)
	if n := len(j.List(Filter{})); n != 0 {
		t.Fatalf("entries = %d", n)
	}
	if _, err := j.Add(context.Background(), Input{Notes: "fresh"}); err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	v, _ := st.Get(store.KeyJournal)
	if err := json.Unmarshal([]byte(v), &raw); err != nil || len(raw) != 1 {
		t.Fatalf("stored = %s", v)
	}
}

func TestUsage(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t, store.NewMemory())
	data := `[{"id":"a","date":"2025-05-01","images":["12345678"]},{"id":"b","date":"2025-05-02"}]`
	if _, err := j.Import(ctx, []byte(data), true); err != nil {
		t.Fatal(err)
	}
	u, err := j.Usage()
	if err != nil {
		t.Fatal(err)
	}
	if u.EntryCount != 2 || u.ImageSize != 8 || u.TextSize != u.TotalSize-8 || u.TotalSize == 0 {
		t.Fatalf("usage = %+v", u)
	}
}

func TestExportName(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	if got := ExportName(day, false); got != "garden_journal_2025-05-10_no_images.json" {
		t.Fatalf("name = %q", got)
	}
}
