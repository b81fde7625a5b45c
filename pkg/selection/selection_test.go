package selection

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/store"
)

func TestToggleIsIdempotent(t *testing.T) {
	st := store.NewMemory()
	tr := NewTracker(st, nil)
	carrot := Object("carrot", map[string]string{"et": "porgand"})

	for i := 0; i < 2; i++ {
		if err := tr.Toggle("april", entry.DirectSowing, carrot, true); err != nil {
			t.Fatal(err)
		}
	}
	once, _ := st.Get(store.KeySelectedItems)
	if got := tr.Selected("april", entry.DirectSowing); len(got) != 1 {
		t.Fatalf("selected = %v", got)
	}

	if err := tr.Toggle("april", entry.DirectSowing, carrot, true); err != nil {
		t.Fatal(err)
	}
	if again, _ := st.Get(store.KeySelectedItems); again != once {
		t.Fatalf("record changed: %s -> %s", once, again)
	}

	for i := 0; i < 2; i++ {
		if err := tr.Toggle("april", entry.DirectSowing, carrot, false); err != nil {
			t.Fatal(err)
		}
	}
	if tr.IsSelected("april", entry.DirectSowing, carrot) {
		t.Fatal("still selected")
	}
}

func TestMatchByLabel(t *testing.T) {
	tr := NewTracker(store.NewMemory(), nil)
	if err := tr.Toggle("may", entry.Greenhouse, Object("tomato", map[string]string{"et": "tomat"}), true); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		item Item
		want bool
	}{
		{name: "same label other alt", item: Object("tomato", map[string]string{"et": "something else"}), want: true},
		{name: "same label no alt", item: Object("tomato", nil), want: true},
		{name: "primitive with label value", item: Value("tomato"), want: false},
		{name: "other label", item: Object("cucumber", nil), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tr.IsSelected("may", entry.Greenhouse, tc.item); got != tc.want {
				t.Fatalf("IsSelected = %v, want %v", got, tc.want)
			}
		})
	}
	if tr.IsSelected("april", entry.Greenhouse, Object("tomato", nil)) {
		t.Fatal("selection leaked into another period")
	}
}

func TestPrimitiveItems(t *testing.T) {
	tr := NewTracker(store.NewMemory(), nil)
	if err := tr.Toggle("may", entry.GardenTasks, Value("weed control"), true); err != nil {
		t.Fatal(err)
	}
	if !tr.IsSelected("may", entry.GardenTasks, Value("weed control")) {
		t.Fatal("primitive not selected")
	}
	if tr.IsSelected("may", entry.GardenTasks, Object("weed control", nil)) {
		t.Fatal("object matched a primitive")
	}
}

func TestEmptyContainersCollapse(t *testing.T) {
	st := store.NewMemory()
	tr := NewTracker(st, nil)
	keep := Object("dill", nil)
	if err := tr.Toggle("april", entry.DirectSowing, keep, true); err != nil {
		t.Fatal(err)
	}
	if err := tr.Toggle("may", entry.Greenhouse, Object("basil", nil), true); err != nil {
		t.Fatal(err)
	}
	if err := tr.Toggle("may", entry.Greenhouse, Object("basil", nil), false); err != nil {
		t.Fatal(err)
	}
	if err := tr.Toggle("early_june", entry.Transplanting, Object("pumpkin", nil), false); err != nil {
		t.Fatal(err)
	}

	raw, _ := st.Get(store.KeySelectedItems)
	want := `{"april":{"direct_sowing":[{"type":"plant","en":"dill"}]}}`
	if raw != want {
		t.Fatalf("stored %s, want %s", raw, want)
	}
}

func TestStoredShape(t *testing.T) {
	st := store.NewMemory()
	legacy := `{"april":{"direct_sowing":[{"type":"plant","en":"carrot","et":"porgand"},"note",42]}}`
	if err := st.Set(store.KeySelectedItems, legacy); err != nil {
		t.Fatal(err)
	}
	tr := NewTracker(st, nil)
	got := tr.Selected("april", entry.DirectSowing)
	want := []Item{Object("carrot", map[string]string{"et": "porgand"}), Value("note"), Value("42")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("selected = %#v", got)
	}
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `[{"type":"plant","en":"carrot","et":"porgand"},"note","42"]` {
		t.Fatalf("marshal = %s", b)
	}
}

func TestMalformedRecordReadsEmpty(t *testing.T) {
	st := store.NewMemory()
	if err := st.Set(store.KeySelectedItems, "[1,2"); err != nil {
		t.Fatal(err)
	}
	tr := NewTracker(st, nil)
	if tr.Record().Count() != 0 {
		t.Fatal("expected empty record")
	}
	if err := tr.Toggle("may", entry.Greenhouse, Object("basil", nil), true); err != nil {
		t.Fatal(err)
	}
	if tr.Record().Count() != 1 {
		t.Fatal("toggle after malformed data failed")
	}
}

func TestToggleAll(t *testing.T) {
	tr := NewTracker(store.NewMemory(), nil)
	var items []Item
	for _, d := range calendar.DefaultCatalog().Items["april"][entry.Greenhouse] {
		items = append(items, FromDisplay(d))
	}
	if tr.AllSelected("april", entry.Greenhouse, items) {
		t.Fatal("nothing selected yet")
	}
	if err := tr.Toggle("april", entry.Greenhouse, items[0], true); err != nil {
		t.Fatal(err)
	}
	if err := tr.ToggleAll("april", entry.Greenhouse, items, true); err != nil {
		t.Fatal(err)
	}
	if !tr.AllSelected("april", entry.Greenhouse, items) || len(tr.Selected("april", entry.Greenhouse)) != len(items) {
		t.Fatal("select all failed")
	}
	if err := tr.ToggleAll("april", entry.Greenhouse, items, false); err != nil {
		t.Fatal(err)
	}
	if tr.Record().Count() != 0 {
		t.Fatal("deselect all left items")
	}
}

func TestToggleRejectsUnlabelledObject(t *testing.T) {
	tr := NewTracker(store.NewMemory(), nil)
	if err := tr.Toggle("may", entry.Greenhouse, Object("", map[string]string{"et": "tomat"}), true); !errors.Is(err, ErrNoLabel) {
		t.Fatalf("expected ErrNoLabel, got %v", err)
	}
}
