package entries

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	n := 0
	svc, err := app.New(context.Background(), store.NewMemory(), calendar.DefaultCatalog(),
		app.WithIDGenerator(func(k entry.Kind) string {
			n++
			return string(k) + "-" + string(rune('0'+n))
		}))
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestAddEditRemove(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	add := Add{Kind: entry.KindPlant, Input: entry.Input{Name: "okra", Periods: []string{"may"}}, Service: svc}
	if err := add.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}

	name := "red okra"
	edit := Edit{Kind: entry.KindPlant, ID: "plant-1", Patch: entry.Patch{Name: &name, Periods: []string{"early_june"}}, Service: svc}
	if err := edit.Do(ctx); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if items := svc.Items("may", entry.CustomPlants); len(items) != 0 {
		t.Fatalf("may still holds %+v", items)
	}
	if items := svc.Items("early_june", entry.CustomPlants); len(items) != 1 || items[0].Label != "red okra" {
		t.Fatalf("early_june = %+v", items)
	}

	rm := Remove{Kind: entry.KindPlant, IDs: []string{"plant-1", "plant-9"}, JSON: true, Service: svc}
	err := rm.Do(ctx)
	if !errors.Is(err, entry.ErrNotFound) {
		t.Fatalf("expected not found for the unknown id, got %v", err)
	}
	if svc.List(ctx).Len() != 0 {
		t.Fatal("known id not removed")
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	svc := newService(t)
	add := Add{Kind: entry.KindPlant, Input: entry.Input{Name: "okra"}, Service: svc}
	if err := add.Do(context.Background()); !errors.Is(err, entry.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	if _, err := svc.AddPlant(ctx, entry.Input{Name: "okra", Periods: []string{"may"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddTask(ctx, entry.Input{Name: "weed", Periods: []string{"april"}}); err != nil {
		t.Fatal(err)
	}

	l := List{Period: "april", Service: svc}
	if got := l.filtered(svc.List(ctx).Plants); len(got) != 0 {
		t.Fatalf("okra is not in april: %+v", got)
	}
	if got := l.filtered(svc.List(ctx).Tasks); len(got) != 1 {
		t.Fatalf("weed is in april: %+v", got)
	}
	for _, kind := range []entry.Kind{"", entry.KindPlant, entry.KindTask} {
		if err := (&List{Kind: kind, ShowID: true, Service: svc}).Do(ctx); err != nil {
			t.Fatalf("list %q: %v", kind, err)
		}
	}
}
