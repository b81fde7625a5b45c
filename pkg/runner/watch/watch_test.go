package watch

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/entry"
	"tableflip.dev/gardencal/pkg/store"
)

func TestWatchRequiresWatchableStore(t *testing.T) {
	svc, err := app.New(context.Background(), store.WithNamespace(store.NewMemory(), "gardening"), calendar.DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}
	w := Watch{Service: svc, Print: func(context.Context) error { return nil }}
	if err := w.Do(context.Background()); err == nil {
		t.Fatal("expected an error for the memory store")
	}
}

func TestWatchReprintsOnExternalChange(t *testing.T) {
	dir := t.TempDir()
	openStore := func() store.Store {
		d, err := store.NewDisk(dir)
		if err != nil {
			t.Fatal(err)
		}
		return store.WithNamespace(d, "gardening")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The other process has its own handle on the same directory.
	other, err := app.New(ctx, openStore(), calendar.DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.AddTask(ctx, entry.Input{Name: "weed", Periods: []string{"may"}}); err != nil {
		t.Fatal(err)
	}

	svc, err := app.New(ctx, openStore(), calendar.DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}

	prints := make(chan int, 8)
	w := Watch{Service: svc, Print: func(context.Context) error {
		prints <- len(svc.Items("may", entry.CustomTasks))
		return nil
	}}
	done := make(chan error, 1)
	go func() { done <- w.Do(ctx) }()

	select {
	case n := <-prints:
		if n != 1 {
			t.Fatalf("initial print saw %d tasks, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial print")
	}
	time.Sleep(50 * time.Millisecond)

	if _, err := other.AddTask(ctx, entry.Input{Name: "water", Periods: []string{"may"}}); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(3 * time.Second)
	for {
		select {
		case n := <-prints:
			if n == 2 {
				cancel()
				if err := <-done; err != nil {
					t.Fatalf("watch: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("calendar not reprinted with the other process's task")
		}
	}
}
