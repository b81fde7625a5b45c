package zone

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/gardencal/pkg/climate"
	"tableflip.dev/gardencal/pkg/prefs"
	"tableflip.dev/gardencal/pkg/store"
)

func setup(t *testing.T) (*prefs.Preferences, *climate.Resolver) {
	t.Helper()
	g, err := climate.ParseGrid(strings.NewReader(`{"59.25 24.75":"Dfb","59.25 25.25":"Dfc"}`))
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemory()
	p := prefs.New(st, nil)
	return p, climate.NewResolver(st, "", climate.WithGrid(g), climate.WithLocationSource(p))
}

func TestZoneSavesAndReusesLocation(t *testing.T) {
	ctx := context.Background()
	p, r := setup(t)

	z := Zone{Coords: true, Lat: 59.3, Lon: 24.7, Name: "Tallinn", Prefs: p, Resolver: r}
	if err := z.Do(ctx); err != nil {
		t.Fatalf("zone: %v", err)
	}
	lat, lon, ok := p.LastCoordinates()
	if !ok || lat != 59.3 || lon != 24.7 {
		t.Fatalf("location not saved: %v %v %v", lat, lon, ok)
	}
	loc, _ := p.LastLocation()
	if loc.Name != "Tallinn" {
		t.Fatalf("name = %q", loc.Name)
	}

	again := Zone{Prefs: p, Resolver: r}
	if err := again.Do(ctx); err != nil {
		t.Fatalf("zone from saved location: %v", err)
	}
}

func TestZoneWithoutLocation(t *testing.T) {
	p, r := setup(t)
	z := Zone{Prefs: p, Resolver: r}
	if err := z.Do(context.Background()); !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}

	// An override answers without any location.
	if err := r.SetOverride("Cfb"); err != nil {
		t.Fatal(err)
	}
	if err := z.Do(context.Background()); err != nil {
		t.Fatalf("override without location: %v", err)
	}
}

func TestOverrideAndClear(t *testing.T) {
	ctx := context.Background()
	p, r := setup(t)
	if err := p.SaveLocation(prefs.Coords(59.3, 24.7, "")); err != nil {
		t.Fatal(err)
	}

	o := Override{Code: " BSk ", Resolver: r}
	if err := o.Do(ctx); err != nil {
		t.Fatalf("override: %v", err)
	}
	if m, _ := r.Resolve(59.3, 24.7); m.Code != "BSk" || !m.Override {
		t.Fatalf("override not applied: %+v", m)
	}

	if err := (&Override{Code: "  ", Resolver: r}).Do(ctx); !errors.Is(err, climate.ErrEmptyOverride) {
		t.Fatalf("empty override: %v", err)
	}

	c := Clear{Prefs: p, Resolver: r}
	if err := c.Do(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := r.Override(); ok {
		t.Fatal("override still stored")
	}
	if m, _ := r.Resolve(59.3, 24.7); m.Code != "Dfb" {
		t.Fatalf("after clear = %+v", m)
	}
}

func TestClearWithUnavailableGrid(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	p := prefs.New(st, nil)
	if err := p.SaveLocation(prefs.Coords(59.3, 24.7, "")); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(t.TempDir(), "missing.json")
	r := climate.NewResolver(st, missing, climate.WithLocationSource(p))
	if err := r.SetOverride("Dfb"); err != nil {
		t.Fatal(err)
	}

	c := Clear{Prefs: p, Resolver: r}
	if err := c.Do(ctx); err != nil {
		t.Fatalf("clear with missing grid: %v", err)
	}
	if code, ok := r.Override(); ok {
		t.Fatalf("override still stored: %q", code)
	}
}

func TestClearLoadsGridForSavedLocation(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "grid.json")
	if err := os.WriteFile(path, []byte(`{"59.25 24.75":"Dfb"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	st := store.NewMemory()
	p := prefs.New(st, nil)
	if err := p.SaveLocation(prefs.Coords(59.3, 24.7, "")); err != nil {
		t.Fatal(err)
	}
	r := climate.NewResolver(st, path, climate.WithLocationSource(p))
	if err := r.SetOverride("BSk"); err != nil {
		t.Fatal(err)
	}

	if err := (&Clear{Prefs: p, Resolver: r}).Do(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !r.Loaded() {
		t.Fatal("grid was not loaded")
	}
	if m, _ := r.Resolve(59.3, 24.7); m.Code != "Dfb" || m.Override {
		t.Fatalf("after clear = %+v", m)
	}
}
