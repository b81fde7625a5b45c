package climate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"tableflip.dev/gardencal/pkg/store"
)

func TestQuantize(t *testing.T) {
	// f = x - floor(x): f < 0.375 gives floor+0.25, f < 0.875 gives
	// floor+0.75, otherwise floor+1.25. So 2.4 is 2.75 and -0.1 (f 0.9) is 0.25.
	cases := map[float64]string{
		2.1:    "2.25",
		2.3:    "2.25",
		2.4:    "2.75",
		2.6:    "2.75",
		2.9:    "3.25",
		2.0:    "2.25",
		2.375:  "2.75",
		2.875:  "3.25",
		-0.1:   "0.25",
		-0.5:   "-0.25",
		-0.7:   "-0.75",
		-13.4:  "-13.25",
		59.437: "59.75",
	}
	for in, want := range cases {
		if got := Quantize(in); got != want {
			t.Errorf("Quantize(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCoordinate(t *testing.T) {
	if v, err := ParseCoordinate(" 59.437 "); err != nil || v != 59.437 {
		t.Fatalf("ParseCoordinate = %v, %v", v, err)
	}
	for _, bad := range []string{"", "north", "NaN", "Inf", "1.2.3"} {
		if _, err := ParseCoordinate(bad); !errors.Is(err, ErrInvalidCoordinate) {
			t.Fatalf("ParseCoordinate(%q) err = %v", bad, err)
		}
	}
	lat, lon, err := ParsePair("59.25,24.75")
	if err != nil || lat != 59.25 || lon != 24.75 {
		t.Fatalf("ParsePair = %v %v %v", lat, lon, err)
	}
}

const sample = `{"59.25 24.75":"Dfb","59.25 25.25":"Dfc","52.75,13.25":"Cfb"}`

func mustGrid(t *testing.T, src string) *Grid {
	t.Helper()
	g, err := ParseGrid(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	return g
}

func TestGridResolve(t *testing.T) {
	g := mustGrid(t, sample)

	exact := g.Resolve(59.3, 24.7)
	if exact.Code != "Dfb" || exact.Info != "59.25 24.75" || !exact.Exact {
		t.Fatalf("exact = %+v", exact)
	}

	comma := g.Resolve(52.6, 13.1)
	if comma.Code != "Cfb" || !comma.Exact {
		t.Fatalf("comma key = %+v", comma)
	}

	near := g.Resolve(59.9, 25.0)
	if near.Code != "Dfc" || near.Nearest != "59.25 25.25" {
		t.Fatalf("nearest = %+v", near)
	}
	if want := "60.25 25.25 (nearest: 59.25 25.25, dist: 1.00°)"; near.Info != want {
		t.Fatalf("info = %q, want %q", near.Info, want)
	}

	far := g.Resolve(0, 0)
	if far.Code != UnknownCode || far.Info != "0.25 0.25" || far.Known() {
		t.Fatalf("far = %+v", far)
	}
}

func TestNearestTieBreak(t *testing.T) {
	g := mustGrid(t, `{"10.75 10.25":"B","10.25 10.75":"A","9.75 10.25":"C"}`)
	n, ok := g.Nearest(10.25, 10.25)
	if !ok || n.Key != "10.25 10.75" || n.Code != "A" {
		t.Fatalf("tie = %+v", n)
	}
}

func bruteForce(g *Grid, lat, lon float64) (Neighbour, bool) {
	qlat, qlon := quantize(lat), quantize(lon)
	best := Neighbour{Distance: math.Inf(1)}
	found := false
	for _, c := range g.cells {
		if d, ok := within(c, qlat, qlon); ok && better(d, c.key, best) {
			best = Neighbour{Key: c.key, Code: c.code, Distance: d}
			found = true
		}
	}
	return best, found
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var b strings.Builder
	b.WriteString("{")
	for i := 0; i < 400; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		lat := quantize(rng.Float64()*20 - 10)
		lon := quantize(rng.Float64()*20 - 10)
		fmt.Fprintf(&b, `"%.2f %.2f":"Z%d"`, lat, lon, i)
	}
	b.WriteString("}")
	g := mustGrid(t, b.String())

	for i := 0; i < 2000; i++ {
		lat := rng.Float64()*24 - 12
		lon := rng.Float64()*24 - 12
		got, gotOK := g.Nearest(lat, lon)
		want, wantOK := bruteForce(g, lat, lon)
		if gotOK != wantOK || got != want {
			t.Fatalf("(%v, %v): indexed %+v %v, brute %+v %v", lat, lon, got, gotOK, want, wantOK)
		}
	}
}

func TestParseASCII(t *testing.T) {
	src := "Lat Lon Cls\n59.25 24.75 Dfb\n\n-33.75 151.25 Cfa\n"
	g, err := ParseGrid(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 2 {
		t.Fatalf("len = %d", g.Len())
	}
	if code, ok := g.Lookup("-33.75 151.25"); !ok || code != "Cfa" {
		t.Fatalf("lookup = %q %v", code, ok)
	}
	for _, bad := range []string{"", "   ", "{}", `{"north east":"Dfb"}`} {
		if _, err := ParseGrid(strings.NewReader(bad)); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

type fixedLocation struct {
	lat, lon float64
	ok       bool
}

func (f fixedLocation) LastCoordinates() (float64, float64, bool) { return f.lat, f.lon, f.ok }

func TestResolverOverride(t *testing.T) {
	st := store.NewMemory()
	r := NewResolver(st, "", WithLocationSource(fixedLocation{lat: 59.4, lon: 24.7, ok: true}))

	if _, ok := r.Resolve(59.4, 24.7); ok {
		t.Fatal("resolved without grid or override")
	}
	if _, err := r.ResolveErr(59.4, 24.7); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("err = %v", err)
	}
	if err := r.SetOverride("  "); !errors.Is(err, ErrEmptyOverride) {
		t.Fatalf("blank override err = %v", err)
	}
	if err := r.SetOverride(" BSk "); err != nil {
		t.Fatal(err)
	}
	m, ok := r.Resolve(59.4, 24.7)
	if !ok || m.Code != "BSk" || m.Info != OverrideInfo || !m.Override {
		t.Fatalf("override before load = %+v %v", m, ok)
	}

	WithGrid(mustGrid(t, sample))(r)
	if m, _ := r.Resolve(59.4, 24.7); m.Code != "BSk" {
		t.Fatalf("grid beat override: %+v", m)
	}
	again := NewResolver(st, "")
	if code, ok := again.Override(); !ok || code != "BSk" {
		t.Fatalf("override not persisted: %q %v", code, ok)
	}

	m, ok, err := r.ClearOverride()
	if err != nil || !ok || m.Code != "Dfb" {
		t.Fatalf("clear = %+v %v %v", m, ok, err)
	}
	if _, ok := r.Override(); ok {
		t.Fatal("override still set")
	}
}

func TestClearOverrideWithoutLocation(t *testing.T) {
	r := NewResolver(store.NewMemory(), "", WithGrid(mustGrid(t, sample)))
	if err := r.SetOverride("Dfb"); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := r.ClearOverride(); err != nil || ok {
		t.Fatalf("clear = %v %v", ok, err)
	}
	r = NewResolver(store.NewMemory(), "", WithLocationSource(fixedLocation{}))
	if _, ok, err := r.ClearOverride(); err != nil || ok {
		t.Fatalf("clear without coordinates = %v %v", ok, err)
	}
}

func TestResolverLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(store.NewMemory(), path)
	if err := <-r.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !r.Loaded() {
		t.Fatal("not loaded")
	}
	if m, ok := r.Resolve(59.4, 24.7); !ok || m.Code != "Dfb" {
		t.Fatalf("resolve = %+v %v", m, ok)
	}
}

func TestResolverLoadFromURL(t *testing.T) {
	var hits atomic.Int32
	fail := atomic.Bool{}
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		if fail.Load() {
			http.Error(w, "nope", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	r := NewResolver(store.NewMemory(), srv.URL+"/koppen.json", WithHTTPClient(srv.Client()))
	if _, err := r.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if r.Loaded() {
		t.Fatal("loaded after failure")
	}
	if _, ok := r.Resolve(59.4, 24.7); ok {
		t.Fatal("resolved after failed load")
	}

	fail.Store(false)
	if _, err := r.Load(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if _, err := r.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("fetched %d times", got)
	}
}

func TestResolverLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()
	r := NewResolver(store.NewMemory(), srv.URL, WithHTTPClient(srv.Client()))
	if _, err := r.Load(ctx); err == nil {
		t.Fatal("expected cancellation error")
	}
}
