package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	d, err := NewDisk(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("open disk store: %v", err)
	}
	sq, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		if err := sq.Close(); err != nil {
			t.Errorf("closing sqlite store: %v", err)
		}
	})
	return map[string]Store{
		"memory": NewMemory(),
		"diskv":  d,
		"sqlite": sq,
	}
}

func TestBackendsRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok := s.Get("gardening.language"); ok {
				t.Fatalf("expected missing key")
			}
			if err := s.Set("gardening.language", "et"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set("gardening.language", "en"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if v, ok := s.Get("gardening.language"); !ok || v != "en" {
				t.Fatalf("get = %q, %v", v, ok)
			}
			if got := s.Keys(context.Background()); !reflect.DeepEqual(got, []string{"gardening.language"}) {
				t.Fatalf("keys = %v", got)
			}
			if err := s.Remove("gardening.language"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if err := s.Remove("gardening.language"); err != nil {
				t.Fatalf("removing a missing key should succeed: %v", err)
			}
			if _, ok := s.Get("gardening.language"); ok {
				t.Fatalf("expected key to be gone")
			}
		})
	}
}

func TestNamespaceIsolation(t *testing.T) {
	base := NewMemory()
	a := WithNamespace(base, "gardening")
	b := WithNamespace(base, "other")

	if err := a.Set(KeyLanguage, "et"); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Get(KeyLanguage); ok {
		t.Fatalf("namespace leaked")
	}
	if v, ok := base.Get("gardening.language"); !ok || v != "et" {
		t.Fatalf("expected prefixed key in base, got %q %v", v, ok)
	}
	if got := a.Keys(context.Background()); !reflect.DeepEqual(got, []string{KeyLanguage}) {
		t.Fatalf("keys = %v", got)
	}
	if WithNamespace(base, " ") != Store(base) {
		t.Fatalf("blank namespace should return the base store")
	}
}

func TestLoadJSONToleratesBadData(t *testing.T) {
	s := NewMemory()
	var v map[string]int

	if LoadJSON(s, "missing", &v) {
		t.Fatalf("missing key should report false")
	}
	_ = s.Set("bad", "{not json")
	if LoadJSON(s, "bad", &v) {
		t.Fatalf("malformed value should report false")
	}
	_ = s.Set("blank", "  ")
	if LoadJSON(s, "blank", &v) {
		t.Fatalf("blank value should report false")
	}
	if err := SaveJSON(s, "good", map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if !LoadJSON(s, "good", &v) || v["a"] != 1 {
		t.Fatalf("round trip failed: %v", v)
	}
}

func TestDiskKeyTransform(t *testing.T) {
	pk := keyToPathTransform("gardening.custom_entries")
	if !reflect.DeepEqual(pk.Path, []string{"gardening"}) || pk.FileName != "custom_entries" {
		t.Fatalf("unexpected path key %+v", pk)
	}
	if got := pathToKeyTransform(pk); got != "gardening.custom_entries" {
		t.Fatalf("inverse = %q", got)
	}
	if got := pathToKeyTransform(keyToPathTransform("bare")); got != "bare" {
		t.Fatalf("bare key inverse = %q", got)
	}
}

type testConfig struct {
	driver, path, ns string
}

func (c testConfig) Driver() string    { return c.driver }
func (c testConfig) BasePath() string  { return c.path }
func (c testConfig) Namespace() string { return c.ns }

func TestOpenDrivers(t *testing.T) {
	dir := t.TempDir()
	for _, cfg := range []testConfig{
		{driver: DriverDisk, path: filepath.Join(dir, "disk"), ns: "gardening"},
		{driver: DriverSQLite, path: filepath.Join(dir, "sql", "garden.db"), ns: "gardening"},
		{driver: DriverMemory, ns: "gardening"},
	} {
		s, err := Open(cfg)
		if err != nil {
			t.Fatalf("open %s: %v", cfg.driver, err)
		}
		if err := s.Set(KeyTempUnit, "F"); err != nil {
			t.Fatalf("%s set: %v", cfg.driver, err)
		}
		if v, _ := s.Get(KeyTempUnit); v != "F" {
			t.Fatalf("%s get = %q", cfg.driver, v)
		}
	}
	if _, err := Open(testConfig{driver: "etcd"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GARDENCAL_CONFIG_PATH", t.TempDir())
	t.Setenv("GARDENCAL_DRIVER", "sqlite")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Driver() != DriverSQLite {
		t.Fatalf("env override not applied: %q", cfg.Driver())
	}
	if cfg.Namespace() != "gardening" {
		t.Fatalf("namespace = %q", cfg.Namespace())
	}
	if cfg.BasePath() == "" || cfg.BasePath()[0] == '~' {
		t.Fatalf("path not expanded: %q", cfg.BasePath())
	}
	if cfg.S3.Region != "us-east-1" {
		t.Fatalf("s3 region default = %q", cfg.S3.Region)
	}
}

func TestDiskSeesWritesFromAnotherHandle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	mine, err := NewDisk(dir)
	if err != nil {
		t.Fatal(err)
	}
	theirs, err := NewDisk(dir)
	if err != nil {
		t.Fatal(err)
	}
	key := "gardening.custom_entries"
	if err := mine.Set(key, `{"plants":[]}`); err != nil {
		t.Fatal(err)
	}
	if got, _ := mine.Get(key); got != `{"plants":[]}` {
		t.Fatalf("first read = %q", got)
	}

	if err := theirs.Set(key, `{"plants":[{"id":"a"}]}`); err != nil {
		t.Fatal(err)
	}
	if got, _ := mine.Get(key); got != `{"plants":[{"id":"a"}]}` {
		t.Fatalf("after other handle wrote, got %q", got)
	}

	path := filepath.Join(dir, "gardening", "custom_entries")
	if err := os.WriteFile(path, []byte(`{"tasks":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, _ := mine.Get(key); got != `{"tasks":[]}` {
		t.Fatalf("after direct file write, got %q", got)
	}
}
