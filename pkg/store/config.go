package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend drivers.
const (
	DriverDisk   = "diskv"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config describes where and how gardencal persists its data.
type Config interface {
	Driver() string
	BasePath() string
	Namespace() string
}

// S3Config holds the optional S3 backup target settings.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// FileConfig is the Config read from .gardencal.yaml and GARDENCAL_* env vars.
type FileConfig struct {
	DriverName string
	Path       string
	NS         string
	Grid       string
	Catalog    string
	LogLevel   string
	S3         S3Config `mapstructure:"s3"`
}

func (f *FileConfig) Driver() string    { return f.DriverName }
func (f *FileConfig) BasePath() string  { return f.Path }
func (f *FileConfig) Namespace() string { return f.NS }

// LoadConfig reads .gardencal.yaml from $GARDENCAL_CONFIG_PATH or the working
// directory. A missing file yields the defaults.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("driver", DriverDisk)
	v.SetDefault("path", "~/.gardencal.db")
	v.SetDefault("namespace", "gardening")
	v.SetDefault("grid", "~/.gardencal/koppen_grid_0.5deg.json")
	v.SetDefault("catalog", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("backup.s3.region", "us-east-1")

	v.SetConfigName(".gardencal") // .yaml is implicit
	v.SetEnvPrefix("GARDENCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("GARDENCAL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: reading config: %w", err)
		}
	}

	cfg := &FileConfig{
		DriverName: strings.ToLower(v.GetString("driver")),
		NS:         v.GetString("namespace"),
		LogLevel:   v.GetString("log.level"),
		S3: S3Config{
			Bucket:    v.GetString("backup.s3.bucket"),
			Region:    v.GetString("backup.s3.region"),
			Endpoint:  v.GetString("backup.s3.endpoint"),
			PathStyle: v.GetBool("backup.s3.path_style"),
		},
	}
	var err error
	if cfg.Path, err = ExpandPath(v.GetString("path")); err != nil {
		return nil, err
	}
	if cfg.Grid, err = ExpandPath(v.GetString("grid")); err != nil {
		return nil, err
	}
	if cfg.Catalog, err = ExpandPath(v.GetString("catalog")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ and leaves URLs and empty strings alone.
func ExpandPath(p string) (string, error) {
	if p == "" || strings.Contains(p, "://") {
		return p, nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("store: expand %q: %w", p, err)
	}
	return expanded, nil
}

// Open builds the configured backend and scopes it to the namespace.
func Open(cfg Config) (Store, error) {
	if cfg == nil {
		var err error
		if cfg, err = LoadConfig(); err != nil {
			return nil, err
		}
	}

	var base Store
	switch cfg.Driver() {
	case DriverDisk, "":
		d, err := NewDisk(cfg.BasePath())
		if err != nil {
			return nil, err
		}
		base = d
	case DriverSQLite:
		path := cfg.BasePath()
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("store: ensure sqlite dir: %w", err)
			}
		}
		s, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		base = s
	case DriverMemory:
		base = NewMemory()
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
	return WithNamespace(base, cfg.Namespace()), nil
}
