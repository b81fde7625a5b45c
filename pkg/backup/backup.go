// Package backup moves exported entry snapshots to and from files, standard
// streams and S3 objects.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"tableflip.dev/gardencal/pkg/store"
)

// Target is somewhere a snapshot can be written to and read back from.
type Target interface {
	Write(ctx context.Context, data []byte) error
	Read(ctx context.Context) ([]byte, error)
	String() string
}

// Stdio is the "-" target.
const Stdio = "-"

// Open resolves uri: "-" is stdin/stdout, s3://bucket/key an S3 object (the
// bucket may be omitted as s3:///key to use cfg.Bucket), anything else a
// local path.
func Open(ctx context.Context, uri string, cfg store.S3Config) (Target, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return nil, errors.New("backup: no target given")
	case uri == Stdio:
		return &StreamTarget{In: os.Stdin, Out: os.Stdout}, nil
	case strings.HasPrefix(uri, "s3://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("backup: parse %q: %w", uri, err)
		}
		if u.Host != "" {
			cfg.Bucket = u.Host
		}
		return NewS3(ctx, cfg, strings.TrimPrefix(u.Path, "/"))
	default:
		path, err := homedir.Expand(uri)
		if err != nil {
			return nil, err
		}
		return &FileTarget{Path: path}, nil
	}
}

// FileTarget is a local file.
type FileTarget struct {
	Path string
}

func (f *FileTarget) String() string { return f.Path }

// Write replaces the file, creating parent directories.
func (f *FileTarget) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("backup: write %s: %w", f.Path, err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("backup: write %s: %w", f.Path, err)
	}
	return nil
}

func (f *FileTarget) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("backup: read %s: %w", f.Path, err)
	}
	return b, nil
}

// StreamTarget reads from In and writes to Out.
type StreamTarget struct {
	In  io.Reader
	Out io.Writer
}

func (s *StreamTarget) String() string { return Stdio }

func (s *StreamTarget) Write(_ context.Context, data []byte) error {
	if s.Out == nil {
		return errors.New("backup: no output stream")
	}
	if _, err := s.Out.Write(data); err != nil {
		return err
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		_, err := io.WriteString(s.Out, "\n")
		return err
	}
	return nil
}

func (s *StreamTarget) Read(_ context.Context) ([]byte, error) {
	if s.In == nil {
		return nil, errors.New("backup: no input stream")
	}
	return io.ReadAll(s.In)
}
