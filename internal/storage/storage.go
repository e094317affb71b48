package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	getter "github.com/hashicorp/go-getter"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/voxelmesh/internal/config"
)

// Storage handles config loading and output files under a base directory.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating it if needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, log: log}, nil
}

// LoadConfig reads a JSON or YAML config into cfg. src is a local path or
// any go-getter source (https://, s3::, git::...). Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func (s *Storage) LoadConfig(ctx context.Context, src string, cfg *config.Config) error {
	data, err := s.readSource(ctx, src)
	if err != nil {
		return err
	}

	switch strings.ToLower(path.Ext(sourcePath(src))) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", src, err)
	}
	s.log.Info("loaded config", "source", src)
	return nil
}

func (s *Storage) readSource(ctx context.Context, src string) ([]byte, error) {
	if _, err := os.Stat(src); err == nil {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return data, nil
	}

	tmp, err := os.MkdirTemp("", "voxelmesh-config-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	dst := filepath.Join(tmp, "config"+path.Ext(sourcePath(src)))
	if err := getter.GetFile(dst, src, getter.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("fetch config %s: %w", src, err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("read fetched config: %w", err)
	}
	return data, nil
}

// sourcePath strips go-getter forcing prefixes and query strings so the
// file extension can be inspected.
func sourcePath(src string) string {
	if i := strings.Index(src, "::"); i >= 0 {
		src = src[i+2:]
	}
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		return u.Path
	}
	return src
}

// WriteFile writes name atomically: fn streams into a temp file which is
// renamed into place only if fn and the close succeed. Names ending in .zst
// are zstd-compressed. It returns the number of bytes written to disk.
func (s *Storage) WriteFile(name string, fn func(w io.Writer) error) (int64, error) {
	p := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return 0, fmt.Errorf("create directory %s: %w", filepath.Dir(p), err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	if err := writeTo(f, strings.HasSuffix(name, ".zst"), fn); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("stat temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("rename temp file: %w", err)
	}

	s.log.Info("wrote file", "path", p, "size", humanize.Bytes(uint64(info.Size())))
	return info.Size(), nil
}

func writeTo(f *os.File, compress bool, fn func(w io.Writer) error) error {
	if !compress {
		return fn(f)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	if err := fn(enc); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd writer: %w", err)
	}
	return nil
}

// Remove deletes a file previously written with WriteFile. A missing file is
// not an error.
func (s *Storage) Remove(name string) error {
	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Path resolves name against the storage directory unless it is absolute.
func (s *Storage) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
