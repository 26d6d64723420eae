package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is used when no output directory is configured.
const DefaultDir = "generated"

// Compile-time check that LocalStorage implements Storage.
var _ Storage = (*LocalStorage)(nil)

// LocalStorage keeps files in a single flat directory.
// It does not support publishing unless wrapped by S3Storage.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a LocalStorage rooted at dir, creating the
// directory if needed. An empty dir means DefaultDir.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		dir = DefaultDir
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	return &LocalStorage{dir: dir}, nil
}

// Dir returns the output directory.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Path returns the on-disk path for name.
func (s *LocalStorage) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes data to a new file called name. A partially written file is
// removed on error.
func (s *LocalStorage) Save(ctx context.Context, name string, data io.Reader) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	path, err := s.Path(name)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) // #nosec G304 - name is validated by Path
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, name)
		}
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close file: %w", err)
	}

	return nil
}

// Open returns a reader for name.
func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 - name is validated by Path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open file: %w", err)
	}

	return f, nil
}

// Remove deletes name.
func (s *LocalStorage) Remove(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	path, err := s.Path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file %s: %w", name, err)
	}
	return nil
}

// Publish is not supported by LocalStorage and returns ErrS3NotConfigured.
func (s *LocalStorage) Publish(_ context.Context, _ string) (string, error) {
	return "", ErrS3NotConfigured
}
