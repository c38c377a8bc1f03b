package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// UploadsSubpath is where header images live below the site root; the public
// site serves that directory as /uploads/.
var UploadsSubpath = filepath.Join("public", "uploads")

// FSStorage keeps objects as plain files under <root>/public/uploads.
// Writing an existing key replaces the file.
type FSStorage struct {
	dir string
}

func NewFSStorage(root string) (*FSStorage, error) {
	if root == "" {
		return nil, errors.New("root directory is required")
	}
	dir := filepath.Join(root, UploadsSubpath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &FSStorage{dir: dir}, nil
}

// Dir is the directory uploads are written to.
func (s *FSStorage) Dir() string {
	return s.dir
}

func (s *FSStorage) path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", fmt.Errorf("%w: %q", err, key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *FSStorage) Upload(ctx context.Context, key string, body io.Reader, _ string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (s *FSStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s *FSStorage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// Exists reports whether key is stored. Keys that can never be stored are
// simply absent, which lets health checks probe with any name.
func (s *FSStorage) Exists(_ context.Context, key string) (bool, error) {
	if ValidateKey(key) != nil {
		if _, err := os.Stat(s.dir); err != nil {
			return false, fmt.Errorf("stat uploads dir: %w", err)
		}
		return false, nil
	}
	_, err := os.Stat(filepath.Join(s.dir, key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat file: %w", err)
}

var _ Storage = (*FSStorage)(nil)
