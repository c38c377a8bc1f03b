package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound   = errors.New("object not found")
	ErrInvalidKey = errors.New("invalid object key")
)

type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ValidateKey accepts plain file names only. Keys are the uploaded file names
// and end up both on disk and in post_meta.header_image_url.
func ValidateKey(key string) error {
	switch {
	case key == "", key == ".", key == "..":
		return ErrInvalidKey
	case strings.ContainsAny(key, `/\`), filepath.Base(key) != key:
		return ErrInvalidKey
	case strings.ContainsRune(key, 0):
		return ErrInvalidKey
	}
	return nil
}
