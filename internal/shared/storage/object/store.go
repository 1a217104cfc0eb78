package object

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidKey is returned for keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// ObjectStore saves and retrieves binary objects by key.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// CleanKey normalizes a slash-separated key and rejects traversal.
func CleanKey(key string) (string, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if trimmed == "" {
		return "", ErrInvalidKey
	}
	clean := path.Clean("/" + trimmed)
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(trimmed, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	return clean, nil
}
