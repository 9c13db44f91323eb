// Package blob defines the key/value object storage the documentation store
// is persisted in. Keys are slash separated, e.g. "paths/users/get/metadata.json".
package blob

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("blob: not found")

// ErrInvalidKey is returned for keys that escape the bucket root.
var ErrInvalidKey = errors.New("blob: invalid key")

// Bucket stores opaque objects by key.
type Bucket interface {
	// Get returns the object stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores data under key, replacing any previous object.
	Put(ctx context.Context, key string, data []byte) error
	// List returns the sorted keys starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// CleanKey validates key and returns its canonical form.
func CleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}
