// Package fsblob is a blob.Bucket backed by a directory tree.
package fsblob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vitalvas/swaggen/blob"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Bucket maps keys onto files below Root.
type Bucket struct {
	Root string
}

// New returns a bucket rooted at dir. The directory is created on first write.
func New(dir string) *Bucket {
	return &Bucket{Root: dir}
}

func (b *Bucket) path(key string) (string, error) {
	key, err := blob.CleanKey(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(b.Root, filepath.FromSlash(key)), nil
}

func (b *Bucket) Get(_ context.Context, key string) ([]byte, error) {
	name, err := b.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, blob.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fsblob: %w", err)
	}

	return data, nil
}

func (b *Bucket) Put(_ context.Context, key string, data []byte) error {
	name, err := b.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(name), dirPerm); err != nil {
		return fmt.Errorf("fsblob: %w", err)
	}

	if err := os.WriteFile(name, data, filePerm); err != nil {
		return fmt.Errorf("fsblob: %w", err)
	}

	return nil
}

func (b *Bucket) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(b.Root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && name == b.Root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(b.Root, name)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fsblob: %w", err)
	}

	slices.Sort(keys)

	return keys, nil
}
