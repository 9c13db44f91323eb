// Package memblob is an in-memory blob.Bucket.
package memblob

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/vitalvas/swaggen/blob"
)

// Bucket keeps objects in memory. The zero value is not usable; use New.
type Bucket struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New returns an empty bucket.
func New() *Bucket {
	return &Bucket{objects: make(map[string][]byte)}
}

func (b *Bucket) Get(_ context.Context, key string) ([]byte, error) {
	key, err := blob.CleanKey(key)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.objects[key]
	if !ok {
		return nil, blob.ErrNotFound
	}

	return slices.Clone(data), nil
}

func (b *Bucket) Put(_ context.Context, key string, data []byte) error {
	key, err := blob.CleanKey(key)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.objects[key] = slices.Clone(data)
	b.mu.Unlock()

	return nil
}

func (b *Bucket) List(_ context.Context, prefix string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var keys []string
	for key := range b.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	return keys, nil
}

// Len returns the number of stored objects.
func (b *Bucket) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.objects)
}
