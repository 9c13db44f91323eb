// Package blobtest holds behavior checks shared by every blob.Bucket
// implementation.
package blobtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swaggen/blob"
)

// Run exercises b, which must be empty.
func Run(t *testing.T, b blob.Bucket) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := b.Get(ctx, "missing/key.json")
		assert.ErrorIs(t, err, blob.ErrNotFound)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, b.Put(ctx, "paths/users/get/metadata.json", []byte(`{"summary":"x"}`)))

		data, err := b.Get(ctx, "paths/users/get/metadata.json")
		require.NoError(t, err)
		assert.Equal(t, `{"summary":"x"}`, string(data))
	})

	t.Run("put replaces", func(t *testing.T) {
		require.NoError(t, b.Put(ctx, "definitions/User.json", []byte("one")))
		require.NoError(t, b.Put(ctx, "definitions/User.json", []byte("two")))

		data, err := b.Get(ctx, "definitions/User.json")
		require.NoError(t, err)
		assert.Equal(t, "two", string(data))
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, b.Put(ctx, "definitions/Error.yaml", []byte("type: object")))
		require.NoError(t, b.Put(ctx, "definitions-extra/skip.json", []byte("{}")))

		keys, err := b.List(ctx, "definitions/")
		require.NoError(t, err)
		assert.Equal(t, []string{"definitions/Error.yaml", "definitions/User.json"}, keys)

		keys, err = b.List(ctx, "nothing/")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("invalid key", func(t *testing.T) {
		assert.ErrorIs(t, b.Put(ctx, "../escape", []byte("x")), blob.ErrInvalidKey)
		_, err := b.Get(ctx, "/abs")
		assert.ErrorIs(t, err, blob.ErrInvalidKey)
	})
}
