package routetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swaggen/pattern"
	"github.com/vitalvas/swaggen/validation"
)

func TestNode(t *testing.T) {
	getSchema := validation.NewSchema().Params(validation.Key("id", validation.String()))
	postSchema := validation.NewSchema()

	route := Route(pattern.MustCompile("/{id}", pattern.Options{})).
		Handle("GET", getSchema).
		Handle("POST", nil).
		Handle("POST", postSchema)
	mount := Mount(pattern.MustCompile("/users", pattern.Options{Prefix: true}), route)
	table := New(mount)

	entries := table.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Terminal())
	assert.Equal(t, `^/users`, entries[0].Pattern().Expr)

	children := entries[0].Mounts()
	require.Len(t, children, 1)
	assert.True(t, children[0].Terminal())
	assert.Equal(t, []string{"GET", "POST"}, children[0].Methods())
	assert.Same(t, getSchema, children[0].Schema("get"))
	assert.Same(t, postSchema, children[0].Schema("POST"))
	assert.Nil(t, children[0].Schema("DELETE"))

	mount.Add(Route(pattern.Pattern{Expr: "/extra"}))
	assert.Len(t, mount.Mounts(), 2)
}
