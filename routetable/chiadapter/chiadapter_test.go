package chiadapter

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swaggen/discovery"
	"github.com/vitalvas/swaggen/routetable"
	"github.com/vitalvas/swaggen/validation"
)

func noop(http.ResponseWriter, *http.Request) {}

func passthrough(next http.Handler) http.Handler { return next }

func TestNew(t *testing.T) {
	userSchema := validation.NewSchema().Params(validation.Key("id", validation.String().Pattern(`^[0-9]+$`)))
	createSchema := validation.NewSchema().Body(validation.Key("name", validation.String()))

	r := chi.NewRouter()
	r.Get("/health", noop)
	r.Handle("/metrics", http.HandlerFunc(noop))
	r.Route("/users", func(r chi.Router) {
		r.Get("/", noop)
		r.Method(http.MethodPost, "/", validation.WrapFunc(noop, createSchema))
		r.With(passthrough).Method(http.MethodGet, "/{id:[0-9]+}", validation.WrapFunc(noop, userSchema))
	})

	table, err := New(r)
	require.NoError(t, err)

	routes := discovery.Walk(table)
	byPath := make(map[string]discovery.RouteEntry)
	for _, rt := range routes {
		byPath[rt.Path] = rt
	}

	t.Run("plain route", func(t *testing.T) {
		require.Contains(t, byPath, "/health")
		require.Len(t, byPath["/health"].Methods, 1)
		assert.Equal(t, "get", byPath["/health"].Methods[0].Method)
	})

	t.Run("catch-all handler reports no methods", func(t *testing.T) {
		require.Contains(t, byPath, "/metrics")
		assert.Empty(t, byPath["/metrics"].Methods)
	})

	t.Run("mounted routes", func(t *testing.T) {
		require.Contains(t, byPath, "/users")
		methods := byPath["/users"].Methods
		require.Len(t, methods, 2)
		assert.Equal(t, "get", methods[0].Method)
		assert.Nil(t, methods[0].Schema)
		assert.Equal(t, "post", methods[1].Method)
		assert.Same(t, createSchema, methods[1].Schema)
	})

	t.Run("schema behind middleware", func(t *testing.T) {
		require.Contains(t, byPath, "/users/{id}")
		methods := byPath["/users/{id}"].Methods
		require.Len(t, methods, 1)
		assert.Same(t, userSchema, methods[0].Schema)
	})

	t.Run("mount stubs are not routes", func(t *testing.T) {
		count := 0
		for _, rt := range routes {
			if rt.Path == "/users" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestSortedMethods(t *testing.T) {
	handlers := map[string]http.Handler{
		"DELETE": nil, "GET": nil, "PROPFIND": nil, "POST": nil,
	}
	assert.Equal(t, []string{"GET", "POST", "DELETE", "PROPFIND"}, sortedMethods(handlers))
	assert.NotContains(t, sortedMethods(handlers), routetable.MethodAll)
}
