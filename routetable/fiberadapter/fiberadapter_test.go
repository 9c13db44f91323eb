package fiberadapter

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swaggen/discovery"
	"github.com/vitalvas/swaggen/validation"
)

func ok(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func TestNew(t *testing.T) {
	userSchema := validation.NewSchema().Params(validation.Key("id", validation.String()))

	app := fiber.New()
	app.Get("/health", ok)

	users := app.Group("/v1/users")
	users.Get("/:id", ok)
	users.Put("/:id", ok)
	users.Post("/", ok)
	users.Delete("", ok)
	app.Get("/static/*", ok)

	registry := validation.NewRegistry().Register(fiber.MethodGet, "/v1/users/:id", userSchema)

	table, err := New(app, registry)
	require.NoError(t, err)

	routes := discovery.Walk(table)
	byPath := make(map[string]discovery.RouteEntry)
	for _, rt := range routes {
		byPath[rt.Path] = rt
	}

	require.Contains(t, byPath, "/health")
	require.Len(t, byPath["/health"].Methods, 1)
	assert.Equal(t, "get", byPath["/health"].Methods[0].Method)

	require.Contains(t, byPath, "/v1/users/{id}")
	methods := byPath["/v1/users/{id}"].Methods
	require.Len(t, methods, 2)
	assert.Equal(t, "get", methods[0].Method)
	assert.Same(t, userSchema, methods[0].Schema)
	assert.Equal(t, "put", methods[1].Method)
	assert.Nil(t, methods[1].Schema)

	require.Contains(t, byPath, "/v1/users")
	require.Len(t, byPath["/v1/users"].Methods, 2)
	assert.Equal(t, "post", byPath["/v1/users"].Methods[0].Method)
	assert.Equal(t, "delete", byPath["/v1/users"].Methods[1].Method)

	assert.NotContains(t, byPath, "/static/{*}")
}
