package merge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vitalvas/swaggen/blob/memblob"
	"github.com/vitalvas/swaggen/discovery"
	"github.com/vitalvas/swaggen/store"
	"github.com/vitalvas/swaggen/swagger"
	"github.com/vitalvas/swaggen/validation"
)

func userSchema() *validation.Schema {
	return validation.NewSchema().Params(validation.Key("id", validation.String().Pattern(`^[0-9]+$`)))
}

func userRoute(schema *validation.Schema) []discovery.RouteEntry {
	return []discovery.RouteEntry{{
		Path:    "/users/{id}",
		Methods: []discovery.MethodEntry{{Method: "get", Schema: schema}},
	}}
}

func seed(t *testing.T, s *store.Store, params ...*swagger.Parameter) {
	t.Helper()
	require.NoError(t, s.Save(context.Background(), "/users/{id}", "get", store.Fragment{Parameters: params}))
}

func TestRunDefaults(t *testing.T) {
	paths, err := New(Options{}).Run(context.Background(), userRoute(userSchema()))
	require.NoError(t, err)

	op := paths["/users/{id}"]["get"]
	require.NotNil(t, op)
	assert.Equal(t, []string{"users"}, op.Tags)
	assert.Equal(t, "GET - /users/{id}", op.Summary)
	assert.Equal(t, []string{"application/json"}, op.Produces)
	assert.Empty(t, op.Responses)
	assert.NotNil(t, op.Responses)
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, &swagger.Parameter{Name: "id", In: "path", Required: true, Type: "string", Pattern: `^[0-9]+$`}, op.Parameters[0])
}

func TestRunPersistedMetadata(t *testing.T) {
	ctx := context.Background()
	s := store.New(memblob.New())
	require.NoError(t, s.Save(ctx, "/users/{id}", "get", store.Fragment{
		Metadata:  &store.Metadata{Tags: []string{"accounts"}, Summary: "Fetch a user"},
		Responses: map[string]*swagger.Response{"200": {Description: "OK"}},
	}))

	paths, err := New(Options{Store: s}).Run(ctx, userRoute(userSchema()))
	require.NoError(t, err)

	op := paths["/users/{id}"]["get"]
	assert.Equal(t, []string{"accounts"}, op.Tags)
	assert.Equal(t, "Fetch a user", op.Summary)
	assert.Contains(t, op.Responses, "200")
}

func TestRunReset(t *testing.T) {
	ctx := context.Background()
	s := store.New(memblob.New())
	seed(t, s,
		&swagger.Parameter{Name: "id", In: "path", Description: "User identifier"},
		&swagger.Parameter{Name: "legacy", In: "query", Type: "string"},
	)

	paths, err := New(Options{Store: s, Reset: true}).Run(ctx, userRoute(userSchema()))
	require.NoError(t, err)

	params := paths["/users/{id}"]["get"].Parameters
	assert.Equal(t, []*swagger.Parameter{
		{Name: "id", In: "path", Required: true, Type: "string", Pattern: `^[0-9]+$`},
	}, params)

	f, err := s.Load(ctx, "/users/{id}", "get")
	require.NoError(t, err)
	assert.Equal(t, params, f.Parameters)
}

func TestRunGapFill(t *testing.T) {
	s := store.New(memblob.New())
	seed(t, s, &swagger.Parameter{Name: "id", In: "path", Description: "User identifier", Type: "integer"})

	paths, err := New(Options{Store: s}).Run(context.Background(), userRoute(userSchema()))
	require.NoError(t, err)

	params := paths["/users/{id}"]["get"].Parameters
	require.Len(t, params, 1)
	assert.Equal(t, &swagger.Parameter{
		Name:        "id",
		In:          "path",
		Description: "User identifier",
		Required:    true,
		Type:        "string",
		Pattern:     `^[0-9]+$`,
	}, params[0])
}

func TestRunSecondPassKeepsPersisted(t *testing.T) {
	ctx := context.Background()
	s := store.New(memblob.New())
	engine := New(Options{Store: s})

	first, err := engine.Run(ctx, userRoute(userSchema()))
	require.NoError(t, err)

	stored, err := s.Load(ctx, "/users/{id}", "get")
	require.NoError(t, err)
	require.Len(t, stored.Parameters, 1)

	second, err := engine.Run(ctx, userRoute(nil))
	require.NoError(t, err)
	assert.Equal(t, stored.Parameters, second["/users/{id}"]["get"].Parameters)
	assert.Equal(t, first["/users/{id}"]["get"].Parameters, second["/users/{id}"]["get"].Parameters)
}

func TestRunHideEmpty(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.New()
	core, logs := observer.New(zap.DebugLevel)

	routes := []discovery.RouteEntry{
		{Path: "/health", Methods: []discovery.MethodEntry{{Method: "get"}}},
		{Path: "/users/{id}", Methods: []discovery.MethodEntry{
			{Method: "get", Schema: userSchema()},
			{Method: "delete"},
		}},
	}

	paths, err := New(Options{Store: store.New(bucket), HideEmpty: true, Logger: zap.New(core)}).Run(ctx, routes)
	require.NoError(t, err)

	assert.NotContains(t, paths, "/health")
	assert.Contains(t, paths["/users/{id}"], "get")
	assert.NotContains(t, paths["/users/{id}"], "delete")
	assert.Equal(t, 2, logs.FilterMessage("method hidden, no parameters").Len())

	keys, err := bucket.List(ctx, "paths/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"paths/users__{id}/get/metadata.json",
		"paths/users__{id}/get/parameters.json",
		"paths/users__{id}/get/responses.json",
	}, keys)
}

func TestRunKeepsEmptyWithoutHide(t *testing.T) {
	paths, err := New(Options{}).Run(context.Background(), []discovery.RouteEntry{
		{Path: "/health", Methods: []discovery.MethodEntry{{Method: "get"}}},
		{Path: "/nothing"},
	})
	require.NoError(t, err)

	require.Contains(t, paths, "/health")
	assert.NotNil(t, paths["/health"]["get"].Parameters)
	assert.Empty(t, paths["/health"]["get"].Parameters)
	assert.NotContains(t, paths, "/nothing")
}

func TestRunMalformedSchema(t *testing.T) {
	schema := validation.NewSchema().Query(validation.Key("q", &validation.Node{}))

	_, err := New(Options{}).Run(context.Background(), userRoute(schema))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /users/{id}")
}

func TestTag(t *testing.T) {
	tests := map[string]string{
		"/":                    DefaultTag,
		"/users":               "users",
		"/users/{id}":          "users",
		"/v1/users/{id}":       "users",
		"/2/orders":            "orders",
		"/v1":                  "v1",
		"/{tenant}/settings":   "tenant",
		"/api/v2/users/{id}/x": "api",
	}

	for path, expected := range tests {
		assert.Equal(t, expected, Tag(path), path)
	}
}
