package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swaggen/swagger"
	"github.com/vitalvas/swaggen/validation"
)

func TestRender(t *testing.T) {
	t.Run("path parameter with pattern", func(t *testing.T) {
		s := validation.NewSchema().Params(validation.Key("id", validation.String().Pattern(`^[0-9]+$`)))

		ds, err := Schema(s)
		require.NoError(t, err)

		params := Render(ds)
		require.Len(t, params, 1)
		assert.Equal(t, &swagger.Parameter{
			Name:     "id",
			In:       "path",
			Required: true,
			Type:     "string",
			Pattern:  `^[0-9]+$`,
		}, params[0])
	})

	t.Run("query and header", func(t *testing.T) {
		params := Render([]Descriptor{
			{Name: "sort", In: validation.LocationQuery, Type: "any", Values: []any{"asc", "desc"}},
			{Name: "X-Request-Id", In: validation.LocationHeaders, Required: true},
		})

		require.Len(t, params, 2)
		assert.Equal(t, "query", params[0].In)
		assert.False(t, params[0].Required)
		assert.Equal(t, "asc, desc", params[0].Description)
		assert.Equal(t, []any{"asc", "desc"}, params[0].Enum)

		assert.Equal(t, "header", params[1].In)
		assert.True(t, params[1].Required)
		assert.Equal(t, "string", params[1].Type)
		assert.Nil(t, params[1].Enum)
	})

	t.Run("body fields aggregate", func(t *testing.T) {
		params := Render([]Descriptor{
			{Name: "name", In: validation.LocationBody, Type: "string", Required: true, Description: "display name"},
			{Name: "id", In: validation.LocationParams, Type: "string"},
			{Name: "age", In: validation.LocationBody, Type: "integer", Default: 18},
		})

		require.Len(t, params, 2)
		assert.Equal(t, "id", params[0].Name)

		body := params[1]
		assert.Equal(t, BodyName, body.Name)
		assert.Equal(t, "body", body.In)
		require.NotNil(t, body.Schema)
		assert.Equal(t, []string{"name"}, body.Schema.Required)
		require.Len(t, body.Schema.Properties, 2)
		assert.Equal(t, "display name", body.Schema.Properties["name"].Description)
		assert.Equal(t, 18, body.Schema.Properties["age"].Default)
	})

	t.Run("alternatives description", func(t *testing.T) {
		params := Render([]Descriptor{{
			Name: "contact",
			In:   validation.LocationQuery,
			Alternatives: []Descriptor{
				{Type: "string", Description: "email"},
				{Type: "integer", Description: "phone"},
				{},
			},
		}})

		require.Len(t, params, 1)
		assert.Equal(t, "string email or integer phone or string", params[0].Description)
		assert.Equal(t, "string", params[0].Type)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Render(nil))
	})
}
