package translate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swaggen/validation"
)

func TestNode(t *testing.T) {
	tests := []struct {
		name     string
		node     *validation.Node
		expected Descriptor
	}{
		{
			name:     "plain string",
			node:     validation.String().Description("login"),
			expected: Descriptor{Type: "string", Description: "login"},
		},
		{
			name:     "string with pattern",
			node:     validation.String().Pattern(`^[0-9]+$`),
			expected: Descriptor{Type: "string", Pattern: `^[0-9]+$`},
		},
		{
			name:     "pattern among other tests is dropped",
			node:     validation.String().Pattern(`^[a-z]+$`).Max(8),
			expected: Descriptor{Type: "string"},
		},
		{
			name:     "date",
			node:     validation.Date(),
			expected: Descriptor{Type: "string", Format: "date-time"},
		},
		{
			name:     "integer",
			node:     validation.Number().Integer().DefaultValue(10),
			expected: Descriptor{Type: "integer", Default: 10},
		},
		{
			name:     "positive number",
			node:     validation.Number().Positive().Description("price"),
			expected: Descriptor{Type: "number", Description: "price positive"},
		},
		{
			name:     "positive integer without notes",
			node:     validation.Number().Integer().Positive(),
			expected: Descriptor{Type: "integer", Description: "positive"},
		},
		{
			name:     "any with allowed values",
			node:     validation.Any().Valid("asc", "desc"),
			expected: Descriptor{Type: "any", Values: []any{"asc", "desc"}},
		},
		{
			name:     "boolean uses the default emission",
			node:     validation.Boolean().DefaultValue(false).Require(),
			expected: Descriptor{Type: "boolean", Default: false, Required: true},
		},
		{
			name: "alternatives",
			node: validation.Alternatives(validation.String().Description("email"), validation.Number().Integer()),
			expected: Descriptor{Alternatives: []Descriptor{
				{Type: "string", Description: "email"},
				{Type: "integer"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Node(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestNodePatternRoundTrip(t *testing.T) {
	for _, expr := range []string{`^[0-9]+$`, `^[a-f0-9]{24}$`, `\d{3}-\d{4}`} {
		d, err := Node(validation.String().Pattern(expr))
		require.NoError(t, err)
		assert.Equal(t, expr, d.Pattern)
		assert.Equal(t, regexp.MustCompile(expr).String(), d.Pattern)
	}
}

func TestNodeMalformed(t *testing.T) {
	tests := map[string]*validation.Node{
		"nil":                nil,
		"missing kind":       {},
		"empty alternatives": validation.Alternatives(),
		"bad nested branch":  validation.Alternatives(validation.String(), &validation.Node{}),
	}

	for name, n := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Node(n)
			assert.ErrorIs(t, err, ErrMalformedNode)
		})
	}
}

func TestSchema(t *testing.T) {
	t.Run("nil schema", func(t *testing.T) {
		ds, err := Schema(nil)
		require.NoError(t, err)
		assert.Empty(t, ds)
	})

	t.Run("union of groups", func(t *testing.T) {
		s := validation.NewSchema().
			Params(validation.Key("id", validation.String())).
			Query(
				validation.Key("limit", validation.Number().Integer()),
				validation.Key("order_by", validation.String().As("orderBy")),
			).
			Body(validation.Key("name", validation.String().Require()))

		ds, err := Schema(s)
		require.NoError(t, err)
		require.Len(t, ds, 4)

		assert.Equal(t, "id", ds[0].Name)
		assert.Equal(t, validation.LocationParams, ds[0].In)
		assert.Equal(t, "limit", ds[1].Name)
		assert.Equal(t, "orderBy", ds[2].Name)
		assert.Equal(t, validation.LocationBody, ds[3].In)
		assert.True(t, ds[3].Required)
	})

	t.Run("repeated key keeps position", func(t *testing.T) {
		s := validation.NewSchema().
			Query(validation.Key("id", validation.String()), validation.Key("q", validation.String())).
			Params(validation.Key("id", validation.Number().Integer()))

		ds, err := Schema(s)
		require.NoError(t, err)
		require.Len(t, ds, 2)
		assert.Equal(t, "id", ds[0].Name)
		assert.Equal(t, validation.LocationParams, ds[0].In)
		assert.Equal(t, "integer", ds[0].Type)
	})

	t.Run("error names the field", func(t *testing.T) {
		s := validation.NewSchema().Query(validation.Key("broken", &validation.Node{}))

		_, err := Schema(s)
		require.ErrorIs(t, err, ErrMalformedNode)
		assert.Contains(t, err.Error(), "query.broken")
	})
}
