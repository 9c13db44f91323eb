package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		pattern  Pattern
		expected string
	}{
		{
			name:     "plain capture",
			pattern:  Pattern{Expr: `^/users/([^/]+)$`, Names: []string{"id"}},
			expected: "/users/{id}",
		},
		{
			name:     "named capture",
			pattern:  Pattern{Expr: `^/users/(?P<v0>[^/]+)/posts/(?P<v1>[0-9]+)$`, Names: []string{"id", "post"}},
			expected: "/users/{id}/posts/{post}",
		},
		{
			name:     "escaped separators with wrapped capture",
			pattern:  Pattern{Expr: `^\/users\/(?:([^\/]+?))\/?$`, Names: []string{"id"}},
			expected: "/users/{id}",
		},
		{
			name:     "mount with lookahead",
			pattern:  Pattern{Expr: `^\/api\/v1\/?(?=\/|$)`},
			expected: "/api/v1",
		},
		{
			name:     "prefix without end anchor",
			pattern:  Pattern{Expr: `^/api`},
			expected: "/api",
		},
		{
			name:     "strict slash group",
			pattern:  Pattern{Expr: `^/users/([^/]+)[/]?$`, Names: []string{"id"}},
			expected: "/users/{id}",
		},
		{
			name:     "nested groups inside capture",
			pattern:  Pattern{Expr: `^/d/((?:[a-z]+\.)*[a-z]+)$`, Names: []string{"domain"}},
			expected: "/d/{domain}",
		},
		{
			name:     "escaped dot",
			pattern:  Pattern{Expr: `^/v1\.0/ping$`},
			expected: "/v1.0/ping",
		},
		{
			name:     "escaped braces and dot",
			pattern:  Pattern{Expr: `^/a\{b\}\.json/([^/]+)$`, Names: []string{"id"}},
			expected: "/a{b}.json/{id}",
		},
		{
			name:     "flags are ignored",
			pattern:  Pattern{Expr: `(?i)^/Users$`},
			expected: "/Users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := Decode(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestDecodeLiteralIsIdempotent(t *testing.T) {
	for _, path := range []string{"/", "/users", "/users/list", "/a-b/c_d/e~f"} {
		t.Run(path, func(t *testing.T) {
			decoded, err := Decode(Pattern{Expr: path})
			require.NoError(t, err)
			assert.Equal(t, path, decoded)

			again, err := Decode(Pattern{Expr: decoded})
			require.NoError(t, err)
			assert.Equal(t, decoded, again)
		})
	}
}

func TestDecodeNoPath(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
	}{
		{name: "catch-all without names", pattern: Pattern{Expr: `^(.*)`}},
		{name: "more captures than names", pattern: Pattern{Expr: `^/a/([^/]+)/([^/]+)$`, Names: []string{"x"}}},
		{name: "empty name", pattern: Pattern{Expr: `^/a/([^/]+)$`, Names: []string{""}}},
		{name: "alternation", pattern: Pattern{Expr: `^/(?:a|b)$`}},
		{name: "character class", pattern: Pattern{Expr: `^/a[bc]$`}},
		{name: "optional group", pattern: Pattern{Expr: `^/a(?:/b)?$`}},
		{name: "optional capture", pattern: Pattern{Expr: `^/a/([^/]+)?$`, Names: []string{"x"}}},
		{name: "unbalanced", pattern: Pattern{Expr: `^/a/([^/]+$`, Names: []string{"x"}}},
		{name: "quantifier", pattern: Pattern{Expr: `^/a{2}$`}},
		{name: "quantified capture", pattern: Pattern{Expr: `^/a/([^/]+){2}$`, Names: []string{"x"}}},
		{name: "unescaped dot", pattern: Pattern{Expr: `^/a.b$`}},
		{name: "unescaped braces", pattern: Pattern{Expr: `^/a/{id}$`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.pattern)
			assert.ErrorIs(t, err, ErrNoPath)
		})
	}
}

func TestCompileDecodeRoundTrip(t *testing.T) {
	tests := map[string]string{
		"/users/{id}":          "/users/{id}",
		"/users/{id:uuid}":     "/users/{id}",
		"/users/:id/posts":     "/users/{id}/posts",
		"/files/*":             "/files/{*}",
		"/v2/{domain:domain}/": "/v2/{domain}/",
	}

	for tpl, expected := range tests {
		t.Run(tpl, func(t *testing.T) {
			path, err := Decode(MustCompile(tpl, Options{}))
			require.NoError(t, err)
			assert.Equal(t, expected, path)
		})
	}
}
