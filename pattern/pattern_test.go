package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		tpl      string
		opts     Options
		expr     string
		names    []string
		match    []string
		notMatch []string
	}{
		{
			name:  "literal",
			tpl:   "/users/list",
			expr:  `^/users/list$`,
			match: []string{"/users/list"},
		},
		{
			name:     "brace variable",
			tpl:      "/users/{id}",
			expr:     `^/users/([^/]+)$`,
			names:    []string{"id"},
			match:    []string{"/users/42"},
			notMatch: []string{"/users/42/x"},
		},
		{
			name:     "brace variable with macro",
			tpl:      "/users/{id:int}",
			expr:     `^/users/([0-9]+)$`,
			names:    []string{"id"},
			match:    []string{"/users/42"},
			notMatch: []string{"/users/abc"},
		},
		{
			name:  "colon variable",
			tpl:   "/users/:id/posts/:post",
			expr:  `^/users/([^/]+)/posts/([^/]+)$`,
			names: []string{"id", "post"},
			match: []string{"/users/1/posts/2"},
		},
		{
			name:     "colon variable with constraint",
			tpl:      "/users/:id<int>",
			expr:     `^/users/([0-9]+)$`,
			names:    []string{"id"},
			notMatch: []string{"/users/x"},
		},
		{
			name:  "wildcard",
			tpl:   "/static/*",
			expr:  `^/static/(.*)$`,
			names: []string{WildcardName},
			match: []string{"/static/a/b.css"},
		},
		{
			name:  "prefix",
			tpl:   "/api",
			opts:  Options{Prefix: true},
			expr:  `^/api`,
			match: []string{"/api/users"},
		},
		{
			name:  "strict slash",
			tpl:   "/users/",
			opts:  Options{StrictSlash: true},
			expr:  `^/users[/]?$`,
			match: []string{"/users", "/users/"},
		},
		{
			name:  "dots are escaped",
			tpl:   "/v1.0/ping",
			expr:  `^/v1\.0/ping$`,
			match: []string{"/v1.0/ping"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.tpl, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, p.Expr)
			assert.Equal(t, tt.names, p.Names)

			re, err := p.Regexp()
			require.NoError(t, err)
			for _, s := range tt.match {
				assert.True(t, re.MatchString(s), s)
			}
			for _, s := range tt.notMatch {
				assert.False(t, re.MatchString(s), s)
			}
		})
	}

	t.Run("errors", func(t *testing.T) {
		for _, tpl := range []string{"/users/{", "/users/{:int}", "/{id}/{id}", "/users/:id<int", "/x/{id:[0-9}"} {
			_, err := Compile(tpl, Options{})
			assert.Error(t, err, tpl)
		}
	})

	t.Run("must compile panics", func(t *testing.T) {
		assert.Panics(t, func() { MustCompile("/{", Options{}) })
	})
}

func TestCompileRegexpCache(t *testing.T) {
	re1, err := compileRegexp(`^cached-test-[a-z]+$`)
	require.NoError(t, err)
	re2, err := compileRegexp(`^cached-test-[a-z]+$`)
	require.NoError(t, err)
	assert.Same(t, re1, re2)

	_, err = compileRegexp(`^([0-9+$`)
	assert.Error(t, err)
}

func TestCompileTemplateCache(t *testing.T) {
	p1, err := Compile("/cached/{id}", Options{})
	require.NoError(t, err)
	p2, err := Compile("/cached/{id}", Options{})
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	p1.Names[0] = "changed"
	p3, err := Compile("/cached/{id}", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, p3.Names)

	mount, err := Compile("/cached/{id}", Options{Prefix: true})
	require.NoError(t, err)
	assert.NotEqual(t, p3.Expr, mount.Expr)
}
