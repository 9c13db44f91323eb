package pattern

import (
	"regexp"
	"strconv"
	"sync"
)

// memo builds a value once per key and shares it afterwards. Failed builds
// are not stored, so a later call retries.
type memo[V any] struct {
	m sync.Map
}

func (c *memo[V]) get(key string, build func() (V, error)) (V, error) {
	if v, ok := c.m.Load(key); ok {
		return v.(V), nil
	}

	v, err := build()
	if err != nil {
		return v, err
	}

	actual, _ := c.m.LoadOrStore(key, v)

	return actual.(V), nil
}

// Both caches are bounded by the routes of the tables being documented.
var (
	regexps   memo[*regexp.Regexp]
	templates memo[Pattern]
)

func compileRegexp(expr string) (*regexp.Regexp, error) {
	return regexps.get(expr, func() (*regexp.Regexp, error) {
		return regexp.Compile(expr)
	})
}

func templateKey(tpl string, opts Options) string {
	return strconv.FormatBool(opts.Prefix) + strconv.FormatBool(opts.StrictSlash) + "\x00" + tpl
}
