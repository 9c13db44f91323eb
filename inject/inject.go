// Package inject attaches statically recovered error outcomes to the
// responses of documented operations.
package inject

import (
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vitalvas/swaggen/errscan"
	"github.com/vitalvas/swaggen/pattern"
	"github.com/vitalvas/swaggen/swagger"
)

var keyPattern = regexp.MustCompile(`^/?v?\d*/([a-z0-9]+)(/.+)?`)

// Key splits a documented path into its resource segment and the remainder
// after it, skipping a leading version segment. "/v1/users/{id}" yields
// "users" and "/{id}"; the remainder of "/users" is "/".
func Key(p string) (resource, rest string, ok bool) {
	m := keyPattern.FindStringSubmatch(p)
	if m == nil {
		return "", "", false
	}

	rest = m[2]
	if rest == "" {
		rest = "/"
	}

	return m[1], rest, true
}

// Injector resolves documented routes to extracted outcomes.
type Injector struct {
	files  map[string]*errscan.FileResult
	logger *zap.Logger
}

// Option configures an Injector.
type Option func(*Injector)

func WithLogger(logger *zap.Logger) Option {
	return func(in *Injector) {
		in.logger = logger
	}
}

// New indexes results by resource. A nested resource such as "admin/roles"
// also answers for "roles" unless a top-level file claims it.
func New(results []errscan.FileResult, opts ...Option) *Injector {
	in := &Injector{
		files:  make(map[string]*errscan.FileResult, len(results)),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(in)
	}

	for i := range results {
		r := &results[i]
		in.files[r.Resource] = r
	}
	for i := range results {
		r := &results[i]
		if base := path.Base(r.Resource); base != r.Resource {
			if _, ok := in.files[base]; !ok {
				in.files[base] = r
			}
		}
	}

	return in
}

// Lookup returns the outcomes extracted for a documented path and method.
func (in *Injector) Lookup(p, method string) ([]errscan.Outcome, bool) {
	resource, rest, ok := Key(p)
	if !ok {
		return nil, false
	}

	file, ok := in.files[resource]
	if !ok {
		return nil, false
	}

	for _, r := range file.Routes {
		if normalize(r.Route) != rest {
			continue
		}
		outcomes, ok := r.Methods[strings.ToLower(method)]
		return outcomes, ok
	}

	return nil, false
}

// Apply rewrites the responses of every matched operation and returns how
// many operations were changed. Responses for status codes without
// outcomes are kept.
func (in *Injector) Apply(paths map[string]swagger.PathItem) int {
	changed := 0

	for p, item := range paths {
		for method, op := range item {
			outcomes, ok := in.Lookup(p, method)
			if !ok || len(outcomes) == 0 {
				continue
			}

			if op.Responses == nil {
				op.Responses = make(map[string]*swagger.Response)
			}
			for code, resp := range Responses(outcomes) {
				op.Responses[code] = resp
			}
			changed++

			in.logger.Debug("outcomes injected",
				zap.String("path", p),
				zap.String("method", method),
				zap.Int("outcomes", len(outcomes)),
			)
		}
	}

	return changed
}

// Responses groups outcomes by status code. Each response is described by
// the distinct kinds sharing its code.
func Responses(outcomes []errscan.Outcome) map[string]*swagger.Response {
	kinds := make(map[int][]string)
	for _, o := range outcomes {
		if !slices.Contains(kinds[o.Status], o.Kind) {
			kinds[o.Status] = append(kinds[o.Status], o.Kind)
		}
	}

	out := make(map[string]*swagger.Response, len(kinds))
	for status, names := range kinds {
		out[strconv.Itoa(status)] = &swagger.Response{Description: strings.Join(names, ", ")}
	}

	return out
}

// normalize rewrites a registered route into template form, "/:id" into
// "/{id}". Routes that do not compile are compared verbatim.
func normalize(route string) string {
	p, err := pattern.Compile(route, pattern.Options{})
	if err != nil {
		return route
	}

	decoded, err := pattern.Decode(p)
	if err != nil || decoded == "" {
		return route
	}

	return decoded
}
