// Package discovery walks a routing table and flattens it into the list of
// documented endpoints.
package discovery

import (
	"strings"

	"go.uber.org/zap"

	"github.com/vitalvas/swaggen/pattern"
	"github.com/vitalvas/swaggen/routetable"
	"github.com/vitalvas/swaggen/validation"
)

// MethodEntry is one method of a discovered route with its request schema.
type MethodEntry struct {
	Method string
	Schema *validation.Schema
}

// RouteEntry is one discovered route.
type RouteEntry struct {
	// Path is the full path template, e.g. "/users/{id}".
	Path    string
	Methods []MethodEntry
}

// Walker discovers routes in a routing table.
type Walker struct {
	logger *zap.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets the logger used to report skipped entries.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// New creates a Walker.
func New(opts ...Option) *Walker {
	w := &Walker{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk returns the routes of t in discovery order using a default Walker.
func Walk(t routetable.Table) []RouteEntry {
	return New().Walk(t)
}

// Walk returns the routes of t in discovery order. Routes reachable through
// two mounts are reported twice. Routes whose pattern cannot be decoded and
// routes under a wildcard are left out; a mount whose pattern cannot be
// decoded contributes nothing to the paths beneath it.
func (w *Walker) Walk(t routetable.Table) []RouteEntry {
	var routes []RouteEntry
	w.walk(t.Entries(), "", &routes)

	return routes
}

func (w *Walker) walk(entries []routetable.Entry, prefix string, routes *[]RouteEntry) {
	for _, e := range entries {
		segment, err := pattern.Decode(e.Pattern())

		if !e.Terminal() {
			next := prefix
			if err != nil {
				w.logger.Debug("mount pattern not decoded, keeping prefix",
					zap.String("prefix", prefix),
					zap.String("pattern", e.Pattern().Expr),
				)
			} else {
				next = joinPath(prefix, segment)
			}
			w.walk(e.Mounts(), next, routes)
			continue
		}

		if err != nil {
			w.logger.Debug("route pattern not decoded, skipping",
				zap.String("prefix", prefix),
				zap.String("pattern", e.Pattern().Expr),
			)
			continue
		}

		path := joinPath(prefix, segment)
		if strings.Contains(path, "*") {
			w.logger.Debug("wildcard route skipped", zap.String("path", path))
			continue
		}

		*routes = append(*routes, RouteEntry{
			Path:    path,
			Methods: methodEntries(e),
		})
	}
}

func methodEntries(e routetable.Entry) []MethodEntry {
	declared := e.Methods()
	methods := make([]MethodEntry, 0, len(declared))
	for _, m := range declared {
		if isCatchAll(m) {
			continue
		}
		methods = append(methods, MethodEntry{
			Method: strings.ToLower(m),
			Schema: e.Schema(m),
		})
	}

	return methods
}

func isCatchAll(method string) bool {
	return method == routetable.MethodAll || strings.EqualFold(method, "_all") || strings.EqualFold(method, "all")
}

// joinPath appends a decoded segment to a prefix without doubling slashes.
// A bare "/" under a non-empty prefix adds nothing.
func joinPath(prefix, segment string) string {
	switch {
	case prefix == "" && segment == "":
		return "/"
	case prefix == "":
		return segment
	case segment == "" || segment == "/":
		return prefix
	}

	if !strings.HasPrefix(segment, "/") {
		segment = "/" + segment
	}

	return strings.TrimSuffix(prefix, "/") + segment
}
