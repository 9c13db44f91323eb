// Package gorillaadapter exposes a gorilla/mux router as a routetable.Table.
package gorillaadapter

import (
	"fmt"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vitalvas/swaggen/pattern"
	"github.com/vitalvas/swaggen/routetable"
	"github.com/vitalvas/swaggen/validation"
)

// New builds a table from r. Routes holding a subrouter become mounts whose
// pattern is their own share of the path regexp; routes with a handler
// become terminal entries. Routes without a method matcher are reported
// under routetable.MethodAll. Schemas come from handlers implementing
// validation.Carrier, falling back to registry when it is not nil.
func New(r *mux.Router, registry *validation.Registry) (*routetable.Node, error) {
	root := routetable.New()
	seen := make(map[*mux.Route]*visited)

	err := r.Walk(func(route *mux.Route, _ *mux.Router, ancestors []*mux.Route) error {
		full, allNames, err := routeRegexp(route)
		if err != nil {
			return fmt.Errorf("gorillaadapter: %w", err)
		}

		expr, names := full, allNames

		parent := root
		if len(ancestors) > 0 {
			owner, ok := seen[ancestors[len(ancestors)-1]]
			if !ok {
				return fmt.Errorf("gorillaadapter: subrouter visited before its route")
			}
			parent = owner.node
			expr, names = relative(owner, expr, names)
		}

		p := pattern.Pattern{Expr: expr, Names: names}
		handler := route.GetHandler()

		var node *routetable.Node
		if handler == nil {
			node = routetable.Mount(p)
		} else {
			node = routetable.Route(p)
			methods, err := route.GetMethods()
			if err != nil || len(methods) == 0 {
				methods = []string{routetable.MethodAll}
			}
			tpl, _ := route.GetPathTemplate()
			for _, m := range methods {
				schema := validation.SchemaOf(handler)
				if schema == nil {
					schema = registry.Lookup(m, tpl)
				}
				node.Handle(m, schema)
			}
		}

		parent.Add(node)
		seen[route] = &visited{node: node, expr: full, names: len(allNames)}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return root, nil
}

type visited struct {
	node  *routetable.Node
	expr  string
	names int
}

// routeRegexp returns the full path regexp and variable names of route.
// Routes without a path matcher have an empty expression.
func routeRegexp(route *mux.Route) (string, []string, error) {
	expr, err := route.GetPathRegexp()
	if err != nil {
		if route.GetError() != nil {
			return "", nil, route.GetError()
		}
		return "", nil, nil
	}

	names, err := route.GetVarNames()
	if err != nil {
		return "", nil, err
	}

	return expr, names, nil
}

// relative strips the parent's share of a subrouter route's regexp. The
// parent's variables come first in names and are dropped with it.
func relative(parent *visited, expr string, names []string) (string, []string) {
	base := strings.TrimSuffix(parent.expr, "$")
	if base == "" || !strings.HasPrefix(expr, base) {
		return expr, names
	}

	rest := "^" + strings.TrimPrefix(expr, base)
	if parent.names <= len(names) {
		names = names[parent.names:]
	}

	return rest, names
}
