// Package fiberadapter exposes a gofiber application as a routetable.Table.
package fiberadapter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/vitalvas/swaggen/pattern"
	"github.com/vitalvas/swaggen/routetable"
	"github.com/vitalvas/swaggen/validation"
)

// New builds a flat table from the routes registered on app, one entry per
// path in registration order. Fiber groups are already folded into the
// route paths, so the table has no mounts. HEAD routes registered
// alongside GET are left out. Fiber handlers cannot carry data, so schemas
// are looked up in registry by method and registered path.
func New(app *fiber.App, registry *validation.Registry) (*routetable.Node, error) {
	type declared struct {
		method string
		raw    string
	}

	root := routetable.New()
	byPath := make(map[string]*routetable.Node)
	methods := make(map[string][]declared)
	var order []string

	strict := app.Config().StrictRouting

	for _, rt := range app.GetRoutes(true) {
		path := rt.Path
		if !strict && len(path) > 1 {
			path = strings.TrimRight(path, "/")
		}

		if _, ok := byPath[path]; !ok {
			p, err := pattern.Compile(path, pattern.Options{})
			if err != nil {
				return nil, fmt.Errorf("fiberadapter: route %q: %w", rt.Path, err)
			}
			byPath[path] = routetable.Route(p)
			order = append(order, path)
		}

		if !slices.ContainsFunc(methods[path], func(d declared) bool { return d.method == rt.Method }) {
			methods[path] = append(methods[path], declared{method: rt.Method, raw: rt.Path})
		}
	}

	for _, path := range order {
		node := byPath[path]
		decl := methods[path]
		hasGet := slices.ContainsFunc(decl, func(d declared) bool { return d.method == fiber.MethodGet })
		for _, d := range decl {
			if d.method == fiber.MethodHead && hasGet {
				continue
			}
			schema := registry.Lookup(d.method, d.raw)
			if schema == nil {
				schema = registry.Lookup(d.method, path)
			}
			node.Handle(d.method, schema)
		}
		root.Add(node)
	}

	return root, nil
}
