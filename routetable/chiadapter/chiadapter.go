// Package chiadapter exposes a go-chi router as a routetable.Table.
package chiadapter

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vitalvas/swaggen/pattern"
	"github.com/vitalvas/swaggen/routetable"
	"github.com/vitalvas/swaggen/validation"
)

// New builds a table from the routes of r. Mounted routers become mounts;
// handlers registered for every method (Handle, HandleFunc) are reported
// under routetable.MethodAll only. Schemas are read from handlers that
// implement validation.Carrier, looking through middleware chains.
func New(r chi.Routes) (*routetable.Node, error) {
	children, err := entries(r)
	if err != nil {
		return nil, err
	}

	return routetable.New(children...), nil
}

func entries(r chi.Routes) ([]*routetable.Node, error) {
	routes := r.Routes()

	mounts := make(map[string]bool)
	for _, rt := range routes {
		if rt.SubRoutes != nil {
			mounts[mountBase(rt.Pattern)] = true
		}
	}

	var nodes []*routetable.Node
	for _, rt := range routes {
		if rt.SubRoutes != nil {
			p, err := pattern.Compile(mountBase(rt.Pattern), pattern.Options{Prefix: true})
			if err != nil {
				return nil, fmt.Errorf("chiadapter: mount %q: %w", rt.Pattern, err)
			}
			children, err := entries(rt.SubRoutes)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, routetable.Mount(p, children...))
			continue
		}

		// Mount registers stub routes at the mount point itself.
		if mounts[strings.TrimSuffix(rt.Pattern, "/")] {
			continue
		}

		p, err := pattern.Compile(rt.Pattern, pattern.Options{})
		if err != nil {
			return nil, fmt.Errorf("chiadapter: route %q: %w", rt.Pattern, err)
		}

		node := routetable.Route(p)
		if h, ok := rt.Handlers[routetable.MethodAll]; ok {
			node.Handle(routetable.MethodAll, schemaOf(h))
		} else {
			for _, method := range sortedMethods(rt.Handlers) {
				node.Handle(method, schemaOf(rt.Handlers[method]))
			}
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// mountBase strips the catch-all suffix chi appends to mount patterns.
func mountBase(p string) string {
	return strings.TrimSuffix(strings.TrimSuffix(p, "*"), "/")
}

func schemaOf(h http.Handler) *validation.Schema {
	for {
		if s := validation.SchemaOf(h); s != nil {
			return s
		}
		chain, ok := h.(*chi.ChainHandler)
		if !ok {
			return nil
		}
		h = chain.Endpoint
	}
}

// methodOrder is the order methods are documented in.
var methodOrder = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
	http.MethodConnect, http.MethodTrace,
}

func sortedMethods(handlers map[string]http.Handler) []string {
	methods := make([]string, 0, len(handlers))
	for m := range handlers {
		methods = append(methods, m)
	}

	slices.SortFunc(methods, func(a, b string) int {
		ia, ib := slices.Index(methodOrder, a), slices.Index(methodOrder, b)
		if ia < 0 {
			ia = len(methodOrder)
		}
		if ib < 0 {
			ib = len(methodOrder)
		}
		if ia != ib {
			return ia - ib
		}
		return strings.Compare(a, b)
	})

	return methods
}
