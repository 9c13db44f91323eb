package discovery

import (
	"fmt"
	"testing"

	"github.com/vitalvas/swaggen/pattern"
	"github.com/vitalvas/swaggen/routetable"
	"github.com/vitalvas/swaggen/validation"
)

var endpointCounts = []int{5, 10, 50, 100, 500}

func benchTable(n int) *routetable.Node {
	schema := validation.NewSchema().Params(validation.Key("id", validation.String().Pattern(`^[0-9]+$`)))

	routes := make([]*routetable.Node, 0, n)
	for i := range n {
		routes = append(routes,
			routetable.Route(pattern.MustCompile(fmt.Sprintf("/resource-%d/{id}", i), pattern.Options{})).
				Handle("GET", schema).
				Handle("DELETE", nil),
		)
	}

	return routetable.New(
		routetable.Mount(pattern.MustCompile("/api/v1", pattern.Options{Prefix: true}), routes...),
	)
}

func BenchmarkWalk(b *testing.B) {
	for _, n := range endpointCounts {
		table := benchTable(n)
		b.Run(fmt.Sprintf("endpoints=%d", n), func(b *testing.B) {
			for b.Loop() {
				Walk(table)
			}
		})
	}
}
