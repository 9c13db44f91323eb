// Package routetable defines the view of a live routing table that route
// discovery needs, and a static implementation of it.
//
// Adapters for concrete routers live in the subpackages chiadapter,
// gorillaadapter and fiberadapter.
package routetable

import (
	"strings"

	"github.com/vitalvas/swaggen/pattern"
	"github.com/vitalvas/swaggen/validation"
)

// MethodAll is the pseudo-method of handlers that accept every method.
// Adapters report catch-all handlers under this name.
const MethodAll = "*"

// Table is a routing table that can list its top-level entries.
type Table interface {
	Entries() []Entry
}

// Entry is one routing table entry: either a terminal route answering a set
// of methods, or a mount holding a nested table.
type Entry interface {
	// Terminal reports whether the entry is a route rather than a mount.
	Terminal() bool
	// Methods lists the declared methods of a terminal entry.
	Methods() []string
	// Mounts lists the entries of a mounted table.
	Mounts() []Entry
	// Pattern is the matching pattern of the entry, relative to its mount.
	Pattern() pattern.Pattern
	// Schema returns the request schema attached for method, or nil.
	Schema(method string) *validation.Schema
}

type methodSchema struct {
	method string
	schema *validation.Schema
}

// Node is a static Entry. The zero value is an empty mount.
type Node struct {
	match    pattern.Pattern
	terminal bool
	methods  []methodSchema
	children []*Node
}

var (
	_ Table = (*Node)(nil)
	_ Entry = (*Node)(nil)
)

// New returns a root table holding entries.
func New(entries ...*Node) *Node {
	return &Node{children: entries}
}

// Route returns a terminal entry matching p.
func Route(p pattern.Pattern) *Node {
	return &Node{match: p, terminal: true}
}

// Mount returns a mount entry matching p and holding children.
func Mount(p pattern.Pattern, children ...*Node) *Node {
	return &Node{match: p, children: children}
}

// Handle declares method on a terminal entry with its request schema,
// which may be nil. Declaring a method twice replaces its schema.
func (n *Node) Handle(method string, schema *validation.Schema) *Node {
	for i := range n.methods {
		if n.methods[i].method == method {
			n.methods[i].schema = schema
			return n
		}
	}
	n.methods = append(n.methods, methodSchema{method: method, schema: schema})

	return n
}

// Add appends children to a mount.
func (n *Node) Add(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

func (n *Node) Entries() []Entry {
	return n.Mounts()
}

func (n *Node) Terminal() bool {
	return n.terminal
}

func (n *Node) Methods() []string {
	methods := make([]string, 0, len(n.methods))
	for _, m := range n.methods {
		methods = append(methods, m.method)
	}

	return methods
}

func (n *Node) Mounts() []Entry {
	entries := make([]Entry, 0, len(n.children))
	for _, c := range n.children {
		entries = append(entries, c)
	}

	return entries
}

func (n *Node) Pattern() pattern.Pattern {
	return n.match
}

func (n *Node) Schema(method string) *validation.Schema {
	for _, m := range n.methods {
		if strings.EqualFold(m.method, method) {
			return m.schema
		}
	}

	return nil
}
