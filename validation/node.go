package validation

import (
	"regexp"
)

// Kind is the tag of a validation node.
type Kind string

const (
	KindAlternatives Kind = "alternatives"
	KindAny          Kind = "any"
	KindString       Kind = "string"
	KindNumber       Kind = "number"
	KindDate         Kind = "date"
	KindObject       Kind = "object"
	KindBoolean      Kind = "boolean"
	KindArray        Kind = "array"
)

// Test names recognized by the translator.
const (
	TestPattern  = "pattern"
	TestInteger  = "integer"
	TestPositive = "positive"
	TestMin      = "min"
	TestMax      = "max"
)

// Test is a single constraint attached to a node.
type Test struct {
	Name string
	Arg  any
}

// Field is a keyed child of an object node.
type Field struct {
	Key  string
	Node *Node
}

// Node describes the expected shape of one request value.
type Node struct {
	Kind     Kind
	Tests    []Test
	Allowed  []any
	Default  any
	Notes    []string
	Required bool
	// Rename is the documented name when it differs from the key.
	Rename string
	// Fields holds object children in declaration order.
	Fields []Field
	// Matches holds the branches of an alternatives node.
	Matches []*Node
}

func newNode(kind Kind) *Node {
	return &Node{Kind: kind}
}

func String() *Node { return newNode(KindString) }
func Number() *Node { return newNode(KindNumber) }
func Date() *Node { return newNode(KindDate) }
func Boolean() *Node { return newNode(KindBoolean) }
func Array() *Node { return newNode(KindArray) }
func Any() *Node { return newNode(KindAny) }

// Object returns an object node with the given keyed children.
func Object(fields ...Field) *Node {
	n := newNode(KindObject)
	n.Fields = fields
	return n
}

// Alternatives returns a node matching any one of branches.
func Alternatives(branches ...*Node) *Node {
	n := newNode(KindAlternatives)
	n.Matches = branches
	return n
}

// Key pairs a key with its node for use in Object and Schema groups.
func Key(key string, n *Node) Field {
	return Field{Key: key, Node: n}
}

// Pattern adds a regular expression constraint. It panics if expr does not
// compile, like regexp.MustCompile.
func (n *Node) Pattern(expr string) *Node {
	n.Tests = append(n.Tests, Test{Name: TestPattern, Arg: regexp.MustCompile(expr)})
	return n
}

func (n *Node) Integer() *Node {
	n.Tests = append(n.Tests, Test{Name: TestInteger})
	return n
}

func (n *Node) Positive() *Node {
	n.Tests = append(n.Tests, Test{Name: TestPositive})
	return n
}

func (n *Node) Min(v float64) *Node {
	n.Tests = append(n.Tests, Test{Name: TestMin, Arg: v})
	return n
}

func (n *Node) Max(v float64) *Node {
	n.Tests = append(n.Tests, Test{Name: TestMax, Arg: v})
	return n
}

// Valid restricts the node to the given values.
func (n *Node) Valid(values ...any) *Node {
	n.Allowed = append(n.Allowed, values...)
	return n
}

// Description appends a note; notes are joined when documented.
func (n *Node) Description(note string) *Node {
	n.Notes = append(n.Notes, note)
	return n
}

func (n *Node) DefaultValue(v any) *Node {
	n.Default = v
	return n
}

func (n *Node) Require() *Node {
	n.Required = true
	return n
}

// As documents the node under a different name than its key.
func (n *Node) As(name string) *Node {
	n.Rename = name
	return n
}

// PatternTest returns the regexp of the node's only test when that test is a
// pattern constraint.
func (n *Node) PatternTest() (*regexp.Regexp, bool) {
	if len(n.Tests) != 1 || n.Tests[0].Name != TestPattern {
		return nil, false
	}
	re, ok := n.Tests[0].Arg.(*regexp.Regexp)

	return re, ok
}

// HasTest reports whether a test with the given name is attached.
func (n *Node) HasTest(name string) bool {
	for _, t := range n.Tests {
		if t.Name == name {
			return true
		}
	}

	return false
}
