// Package translate converts validation schemas into Swagger parameter
// descriptions.
package translate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vitalvas/swaggen/validation"
)

// ErrMalformedNode is returned for nodes that cannot be described at all.
var ErrMalformedNode = errors.New("malformed validation node")

// Descriptor is the documentation-ready description of one request value.
type Descriptor struct {
	Name        string
	In          string
	Type        string
	Description string
	Required    bool
	Default     any
	Values      []any
	Pattern     string
	Format      string
	// Alternatives holds the branch descriptions of an alternatives node.
	Alternatives []Descriptor
}

// Node translates a single validation node.
func Node(n *validation.Node) (Descriptor, error) {
	if n == nil {
		return Descriptor{}, fmt.Errorf("%w: nil node", ErrMalformedNode)
	}

	description := strings.Join(n.Notes, ", ")

	switch n.Kind {
	case "":
		return Descriptor{}, fmt.Errorf("%w: missing kind", ErrMalformedNode)

	case validation.KindAlternatives:
		if len(n.Matches) == 0 {
			return Descriptor{}, fmt.Errorf("%w: alternatives without branches", ErrMalformedNode)
		}
		branches := make([]Descriptor, 0, len(n.Matches))
		for _, m := range n.Matches {
			d, err := Node(m)
			if err != nil {
				return Descriptor{}, err
			}
			branches = append(branches, d)
		}
		return Descriptor{
			Description:  description,
			Default:      n.Default,
			Required:     n.Required,
			Alternatives: branches,
		}, nil

	case validation.KindAny:
		return emitDefault(n, string(n.Kind), description), nil

	case validation.KindString:
		d := emitDefault(n, string(n.Kind), description)
		if re, ok := n.PatternTest(); ok {
			d.Pattern = re.String()
		}
		return d, nil

	case validation.KindDate:
		d := emitDefault(n, "string", description)
		d.Format = "date-time"
		return d, nil

	case validation.KindNumber:
		typ := string(n.Kind)
		if n.HasTest(validation.TestInteger) {
			typ = "integer"
		}
		if n.HasTest(validation.TestPositive) {
			description = strings.TrimSpace(description + " positive")
		}
		return emitDefault(n, typ, description), nil

	default:
		return emitDefault(n, string(n.Kind), description), nil
	}
}

// emitDefault is the description shared by every kind without its own rules.
func emitDefault(n *validation.Node, typ, description string) Descriptor {
	return Descriptor{
		Type:        typ,
		Description: description,
		Default:     n.Default,
		Values:      n.Allowed,
		Required:    n.Required,
	}
}

// Schema translates every location group of s into one list. A key declared
// in more than one group keeps its first position and takes the later
// description.
func Schema(s *validation.Schema) ([]Descriptor, error) {
	if s == nil {
		return nil, nil
	}

	var out []Descriptor
	index := make(map[string]int)

	for _, g := range s.Groups {
		if g.Node == nil {
			return nil, fmt.Errorf("%w: empty %s group", ErrMalformedNode, g.Location)
		}
		for _, f := range g.Node.Fields {
			d, err := Node(f.Node)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", g.Location, f.Key, err)
			}
			d.Name = f.Key
			if f.Node.Rename != "" {
				d.Name = f.Node.Rename
			}
			d.In = g.Location

			if i, ok := index[f.Key]; ok {
				out[i] = d
				continue
			}
			index[f.Key] = len(out)
			out = append(out, d)
		}
	}

	return out, nil
}
