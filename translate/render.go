package translate

import (
	"fmt"
	"strings"

	"github.com/vitalvas/swaggen/swagger"
	"github.com/vitalvas/swaggen/validation"
)

// BodyName is the name of the synthetic parameter holding body fields.
const BodyName = "body"

const defaultType = "string"

// locations maps validation locations onto Swagger "in" values.
var locations = map[string]string{
	validation.LocationParams:  "path",
	validation.LocationQuery:   "query",
	validation.LocationHeaders: "header",
	validation.LocationBody:    "body",
}

// Render converts descriptors into Swagger parameters. Path parameters are
// always required. Body fields become properties of one "body" parameter
// placed after all others.
func Render(ds []Descriptor) []*swagger.Parameter {
	params := make([]*swagger.Parameter, 0, len(ds))
	var body *swagger.Schema

	for _, d := range ds {
		in := location(d.In)

		if in == "body" {
			if body == nil {
				body = &swagger.Schema{Type: "object", Properties: make(map[string]*swagger.Schema)}
			}
			body.Properties[d.Name] = property(d)
			if d.Required {
				body.Required = append(body.Required, d.Name)
			}
			continue
		}

		p := &swagger.Parameter{
			Name:        d.Name,
			In:          in,
			Description: description(d),
			Required:    in == "path" || d.Required,
			Type:        typeOf(d),
			Format:      d.Format,
			Default:     d.Default,
			Pattern:     d.Pattern,
		}
		if len(d.Values) > 0 {
			p.Enum = d.Values
		}
		params = append(params, p)
	}

	if body != nil {
		params = append(params, &swagger.Parameter{Name: BodyName, In: "body", Schema: body})
	}

	return params
}

// property renders a body field.
func property(d Descriptor) *swagger.Schema {
	s := &swagger.Schema{
		Type:        typeOf(d),
		Description: description(d),
		Default:     d.Default,
		Format:      d.Format,
		Pattern:     d.Pattern,
	}
	if len(d.Values) > 0 {
		s.Enum = d.Values
	}

	return s
}

func location(in string) string {
	if l, ok := locations[in]; ok {
		return l
	}

	return in
}

func typeOf(d Descriptor) string {
	if d.Type == "" {
		return defaultType
	}

	return d.Type
}

// description falls back to the allowed values when no notes are given.
// Alternatives read "<type> <description> or <type> <description>".
func description(d Descriptor) string {
	if len(d.Alternatives) > 0 {
		parts := make([]string, 0, len(d.Alternatives))
		for _, alt := range d.Alternatives {
			parts = append(parts, strings.TrimSpace(typeOf(alt)+" "+description(alt)))
		}
		return strings.Join(parts, " or ")
	}

	if d.Description != "" {
		return d.Description
	}

	if len(d.Values) > 0 {
		values := make([]string, 0, len(d.Values))
		for _, v := range d.Values {
			values = append(values, fmt.Sprint(v))
		}
		return strings.Join(values, ", ")
	}

	return ""
}
