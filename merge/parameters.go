package merge

import (
	"slices"

	"github.com/vitalvas/swaggen/swagger"
)

// Parameters merges draft with persisted parameters. Parameters are matched
// by name; fields the draft leaves empty are filled from the persisted
// parameter and persisted parameters missing from the draft are kept.
// Body properties are merged the same way. The result never aliases its
// inputs.
func Parameters(draft, persisted []*swagger.Parameter) []*swagger.Parameter {
	draftParams, draftBody := splitBody(draft)
	persistedParams, persistedBody := splitBody(persisted)

	index := make(map[string]*swagger.Parameter, len(persistedParams))
	for _, p := range persistedParams {
		if _, ok := index[p.Name]; !ok {
			index[p.Name] = p
		}
	}

	out := make([]*swagger.Parameter, 0, len(draftParams)+len(persistedParams)+1)
	seen := make(map[string]bool, len(draftParams))

	for _, p := range draftParams {
		merged := cloneParameter(p)
		if old, ok := index[p.Name]; ok {
			fillParameter(merged, old)
		}
		seen[p.Name] = true
		out = append(out, merged)
	}

	for _, p := range persistedParams {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, cloneParameter(p))
	}

	if body := mergeBody(draftBody, persistedBody); body != nil {
		out = append(out, body)
	}

	return out
}

func splitBody(params []*swagger.Parameter) ([]*swagger.Parameter, *swagger.Parameter) {
	var body *swagger.Parameter
	rest := make([]*swagger.Parameter, 0, len(params))

	for _, p := range params {
		if p == nil {
			continue
		}
		if p.In == "body" {
			if body == nil {
				body = p
			}
			continue
		}
		rest = append(rest, p)
	}

	return rest, body
}

func mergeBody(draft, persisted *swagger.Parameter) *swagger.Parameter {
	switch {
	case draft == nil && persisted == nil:
		return nil
	case draft == nil:
		return cloneParameter(persisted)
	case persisted == nil:
		return cloneParameter(draft)
	}

	body := cloneParameter(draft)
	fillParameter(body, persisted)
	if draft.Schema == nil || persisted.Schema == nil {
		return body
	}

	schema := cloneSchema(draft.Schema)
	old := persisted.Schema
	fillSchema(schema, old)

	if schema.Properties == nil && len(old.Properties) > 0 {
		schema.Properties = make(map[string]*swagger.Schema, len(old.Properties))
	}
	for name, prop := range old.Properties {
		if current, ok := schema.Properties[name]; ok {
			fillSchema(current, prop)
			continue
		}
		schema.Properties[name] = cloneSchema(prop)
	}

	for _, name := range old.Required {
		if !slices.Contains(schema.Required, name) {
			schema.Required = append(schema.Required, name)
		}
	}

	body.Schema = schema

	return body
}

func cloneParameter(p *swagger.Parameter) *swagger.Parameter {
	c := *p
	c.Enum = slices.Clone(p.Enum)
	if p.Schema != nil {
		c.Schema = cloneSchema(p.Schema)
	}
	if p.Items != nil {
		c.Items = cloneSchema(p.Items)
	}

	return &c
}

func cloneSchema(s *swagger.Schema) *swagger.Schema {
	c := *s
	c.Enum = slices.Clone(s.Enum)
	c.Required = slices.Clone(s.Required)
	if s.Items != nil {
		c.Items = cloneSchema(s.Items)
	}
	if s.Properties != nil {
		c.Properties = make(map[string]*swagger.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			c.Properties[name] = cloneSchema(prop)
		}
	}

	return &c
}

// fillParameter copies into dst the fields it leaves empty.
func fillParameter(dst, src *swagger.Parameter) {
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.Format == "" {
		dst.Format = src.Format
	}
	if dst.CollectionFormat == "" {
		dst.CollectionFormat = src.CollectionFormat
	}
	if dst.Default == nil {
		dst.Default = src.Default
	}
	if dst.Pattern == "" {
		dst.Pattern = src.Pattern
	}
	if len(dst.Enum) == 0 && len(src.Enum) > 0 {
		dst.Enum = slices.Clone(src.Enum)
	}
	if dst.Items == nil && src.Items != nil {
		dst.Items = cloneSchema(src.Items)
	}
	if dst.Schema == nil && src.Schema != nil {
		dst.Schema = cloneSchema(src.Schema)
	}
}

// fillSchema copies into dst the fields it leaves empty.
func fillSchema(dst, src *swagger.Schema) {
	if dst.Ref == "" {
		dst.Ref = src.Ref
	}
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.Format == "" {
		dst.Format = src.Format
	}
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Default == nil {
		dst.Default = src.Default
	}
	if dst.Pattern == "" {
		dst.Pattern = src.Pattern
	}
	if len(dst.Enum) == 0 && len(src.Enum) > 0 {
		dst.Enum = slices.Clone(src.Enum)
	}
	if dst.Example == nil {
		dst.Example = src.Example
	}
	if dst.Items == nil && src.Items != nil {
		dst.Items = cloneSchema(src.Items)
	}
	if len(dst.Properties) == 0 && len(src.Properties) > 0 {
		dst.Properties = cloneSchema(src).Properties
	}
}
