package swagger

import (
	"bytes"
	"fmt"
	"maps"

	json "github.com/goccy/go-json"
	"sigs.k8s.io/yaml"
)

// knownKeys are the top-level keys modeled by Document fields.
var knownKeys = map[string]bool{
	"swagger": true, "info": true, "host": true, "basePath": true,
	"schemes": true, "consumes": true, "produces": true, "paths": true,
	"definitions": true, "tags": true,
}

// DefaultTemplate returns the base document used when none is configured.
func DefaultTemplate() *Document {
	return &Document{
		Swagger:  Version,
		Info:     &Info{Title: "API documentation", Version: "1.0.0"},
		BasePath: "/",
		Schemes:  []string{"http", "https"},
		Consumes: []string{"application/json"},
		Produces: []string{"application/json"},
		Paths:    make(map[string]PathItem),
	}
}

// Parse decodes a document from JSON or YAML.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("swagger: %w", err)
		}
		data = converted
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("swagger: %w", err)
	}
	if doc.Paths == nil {
		doc.Paths = make(map[string]PathItem)
	}

	return doc, nil
}

// documentFields avoids recursion into the custom codec.
type documentFields Document

// MarshalJSON encodes the document, merging Extra keys into the root.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.Paths == nil {
		d.Paths = map[string]PathItem{}
	}

	data, err := json.Marshal(documentFields(d))
	if err != nil || len(d.Extra) == 0 {
		return data, err
	}

	root := make(map[string]json.RawMessage, len(d.Extra)+len(knownKeys))
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, ok := root[k]; !ok {
			root[k] = v
		}
	}

	return json.Marshal(root)
}

// UnmarshalJSON decodes the document, keeping unknown keys in Extra. A
// numeric swagger version is read as its text.
func (d *Document) UnmarshalJSON(data []byte) error {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return err
	}

	if raw, ok := root["swagger"]; ok {
		if text := numberText(raw); string(text) != string(raw) {
			root["swagger"] = text
			normalized, err := json.Marshal(root)
			if err != nil {
				return err
			}
			data = normalized
		}
	}

	var fields documentFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for k := range root {
		if knownKeys[k] {
			delete(root, k)
		}
	}
	if len(root) > 0 {
		fields.Extra = root
	}

	*d = Document(fields)

	return nil
}

// JSON encodes the document as JSON indented with four spaces.
func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// YAML encodes the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}

	return yaml.JSONToYAML(data)
}

// Clone returns a copy of d whose paths, definitions and extra keys can be
// changed without affecting d.
func (d *Document) Clone() *Document {
	c := *d
	c.Paths = make(map[string]PathItem, len(d.Paths))
	for path, item := range d.Paths {
		c.Paths[path] = maps.Clone(item)
	}
	c.Definitions = maps.Clone(d.Definitions)
	c.Extra = maps.Clone(d.Extra)
	if d.Info != nil {
		info := *d.Info
		c.Info = &info
	}

	return &c
}

// SetOperation stores op under path and method.
func (d *Document) SetOperation(path, method string, op *Operation) {
	if d.Paths == nil {
		d.Paths = make(map[string]PathItem)
	}
	item, ok := d.Paths[path]
	if !ok {
		item = make(PathItem)
		d.Paths[path] = item
	}
	item[method] = op
}

// Operation returns the operation stored under path and method, or nil.
func (d *Document) Operation(path, method string) *Operation {
	return d.Paths[path][method]
}
