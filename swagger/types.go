package swagger

import (
	json "github.com/goccy/go-json"
)

// Version is the value of the swagger field of generated documents.
const Version = "2.0"

// Document is the root of a Swagger 2.0 document.
//
// See: https://swagger.io/specification/v2/#swagger-object
type Document struct {
	Swagger     string                     `json:"swagger"`
	Info        *Info                      `json:"info,omitempty"`
	Host        string                     `json:"host,omitempty"`
	BasePath    string                     `json:"basePath,omitempty"`
	Schemes     []string                   `json:"schemes,omitempty"`
	Consumes    []string                   `json:"consumes,omitempty"`
	Produces    []string                   `json:"produces,omitempty"`
	Paths       map[string]PathItem        `json:"paths"`
	Definitions map[string]json.RawMessage `json:"definitions,omitempty"`
	Tags        []Tag                      `json:"tags,omitempty"`

	// Extra holds top-level keys not modeled above.
	Extra map[string]json.RawMessage `json:"-"`
}

// Info provides metadata about the API.
//
// See: https://swagger.io/specification/v2/#info-object
type Info struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty"`
	License        *License `json:"license,omitempty"`
	Version        string   `json:"version"`
}

type infoFields Info

// UnmarshalJSON decodes the info object, reading a numeric version as its
// text.
func (i *Info) UnmarshalJSON(data []byte) error {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return err
	}

	if raw, ok := root["version"]; ok {
		root["version"] = numberText(raw)
		normalized, err := json.Marshal(root)
		if err != nil {
			return err
		}
		data = normalized
	}

	var fields infoFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*i = Info(fields)

	return nil
}

// Contact information for the exposed API.
//
// See: https://swagger.io/specification/v2/#contact-object
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License information for the exposed API.
//
// See: https://swagger.io/specification/v2/#license-object
type License struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Tag adds metadata to a tag used by operations.
//
// See: https://swagger.io/specification/v2/#tag-object
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PathItem maps lower-case method names to operations.
//
// See: https://swagger.io/specification/v2/#path-item-object
type PathItem map[string]*Operation

// Operation describes a single API operation on a path.
//
// See: https://swagger.io/specification/v2/#operation-object
type Operation struct {
	Tags        []string             `json:"tags,omitempty"`
	Summary     string               `json:"summary,omitempty"`
	Description string               `json:"description,omitempty"`
	OperationID string               `json:"operationId,omitempty"`
	Consumes    []string             `json:"consumes,omitempty"`
	Produces    []string             `json:"produces,omitempty"`
	Parameters  []*Parameter         `json:"parameters"`
	Responses   map[string]*Response `json:"responses"`
	Deprecated  bool                 `json:"deprecated,omitempty"`
}

// Parameter describes a single operation parameter. Parameters in "body"
// carry a Schema; all others carry Type and the validation keywords.
//
// See: https://swagger.io/specification/v2/#parameter-object
type Parameter struct {
	Name             string  `json:"name"`
	In               string  `json:"in"`
	Description      string  `json:"description,omitempty"`
	Required         bool    `json:"required,omitempty"`
	Schema           *Schema `json:"schema,omitempty"`
	Type             string  `json:"type,omitempty"`
	Format           string  `json:"format,omitempty"`
	Items            *Schema `json:"items,omitempty"`
	CollectionFormat string  `json:"collectionFormat,omitempty"`
	Default          any     `json:"default,omitempty"`
	Pattern          string  `json:"pattern,omitempty"`
	Enum             []any   `json:"enum,omitempty"`
}

// Schema is the subset of the Swagger schema object the generator emits
// and merges.
//
// See: https://swagger.io/specification/v2/#schema-object
type Schema struct {
	Ref         string             `json:"$ref,omitempty"`
	Type        string             `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Default     any                `json:"default,omitempty"`
	Pattern     string             `json:"pattern,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
	Example     any                `json:"example,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
}

// Response describes a single response from an operation.
//
// See: https://swagger.io/specification/v2/#response-object
type Response struct {
	Description string  `json:"description"`
	Schema      *Schema `json:"schema,omitempty"`
}
