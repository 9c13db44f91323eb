package validation

import (
	"net/http"
	"strings"
	"sync"
)

// Request locations a schema group can describe.
const (
	LocationParams  = "params"
	LocationQuery   = "query"
	LocationHeaders = "headers"
	LocationBody    = "body"
)

// Group is the object node describing one request location.
type Group struct {
	Location string
	Node     *Node
}

// Schema describes a request, one group per location, in declaration order.
type Schema struct {
	Groups []Group
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{}
}

// With appends fields to the group for location, creating it on first use.
func (s *Schema) With(location string, fields ...Field) *Schema {
	for _, g := range s.Groups {
		if g.Location == location {
			g.Node.Fields = append(g.Node.Fields, fields...)
			return s
		}
	}
	s.Groups = append(s.Groups, Group{Location: location, Node: Object(fields...)})

	return s
}

func (s *Schema) Params(fields ...Field) *Schema { return s.With(LocationParams, fields...) }
func (s *Schema) Query(fields ...Field) *Schema { return s.With(LocationQuery, fields...) }
func (s *Schema) Headers(fields ...Field) *Schema { return s.With(LocationHeaders, fields...) }
func (s *Schema) Body(fields ...Field) *Schema { return s.With(LocationBody, fields...) }

// Carrier is implemented by handlers that carry the schema of their request.
type Carrier interface {
	ValidationSchema() *Schema
}

// Handler wraps an http.Handler with the schema describing its requests.
type Handler struct {
	http.Handler
	Schema *Schema
}

// ValidationSchema implements Carrier.
func (h *Handler) ValidationSchema() *Schema {
	return h.Schema
}

// Wrap attaches schema to h.
func Wrap(h http.Handler, schema *Schema) *Handler {
	return &Handler{Handler: h, Schema: schema}
}

// WrapFunc attaches schema to f.
func WrapFunc(f func(http.ResponseWriter, *http.Request), schema *Schema) *Handler {
	return Wrap(http.HandlerFunc(f), schema)
}

// SchemaOf returns the schema carried by v, or nil.
func SchemaOf(v any) *Schema {
	if c, ok := v.(Carrier); ok {
		return c.ValidationSchema()
	}

	return nil
}

// Registry maps (method, path template) to schemas for routers whose
// handlers cannot carry them.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

func registryKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Register records schema for method and path, replacing any previous one.
func (r *Registry) Register(method, path string, schema *Schema) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[registryKey(method, path)] = schema

	return r
}

// Lookup returns the schema registered for method and path, or nil.
func (r *Registry) Lookup(method, path string) *Schema {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.schemas[registryKey(method, path)]
}
