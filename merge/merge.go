// Package merge reconciles freshly generated parameters with the fragments
// persisted in the documentation store and assembles the operations of the
// final document.
package merge

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/vitalvas/swaggen/discovery"
	"github.com/vitalvas/swaggen/store"
	"github.com/vitalvas/swaggen/swagger"
	"github.com/vitalvas/swaggen/translate"
)

// DefaultProduces is the media type list of operations without metadata.
var DefaultProduces = []string{"application/json"}

// DefaultTag is used for paths without a resource segment.
const DefaultTag = "default"

var versionSegment = regexp.MustCompile(`^v?\d+$`)

// Store is the persistence the engine reads from and writes back to.
type Store interface {
	Load(ctx context.Context, path, method string) (store.Fragment, error)
	Save(ctx context.Context, path, method string, f store.Fragment) error
}

// Options configures an Engine.
type Options struct {
	// Reset discards persisted parameters instead of merging with them.
	Reset bool
	// HideEmpty omits methods without parameters and skips their write-back.
	HideEmpty bool
	// Store is optional; without one every fragment starts empty and
	// nothing is written.
	Store  Store
	Logger *zap.Logger
}

// Engine merges discovered routes into document paths.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// New returns an Engine.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{opts: opts, logger: logger}
}

// Run processes routes in order and returns the resulting paths. Routes
// left without methods are not included.
func (e *Engine) Run(ctx context.Context, routes []discovery.RouteEntry) (map[string]swagger.PathItem, error) {
	paths := make(map[string]swagger.PathItem)

	for _, route := range routes {
		item := make(swagger.PathItem)

		for _, m := range route.Methods {
			op, err := e.operation(ctx, route.Path, m)
			if err != nil {
				return nil, fmt.Errorf("merge: %s %s: %w", strings.ToUpper(m.Method), route.Path, err)
			}
			if op == nil {
				continue
			}
			item[m.Method] = op
		}

		if len(item) == 0 {
			e.logger.Debug("route omitted, no methods left", zap.String("path", route.Path))
			continue
		}

		if existing, ok := paths[route.Path]; ok {
			for method, op := range item {
				existing[method] = op
			}
			continue
		}
		paths[route.Path] = item
	}

	return paths, nil
}

// operation builds one method. It returns nil when the method is hidden.
func (e *Engine) operation(ctx context.Context, path string, m discovery.MethodEntry) (*swagger.Operation, error) {
	var persisted store.Fragment
	if e.opts.Store != nil {
		f, err := e.opts.Store.Load(ctx, path, m.Method)
		if err != nil {
			return nil, err
		}
		persisted = f
	}

	metadata := persisted.Metadata
	if metadata == nil {
		metadata = DefaultMetadata(path, m.Method)
	}
	responses := persisted.Responses
	if responses == nil {
		responses = make(map[string]*swagger.Response)
	}

	descriptors, err := translate.Schema(m.Schema)
	if err != nil {
		return nil, err
	}
	draft := translate.Render(descriptors)

	parameters := draft
	if !e.opts.Reset {
		parameters = Parameters(draft, persisted.Parameters)
	}

	if e.opts.HideEmpty && len(parameters) == 0 {
		e.logger.Debug("method hidden, no parameters",
			zap.String("path", path),
			zap.String("method", m.Method),
		)
		return nil, nil
	}

	if e.opts.Store != nil {
		err := e.opts.Store.Save(ctx, path, m.Method, store.Fragment{
			Metadata:   metadata,
			Responses:  responses,
			Parameters: parameters,
		})
		if err != nil {
			return nil, err
		}
	}

	return &swagger.Operation{
		Tags:        metadata.Tags,
		Summary:     metadata.Summary,
		Description: metadata.Description,
		OperationID: metadata.OperationID,
		Consumes:    metadata.Consumes,
		Produces:    metadata.Produces,
		Deprecated:  metadata.Deprecated,
		Parameters:  parameters,
		Responses:   responses,
	}, nil
}

// DefaultMetadata is the metadata of an operation never documented by hand.
func DefaultMetadata(path, method string) *store.Metadata {
	return &store.Metadata{
		Tags:     []string{Tag(path)},
		Summary:  strings.ToUpper(method) + " - " + path,
		Produces: append([]string(nil), DefaultProduces...),
	}
}

// Tag derives the grouping tag of a path: its first segment after an
// optional version segment, without braces. "/v1/users/{id}" is tagged
// "users".
func Tag(path string) string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		s = strings.Trim(s, "{}")
		if s != "" {
			segments = append(segments, s)
		}
	}

	if len(segments) > 1 && versionSegment.MatchString(segments[0]) {
		return segments[1]
	}
	if len(segments) > 0 {
		return segments[0]
	}

	return DefaultTag
}
