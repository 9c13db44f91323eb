// Package store persists documentation fragments in a blob.Bucket.
//
// Layout:
//
//	definitions/<Name>.json|.yaml
//	paths/<escaped path>/<method>/metadata.json
//	paths/<escaped path>/<method>/responses.json
//	paths/<escaped path>/<method>/parameters.json
//
// Fragments may be hand written as YAML; they are always written back as JSON.
package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"github.com/vitalvas/swaggen/blob"
	"github.com/vitalvas/swaggen/swagger"
)

// ErrIO marks fragments that could not be read, decoded or written.
var ErrIO = errors.New("store: io failure")

const (
	definitionsDir = "definitions"
	pathsDir       = "paths"
	rootPath       = "_root"
	separator      = "__"

	metadataName   = "metadata"
	responsesName  = "responses"
	parametersName = "parameters"
)

var readExtensions = []string{".json", ".yaml", ".yml"}

// Metadata is the descriptive part of an operation.
type Metadata struct {
	Tags        []string `json:"tags,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	OperationID string   `json:"operationId,omitempty"`
	Consumes    []string `json:"consumes,omitempty"`
	Produces    []string `json:"produces,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

// Fragment is everything persisted for one path and method. Absent pieces
// are nil after Load.
type Fragment struct {
	Metadata   *Metadata
	Responses  map[string]*swagger.Response
	Parameters []*swagger.Parameter
}

// Store reads and writes fragments.
type Store struct {
	bucket blob.Bucket
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns a store over bucket.
func New(bucket blob.Bucket, opts ...Option) *Store {
	s := &Store{bucket: bucket, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// EscapePath turns a path template into a single key segment.
// "/users/{id}" becomes "users__{id}" and "/" becomes "_root".
func EscapePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return rootPath
	}

	return strings.ReplaceAll(p, "/", separator)
}

// UnescapePath reverses EscapePath.
func UnescapePath(segment string) string {
	if segment == rootPath {
		return "/"
	}

	return "/" + strings.ReplaceAll(segment, separator, "/")
}

func fragmentKey(p, method, name string) string {
	return path.Join(pathsDir, EscapePath(p), strings.ToLower(method), name)
}

// Definitions returns every stored definition keyed by name, as JSON.
func (s *Store) Definitions(ctx context.Context) (map[string]json.RawMessage, error) {
	keys, err := s.bucket.List(ctx, definitionsDir+"/")
	if err != nil {
		return nil, fmt.Errorf("%w: list definitions: %w", ErrIO, err)
	}

	defs := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		ext := path.Ext(key)
		name := strings.TrimSuffix(path.Base(key), ext)
		if !slices.Contains(readExtensions, ext) || name == "" {
			s.logger.Debug("definition skipped", zap.String("key", key))
			continue
		}
		if _, ok := defs[name]; ok {
			s.logger.Warn("duplicate definition, keeping first", zap.String("key", key))
			continue
		}

		data, err := s.bucket.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrIO, key, err)
		}
		raw, err := toJSON(ext, data)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", ErrIO, key, err)
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%w: decode %s: invalid json", ErrIO, key)
		}
		defs[name] = raw
	}

	return defs, nil
}

// Load reads the fragment stored for p and method.
func (s *Store) Load(ctx context.Context, p, method string) (Fragment, error) {
	var f Fragment

	if _, err := s.read(ctx, fragmentKey(p, method, metadataName), &f.Metadata); err != nil {
		return Fragment{}, err
	}
	if _, err := s.read(ctx, fragmentKey(p, method, responsesName), &f.Responses); err != nil {
		return Fragment{}, err
	}
	if _, err := s.read(ctx, fragmentKey(p, method, parametersName), &f.Parameters); err != nil {
		return Fragment{}, err
	}

	return f, nil
}

// Save writes the fragment for p and method. Nil responses and parameters
// are written as empty collections.
func (s *Store) Save(ctx context.Context, p, method string, f Fragment) error {
	metadata := f.Metadata
	if metadata == nil {
		metadata = &Metadata{}
	}
	responses := f.Responses
	if responses == nil {
		responses = map[string]*swagger.Response{}
	}
	parameters := f.Parameters
	if parameters == nil {
		parameters = []*swagger.Parameter{}
	}

	if err := s.write(ctx, fragmentKey(p, method, metadataName), metadata); err != nil {
		return err
	}
	if err := s.write(ctx, fragmentKey(p, method, responsesName), responses); err != nil {
		return err
	}

	return s.write(ctx, fragmentKey(p, method, parametersName), parameters)
}

// read decodes the first existing variant of base into v. It reports
// whether anything was found.
func (s *Store) read(ctx context.Context, base string, v any) (bool, error) {
	for _, ext := range readExtensions {
		key := base + ext
		data, err := s.bucket.Get(ctx, key)
		if errors.Is(err, blob.ErrNotFound) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("%w: read %s: %w", ErrIO, key, err)
		}

		raw, err := toJSON(ext, data)
		if err != nil {
			return false, fmt.Errorf("%w: decode %s: %w", ErrIO, key, err)
		}
		if err := json.Unmarshal(raw, v); err != nil {
			return false, fmt.Errorf("%w: decode %s: %w", ErrIO, key, err)
		}

		return true, nil
	}

	return false, nil
}

func (s *Store) write(ctx context.Context, base string, v any) error {
	key := base + ".json"

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrIO, key, err)
	}

	if err := s.bucket.Put(ctx, key, append(data, '\n')); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, key, err)
	}

	s.logger.Debug("fragment written", zap.String("key", key))

	return nil
}

func toJSON(ext string, data []byte) ([]byte, error) {
	if ext == ".json" {
		return data, nil
	}

	return yaml.YAMLToJSON(data)
}
