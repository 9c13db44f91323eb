// Package generator runs the documentation pipeline: route discovery,
// parameter merging against the documentation store, error outcome
// injection and artifact assembly.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vitalvas/swaggen/blob"
	"github.com/vitalvas/swaggen/discovery"
	"github.com/vitalvas/swaggen/errscan"
	"github.com/vitalvas/swaggen/inject"
	"github.com/vitalvas/swaggen/merge"
	"github.com/vitalvas/swaggen/routetable"
	"github.com/vitalvas/swaggen/store"
	"github.com/vitalvas/swaggen/swagger"
)

// Confirmation messages reported after a successful run.
const (
	MessageGenerated   = "Documentation has been generated"
	MessageOverwritten = "Documentation has been overwritten"
)

// Result describes a completed run.
type Result struct {
	RunID    string
	Document *swagger.Document
	// Data is the encoded artifact.
	Data []byte
	// Output is the file written, if any.
	Output string
	// Overwritten reports that Output existed before the run.
	Overwritten bool
	// Skipped lists handler files whose analysis failed.
	Skipped []error
}

// Message returns the confirmation for the run.
func (r *Result) Message() string {
	if r.Overwritten {
		return MessageOverwritten
	}

	return MessageGenerated
}

// Generator produces documentation for routing tables.
type Generator struct {
	cfg      Config
	logger   *zap.Logger
	bucket   blob.Bucket
	template *swagger.Document
}

// Option configures a Generator.
type Option func(*Generator)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithBucket replaces the storage selected by the configuration.
func WithBucket(b blob.Bucket) Option {
	return func(g *Generator) {
		g.bucket = b
	}
}

// WithTemplate sets the base document, taking precedence over
// Config.BaseTemplate.
func WithTemplate(doc *swagger.Document) Option {
	return func(g *Generator) {
		g.template = doc
	}
}

// New returns a Generator for cfg.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Run generates documentation for table with a Generator built from cfg.
func Run(ctx context.Context, table routetable.Table, cfg Config, opts ...Option) (*Result, error) {
	return New(cfg, opts...).Run(ctx, table)
}

// Run generates documentation for table. Any failure aborts the run except
// routes whose pattern cannot be decoded and handler files that cannot be
// analyzed. The store settings are not checked when a bucket is given.
func (g *Generator) Run(ctx context.Context, table routetable.Table) (*Result, error) {
	if err := g.cfg.validate(g.bucket == nil); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := g.logger.With(zap.String("run_id", runID))

	template, err := g.baseTemplate()
	if err != nil {
		return nil, err
	}

	bucket := g.bucket
	if bucket == nil {
		bucket, err = g.cfg.Bucket()
		if err != nil {
			return nil, err
		}
	}
	docs := store.New(bucket, store.WithLogger(logger))

	routes := discovery.New(discovery.WithLogger(logger)).Walk(table)
	logger.Debug("routes discovered", zap.Int("routes", len(routes)))

	engine := merge.New(merge.Options{
		Reset:     g.cfg.ResetParameters,
		HideEmpty: g.cfg.HideEmpty,
		Store:     docs,
		Logger:    logger,
	})
	paths, err := engine.Run(ctx, routes)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	result := &Result{RunID: runID}

	if g.cfg.RoutesDir != "" {
		skipped, err := g.injectOutcomes(paths, logger)
		if err != nil {
			return nil, err
		}
		result.Skipped = skipped
	}

	definitions, err := docs.Definitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	doc := template.Clone()
	doc.Paths = paths
	if len(definitions) > 0 {
		if doc.Definitions == nil {
			doc.Definitions = make(map[string]json.RawMessage, len(definitions))
		}
		maps.Copy(doc.Definitions, definitions)
	}
	result.Document = doc

	if result.Data, err = g.encode(doc); err != nil {
		return nil, err
	}

	if g.cfg.ValidateArtifact {
		report, err := Validate(result.Data)
		if err != nil {
			return nil, err
		}
		logger.Debug("artifact validated", zap.String("version", report.Version), zap.Int("paths", report.Paths))
	}

	if g.cfg.Output != "" {
		if result.Overwritten, err = writeArtifact(g.cfg.Output, result.Data); err != nil {
			return nil, err
		}
		result.Output = g.cfg.Output
	}

	logger.Info("documentation generated",
		zap.Int("paths", len(paths)),
		zap.Int("definitions", len(doc.Definitions)),
		zap.String("output", result.Output),
		zap.Bool("overwritten", result.Overwritten),
	)

	return result, nil
}

func (g *Generator) baseTemplate() (*swagger.Document, error) {
	if g.template != nil {
		return g.template, nil
	}
	if g.cfg.BaseTemplate == "" {
		return swagger.DefaultTemplate(), nil
	}

	data, err := os.ReadFile(g.cfg.BaseTemplate)
	if err != nil {
		return nil, fmt.Errorf("generator: base template: %w", err)
	}

	doc, err := swagger.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("generator: base template: %w", err)
	}

	return doc, nil
}

// injectOutcomes scans the handler sources and rewrites matching responses.
// It returns the per-file failures, which do not abort the run.
func (g *Generator) injectOutcomes(paths map[string]swagger.PathItem, logger *zap.Logger) ([]error, error) {
	dict, err := errscan.LoadDictionary(g.cfg.ErrorDictionary)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	scanner := errscan.New(dict,
		errscan.WithQualifiers(g.cfg.ErrorQualifiers...),
		errscan.WithLogger(logger),
	)
	results, err := scanner.ScanDir(g.cfg.RoutesDir)
	if results == nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	skipped := multierr.Errors(err)
	if len(skipped) > 0 {
		logger.Warn("handler files not analyzed", zap.Int("files", len(skipped)))
	}

	changed := inject.New(results, inject.WithLogger(logger)).Apply(paths)
	logger.Debug("error outcomes injected", zap.Int("files", len(results)), zap.Int("operations", changed))

	return skipped, nil
}

func (g *Generator) encode(doc *swagger.Document) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch g.cfg.Format {
	case FormatYAML:
		data, err = doc.YAML()
	default:
		data, err = doc.JSON()
	}
	if err != nil {
		return nil, fmt.Errorf("generator: encode: %w", err)
	}

	return data, nil
}

// writeArtifact writes data to name and reports whether it replaced an
// existing file.
func writeArtifact(name string, data []byte) (bool, error) {
	_, err := os.Stat(name)
	existed := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("generator: output: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return false, fmt.Errorf("generator: output: %w", err)
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return false, fmt.Errorf("generator: output: %w", err)
	}

	return existed, nil
}
