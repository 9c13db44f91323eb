// Package errscan statically recovers, from handler source files, which
// error kinds each route and method can fail with.
//
// Routes are recognized in fiber style registration chains:
//
//	app.Route("/users/:id").
//		Get(validate(schemas.User), guard(func(c fiber.Ctx) error { ... })).
//		Delete(deleteUser)
//
//	app.Get("/health", health)
//
// Inside a handler, a failure is a `return`, or a `panic`, whose value names
// a kind through a dictionary qualifier: errs.NotFound, errs.NotFound(...),
// errs.NotFound.With(...) or wrap(errs.NotFound). Other functions of a
// qualifier package, such as errs.New(...), name no kind of their own.
package errscan

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedShape marks a registration the scanner cannot follow.
	// It only drops that registration.
	ErrUnsupportedShape = errors.New("unsupported shape")
	// ErrUnknownKind marks a failure naming a kind missing from the
	// dictionary. It aborts the analysis of the whole file.
	ErrUnknownKind = errors.New("unknown error kind")
)

// Defaults for Options.
var (
	DefaultQualifiers    = []string{"errs"}
	DefaultRegistrations = []string{"Route", "RouteChain"}
)

// Outcome is one failure a handler can produce.
type Outcome struct {
	Kind   string `json:"kind" yaml:"kind"`
	Status int    `json:"status" yaml:"status"`
}

// RouteOutcomes holds the outcomes of one literal route, by lower-case method.
// Order lists the methods as they appear in the source.
type RouteOutcomes struct {
	Route   string               `json:"route" yaml:"route"`
	Methods map[string][]Outcome `json:"methods" yaml:"methods"`
	Order   []string             `json:"order" yaml:"order"`
}

// FileResult is the analysis of one source file.
type FileResult struct {
	File string `json:"file" yaml:"file"`
	// Resource is the file path relative to the scanned directory, without
	// extension, e.g. "users".
	Resource string          `json:"resource" yaml:"resource"`
	Routes   []RouteOutcomes `json:"routes" yaml:"routes"`
}

// Route returns the outcomes recorded for route, or nil.
func (f *FileResult) Route(route string) *RouteOutcomes {
	for i := range f.Routes {
		if f.Routes[i].Route == route {
			return &f.Routes[i]
		}
	}

	return nil
}

// Scanner analyzes handler sources.
type Scanner struct {
	dict          Dictionary
	qualifiers    map[string]bool
	registrations map[string]bool
	logger        *zap.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithQualifiers sets the package names that refer to the error dictionary.
func WithQualifiers(names ...string) Option {
	return func(s *Scanner) {
		s.qualifiers = set(names)
	}
}

// WithRegistrations sets the functions that start a registration chain.
func WithRegistrations(names ...string) Option {
	return func(s *Scanner) {
		s.registrations = set(names)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New returns a Scanner resolving kinds through dict.
func New(dict Dictionary, opts ...Option) *Scanner {
	s := &Scanner{
		dict:          dict,
		qualifiers:    set(DefaultQualifiers),
		registrations: set(DefaultRegistrations),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func set(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}

	return m
}

// ScanDir analyzes every .go file below dir, skipping tests. Files that fail
// are left out of the results; their errors are combined into the returned
// error, which does not invalidate the results. Results are nil only when
// dir cannot be walked.
func (s *Scanner) ScanDir(dir string) ([]FileResult, error) {
	results := []FileResult{}
	var errs error

	walkErr := filepath.WalkDir(dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}

		rel, err := filepath.Rel(dir, name)
		if err != nil {
			return err
		}

		result, err := s.ScanFile(name, nil)
		if err != nil {
			s.logger.Warn("file analysis failed", zap.String("file", name), zap.Error(err))
			errs = multierr.Append(errs, err)
			return nil
		}
		result.Resource = strings.TrimSuffix(filepath.ToSlash(rel), ".go")
		results = append(results, result)

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("errscan: %w", walkErr)
	}

	return results, errs
}

// ScanFile analyzes one file. src is passed to go/parser; when nil the file
// is read from disk. The result's Resource is the base name without
// extension.
func (s *Scanner) ScanFile(name string, src any) (FileResult, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, name, src, parser.SkipObjectResolution)
	if err != nil {
		return FileResult{}, fmt.Errorf("errscan: %w", err)
	}

	a := &analysis{
		scanner: s,
		fset:    fset,
		funcs:   make(map[string]*ast.FuncDecl),
		methods: make(map[string]*ast.FuncDecl),
		result: FileResult{
			File:     name,
			Resource: strings.TrimSuffix(filepath.Base(name), ".go"),
		},
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		if fn.Recv != nil {
			a.methods[fn.Name.Name] = fn
			continue
		}
		a.funcs[fn.Name.Name] = fn
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		if err := a.registrations(fn.Body.List); err != nil {
			return FileResult{}, fmt.Errorf("errscan: %s: %w", name, err)
		}
	}

	return a.result, nil
}
