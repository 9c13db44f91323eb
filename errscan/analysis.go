package errscan

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var verbs = map[string]string{
	"Get":     "get",
	"Post":    "post",
	"Put":     "put",
	"Patch":   "patch",
	"Delete":  "delete",
	"Head":    "head",
	"Options": "options",
}

// analysis is the state of one ScanFile call.
type analysis struct {
	scanner *Scanner
	fset    *token.FileSet
	funcs   map[string]*ast.FuncDecl
	methods map[string]*ast.FuncDecl
	result  FileResult
}

type methodCall struct {
	method string
	args   []ast.Expr
	pos    token.Pos
}

func (a *analysis) pos(p token.Pos) string {
	return a.fset.Position(p).String()
}

// registrations looks for registration chains among the top-level
// statements of a function body.
func (a *analysis) registrations(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		es, ok := stmt.(*ast.ExprStmt)
		if !ok {
			continue
		}
		call, ok := es.X.(*ast.CallExpr)
		if !ok {
			continue
		}
		if _, ok := verb(call); !ok {
			continue
		}

		err := a.chain(call)
		if errors.Is(err, ErrUnsupportedShape) {
			a.scanner.logger.Debug("registration skipped", zap.Error(err))
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func verb(call *ast.CallExpr) (string, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return "", false
	}
	method, ok := verbs[sel.Sel.Name]

	return method, ok
}

func (a *analysis) registration(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	return ok && a.scanner.registrations[sel.Sel.Name]
}

// chain follows a registration chain outward from its last call to the
// literal path it is registered on and records every method along it.
func (a *analysis) chain(call *ast.CallExpr) error {
	var (
		calls []methodCall
		route string
		err   error
	)

	for cur := call; ; {
		method, _ := verb(cur)
		inner, isCall := cur.Fun.(*ast.SelectorExpr).X.(*ast.CallExpr)

		if isCall {
			if _, ok := verb(inner); ok {
				calls = append(calls, methodCall{method: method, args: cur.Args, pos: cur.Pos()})
				cur = inner
				continue
			}
			if a.registration(inner) {
				calls = append(calls, methodCall{method: method, args: cur.Args, pos: cur.Pos()})
				route, err = a.literal(inner.Args, inner.Pos())
				break
			}
		}

		if len(cur.Args) < 2 {
			return fmt.Errorf("%w: %s: route without handler", ErrUnsupportedShape, a.pos(cur.Pos()))
		}
		calls = append(calls, methodCall{method: method, args: cur.Args[1:], pos: cur.Pos()})
		route, err = a.literal(cur.Args[:1], cur.Pos())
		break
	}
	if err != nil {
		return err
	}

	outcomes := make([][]Outcome, len(calls))
	for i, c := range calls {
		o, err := a.handler(c)
		if err != nil {
			return err
		}
		outcomes[i] = o
	}

	for i := len(calls) - 1; i >= 0; i-- {
		a.record(route, calls[i].method, outcomes[i])
	}

	return nil
}

func (a *analysis) literal(args []ast.Expr, pos token.Pos) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: %s: missing path", ErrUnsupportedShape, a.pos(pos))
	}

	lit, ok := args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", fmt.Errorf("%w: %s: non-literal path", ErrUnsupportedShape, a.pos(args[0].Pos()))
	}

	path, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnsupportedShape, a.pos(lit.Pos()), err)
	}
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w: %s: path %q is not absolute", ErrUnsupportedShape, a.pos(lit.Pos()), path)
	}

	return path, nil
}

func (a *analysis) record(route, method string, outcomes []Outcome) {
	if outcomes == nil {
		outcomes = []Outcome{}
	}

	if r := a.result.Route(route); r != nil {
		if existing, ok := r.Methods[method]; ok {
			outcomes = append(existing, outcomes...)
		} else {
			r.Order = append(r.Order, method)
		}
		r.Methods[method] = outcomes
		return
	}

	a.result.Routes = append(a.result.Routes, RouteOutcomes{
		Route:   route,
		Methods: map[string][]Outcome{method: outcomes},
		Order:   []string{method},
	})
}

func (a *analysis) handler(c methodCall) ([]Outcome, error) {
	if len(c.args) == 0 {
		return nil, fmt.Errorf("%w: %s: no handler", ErrUnsupportedShape, a.pos(c.pos))
	}

	body := a.body(c.args[len(c.args)-1], true)
	if body == nil {
		return nil, nil
	}

	return a.walk(body.List)
}

// body returns the statements of a handler expression. A call wrapping a
// handler is unwrapped once.
func (a *analysis) body(expr ast.Expr, unwrap bool) *ast.BlockStmt {
	switch e := expr.(type) {
	case *ast.FuncLit:
		return e.Body
	case *ast.Ident:
		if fn, ok := a.funcs[e.Name]; ok {
			return fn.Body
		}
	case *ast.SelectorExpr:
		if fn, ok := a.methods[e.Sel.Name]; ok {
			return fn.Body
		}
	case *ast.CallExpr:
		if !unwrap {
			return nil
		}
		for i := len(e.Args) - 1; i >= 0; i-- {
			if b := a.body(e.Args[i], false); b != nil {
				return b
			}
		}
	}

	return nil
}

func (a *analysis) walk(stmts []ast.Stmt) ([]Outcome, error) {
	var out []Outcome
	for _, stmt := range stmts {
		o, err := a.stmt(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, o...)
	}

	return out, nil
}

func (a *analysis) stmt(stmt ast.Stmt) ([]Outcome, error) {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		out, err := a.walk(s.Body.List)
		if err != nil || s.Else == nil {
			return out, err
		}
		rest, err := a.stmt(s.Else)
		if err != nil {
			return nil, err
		}
		return append(out, rest...), nil

	case *ast.BlockStmt:
		return a.walk(s.List)

	case *ast.ReturnStmt:
		for _, r := range s.Results {
			if o, ok, err := a.throw(r); ok || err != nil {
				return o, err
			}
		}

	case *ast.ExprStmt:
		call, ok := s.X.(*ast.CallExpr)
		if !ok {
			return nil, nil
		}
		if id, ok := call.Fun.(*ast.Ident); ok && id.Name == "panic" && len(call.Args) == 1 {
			o, _, err := a.throw(call.Args[0])
			return o, err
		}
		return a.closure(call)

	case *ast.AssignStmt:
		var out []Outcome
		for _, rhs := range s.Rhs {
			if call, ok := rhs.(*ast.CallExpr); ok {
				o, err := a.closure(call)
				if err != nil {
					return nil, err
				}
				out = append(out, o...)
			}
		}
		return out, nil

	case *ast.SwitchStmt:
		return a.clauses(s.Body)
	case *ast.TypeSwitchStmt:
		return a.clauses(s.Body)
	case *ast.SelectStmt:
		return a.clauses(s.Body)

	case *ast.ForStmt:
		return a.walk(s.Body.List)
	case *ast.RangeStmt:
		return a.walk(s.Body.List)

	case *ast.LabeledStmt:
		return a.stmt(s.Stmt)
	}

	return nil, nil
}

// closure walks an immediately invoked function literal.
func (a *analysis) closure(call *ast.CallExpr) ([]Outcome, error) {
	lit, ok := call.Fun.(*ast.FuncLit)
	if !ok {
		return nil, nil
	}

	return a.walk(lit.Body.List)
}

func (a *analysis) clauses(body *ast.BlockStmt) ([]Outcome, error) {
	var out []Outcome
	for _, clause := range body.List {
		var stmts []ast.Stmt
		switch c := clause.(type) {
		case *ast.CaseClause:
			stmts = c.Body
		case *ast.CommClause:
			stmts = c.Body
		}

		o, err := a.walk(stmts)
		if err != nil {
			return nil, err
		}
		out = append(out, o...)
	}

	return out, nil
}

// throw resolves a returned or panicked value. It reports false when the
// value names no kind.
func (a *analysis) throw(expr ast.Expr) ([]Outcome, bool, error) {
	kind, ok := a.kind(expr)
	if !ok {
		return nil, false, nil
	}

	status, ok := a.scanner.dict[kind]
	if !ok {
		return nil, true, fmt.Errorf("%w: %s at %s", ErrUnknownKind, kind, a.pos(expr.Pos()))
	}

	return []Outcome{{Kind: kind, Status: status}}, true, nil
}

func (a *analysis) known(kind string) bool {
	_, ok := a.scanner.dict[kind]
	return ok
}

// qualified reports whether expr is a selector directly on a qualifier.
func (a *analysis) qualified(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	id, ok := sel.X.(*ast.Ident)

	return ok && a.scanner.qualifiers[id.Name]
}

// kind finds the dictionary kind an expression refers to.
func (a *analysis) kind(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		if id, ok := e.X.(*ast.Ident); ok && a.scanner.qualifiers[id.Name] {
			return e.Sel.Name, true
		}
		if _, ok := e.X.(*ast.SelectorExpr); ok {
			return a.kind(e.X)
		}

	case *ast.CallExpr:
		// errs.New(...) and errs.Wrap(...) are helpers, not kinds.
		if k, ok := a.kind(e.Fun); ok && (a.known(k) || !a.qualified(e.Fun)) {
			return k, true
		}
		for _, arg := range e.Args {
			if k, ok := a.kind(arg); ok {
				return k, true
			}
		}

	case *ast.ParenExpr:
		return a.kind(e.X)
	case *ast.UnaryExpr:
		return a.kind(e.X)
	}

	return "", false
}
