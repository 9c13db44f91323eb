package pattern

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// WildcardName is the capture name given to catch-all segments ("*", "+").
const WildcardName = "*"

const defaultPattern = "[^/]+"

// Pattern is a path-matching regular expression together with the names of
// its capture groups, in order of appearance.
type Pattern struct {
	Expr  string
	Names []string
}

// Options control how a template is compiled.
type Options struct {
	// Prefix compiles a mount pattern: no end anchor.
	Prefix bool
	// StrictSlash makes a trailing slash optional.
	StrictSlash bool
}

// Regexp returns the compiled expression.
func (p Pattern) Regexp() (*regexp.Regexp, error) {
	return compileRegexp(p.Expr)
}

// Compile parses a route template and returns its Pattern. Recognized
// variable forms are {name}, {name:regexp}, {name:macro}, :name, :name?,
// :name<constraint>, and the catch-all markers * and +. Results are cached
// per template and options.
func Compile(tpl string, opts Options) (Pattern, error) {
	p, err := templates.get(templateKey(tpl, opts), func() (Pattern, error) {
		return compile(tpl, opts)
	})
	if err != nil {
		return Pattern{}, err
	}

	return Pattern{Expr: p.Expr, Names: slices.Clone(p.Names)}, nil
}

func compile(tpl string, opts Options) (Pattern, error) {
	var (
		expr  bytes.Buffer
		names []string
		raw   strings.Builder
	)

	flush := func() {
		expr.WriteString(regexp.QuoteMeta(raw.String()))
		raw.Reset()
	}

	body := tpl
	if opts.StrictSlash && len(body) > 1 && strings.HasSuffix(body, "/") {
		body = strings.TrimSuffix(body, "/")
	}

	expr.WriteByte('^')

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '{':
			end, err := closingBrace(body, i)
			if err != nil {
				return Pattern{}, err
			}

			name, patt, _ := strings.Cut(body[i+1:end], ":")
			if name == "" {
				return Pattern{}, fmt.Errorf("pattern: missing name in %q from %q", body[i:end+1], tpl)
			}
			if patt == "" {
				patt = defaultPattern
			} else {
				patt = expandMacro(patt)
			}

			flush()
			fmt.Fprintf(&expr, "(%s)", patt)
			names = append(names, name)
			i = end

		case c == ':' && (i == 0 || body[i-1] == '/'):
			j := i + 1
			for j < len(body) && isNameByte(body[j]) {
				j++
			}
			if j == i+1 {
				raw.WriteByte(c)
				continue
			}

			name := body[i+1 : j]
			patt := defaultPattern
			if j < len(body) && body[j] == '<' {
				k := strings.IndexByte(body[j:], '>')
				if k < 0 {
					return Pattern{}, fmt.Errorf("pattern: unterminated constraint in %q", tpl)
				}
				if m, ok := fiberConstraints[body[j+1:j+k]]; ok {
					patt = expandMacro(m)
				}
				j += k + 1
			}
			// optional parameters are documented like required ones
			if j < len(body) && body[j] == '?' {
				j++
			}

			flush()
			fmt.Fprintf(&expr, "(%s)", patt)
			names = append(names, name)
			i = j - 1

		case c == '*' || c == '+':
			flush()
			if c == '*' {
				expr.WriteString("(.*)")
			} else {
				expr.WriteString("(.+)")
			}
			names = append(names, WildcardName)

		default:
			raw.WriteByte(c)
		}
	}
	flush()

	if err := checkDuplicateVars(names); err != nil {
		return Pattern{}, err
	}

	if opts.StrictSlash && !opts.Prefix && strings.HasSuffix(tpl, "/") && len(tpl) > 1 {
		expr.WriteString("[/]?")
	}

	if !opts.Prefix {
		expr.WriteByte('$')
	}

	if _, err := compileRegexp(expr.String()); err != nil {
		return Pattern{}, fmt.Errorf("pattern: invalid template %q: %w", tpl, err)
	}

	return Pattern{Expr: expr.String(), Names: names}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(tpl string, opts Options) Pattern {
	p, err := Compile(tpl, opts)
	if err != nil {
		panic(err)
	}

	return p
}

// closingBrace returns the index of the brace closing the one at start.
func closingBrace(s string, start int) (int, error) {
	level := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			level++
		case '}':
			if level--; level == 0 {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("pattern: unbalanced braces in %q", s)
}

// checkDuplicateVars returns an error if any variable name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] && v != WildcardName {
			return fmt.Errorf("pattern: duplicated route variable %q", v)
		}
		seen[v] = true
	}

	return nil
}

func isNameByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
