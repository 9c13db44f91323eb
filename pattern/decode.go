package pattern

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoPath is returned when an expression does not describe a literal path
// with capture groups.
var ErrNoPath = errors.New("no path")

// marker delimits the names substitute writes in place of capture groups.
const marker = "\x00"

// extractRegexp matches a substituted expression: an optional start anchor,
// the path body, an optional trailing-slash group and an optional end anchor.
// The body may hold escaped characters, literal characters and name
// markers. Anything else left over, a bare dot or a quantifier included,
// means the expression is not a path.
var extractRegexp = regexp.MustCompile(`^\^?((?:\\.|[^\\^$|?*+.()\[\]{}\x00]|\x00[^\x00]+\x00)*?)(?:\[/\]\?|\\?/\?)?\$?$`)

// unescapeRegexp drops the backslash in front of escaped characters.
var unescapeRegexp = regexp.MustCompile(`\\(.)`)

// Decode recovers the path template described by p. Capture groups are
// replaced, left to right, with {name} markers taken from p.Names, and the
// result must reduce to a literal path. A capture-free literal path decodes
// to itself.
func Decode(p Pattern) (string, error) {
	names := p.Names
	substituted, err := substitute(p.Expr, &names)
	if err != nil {
		return "", err
	}

	m := extractRegexp.FindStringSubmatch(substituted)
	if m == nil {
		return "", ErrNoPath
	}

	// odd parts are names, even parts literal text
	parts := strings.Split(m[1], marker)
	var out strings.Builder
	for i, part := range parts {
		if i%2 == 1 {
			out.WriteString("{" + part + "}")
			continue
		}
		out.WriteString(unescapeRegexp.ReplaceAllString(part, "$1"))
	}

	return out.String(), nil
}

// substitute rewrites the capture groups of expr as name markers,
// consuming names in order. Non-capturing groups that wrap nothing but
// substitutable content are flattened; zero-width groups (flags,
// lookarounds) are dropped.
func substitute(expr string, names *[]string) (string, error) {
	var out strings.Builder

	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; c {
		case '\\':
			out.WriteByte(c)
			if i+1 < len(expr) {
				i++
				out.WriteByte(expr[i])
			}

		case '[':
			end := classEnd(expr, i)
			if end < 0 {
				return "", ErrNoPath
			}
			out.WriteString(expr[i : end+1])
			i = end

		case '(':
			end := groupEnd(expr, i)
			if end < 0 {
				return "", ErrNoPath
			}
			inner := expr[i+1 : end]
			quantified := end+1 < len(expr) && strings.ContainsRune("?*+{", rune(expr[end+1]))

			switch groupKind(inner) {
			case groupCapture:
				if len(*names) == 0 || (*names)[0] == "" {
					return "", ErrNoPath
				}
				out.WriteString(marker + (*names)[0] + marker)
				*names = (*names)[1:]

			case groupPlain:
				body := inner[strings.IndexByte(inner, ':')+1:]
				if quantified {
					// kept verbatim so the extraction rejects it
					out.WriteString(expr[i : end+1])
					break
				}
				flat, err := substitute(body, names)
				if err != nil {
					return "", err
				}
				out.WriteString(flat)

			case groupZeroWidth:
			}
			i = end

		default:
			out.WriteByte(c)
		}
	}

	return out.String(), nil
}

type groupType int

const (
	groupCapture groupType = iota
	groupPlain
	groupZeroWidth
)

// groupKind classifies a group by the text following its opening paren.
func groupKind(inner string) groupType {
	if !strings.HasPrefix(inner, "?") {
		return groupCapture
	}
	if strings.HasPrefix(inner, "?P<") || strings.HasPrefix(inner, "?<") && !strings.HasPrefix(inner, "?<=") && !strings.HasPrefix(inner, "?<!") {
		return groupCapture
	}

	// (?:...) and (?flags:...) group without capturing; (?flags) and
	// lookarounds match nothing.
	flags := strings.TrimLeft(inner[1:], "imsU-")
	if strings.HasPrefix(flags, ":") {
		return groupPlain
	}

	return groupZeroWidth
}

// groupEnd returns the index of the paren closing the group opened at start,
// or -1 when unbalanced.
func groupEnd(expr string, start int) int {
	depth := 0
	for i := start; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case '[':
			end := classEnd(expr, i)
			if end < 0 {
				return -1
			}
			i = end
		case '(':
			depth++
		case ')':
			if depth--; depth == 0 {
				return i
			}
		}
	}

	return -1
}

// classEnd returns the index of the bracket closing the character class
// opened at start, or -1.
func classEnd(expr string, start int) int {
	i := start + 1
	if i < len(expr) && expr[i] == '^' {
		i++
	}
	// a leading ] is literal
	if i < len(expr) && expr[i] == ']' {
		i++
	}
	for ; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case ']':
			return i
		}
	}

	return -1
}
