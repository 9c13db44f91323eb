package pattern

// patternMacros maps macro names usable as {name:macro} to their regexp.
var patternMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
	"domain":   `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`,
}

// fiberConstraints maps fiber-style :name<constraint> constraints to macros.
var fiberConstraints = map[string]string{
	"int":      "int",
	"bool":     `true|false`,
	"float":    "float",
	"alpha":    "alpha",
	"guid":     "uuid",
	"datetime": "date",
}

// expandMacro returns the regexp for a macro name, or the input unchanged
// when it is not a known macro.
func expandMacro(name string) string {
	if p, ok := patternMacros[name]; ok {
		return p
	}

	return name
}
