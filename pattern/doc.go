// Package pattern converts between readable path templates and the regular
// expressions routers match requests with.
//
// Compile turns a template such as "/users/{id:int}" or "/users/:id" into a
// Pattern: the regexp text plus the ordered capture names. Decode goes the
// other way and recovers a template from a Pattern a router exposes, without
// knowing which router produced it:
//
//	p := pattern.Pattern{Expr: `^/users/(?P<v0>[^/]+)$`, Names: []string{"id"}}
//	path, err := pattern.Decode(p) // "/users/{id}"
//
// Decode returns ErrNoPath when the expression is anything other than a
// literal path with capture groups, such as a catch-all mount.
package pattern
