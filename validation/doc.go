// Package validation describes the expected shape of requests as tagged
// node trees, grouped by request location (path parameters, query, headers
// and body).
//
// Schemas are attached to routes either by wrapping handlers (Wrap,
// WrapFunc), through a Registry for routers whose handlers cannot carry
// data, or derived from tagged structs with FromStruct.
package validation
