// Package swagger holds the Swagger 2.0 document model the generator
// emits, with JSON and YAML encodings.
//
// Keys of a base template that the model does not name (security
// definitions, vendor extensions, ...) are kept and written back unchanged.
//
// See: https://swagger.io/specification/v2/
package swagger
