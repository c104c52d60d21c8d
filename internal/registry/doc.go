// Package registry implements the catalog of callable tools.
//
// A Registry maps tool names to a descriptor (an official MCP tool definition
// whose input schema is a jsonschema.Schema) and a handler. Tools keep their
// registration order, which is the order tools/list reports them in.
//
// Invoke validates arguments against the tool's schema before the handler
// runs: declared defaults are filled in, required properties must be present,
// and property types must match. Validation failures name the offending field
// so callers can report them precisely.
//
// The registry is read-mostly and safe for concurrent use.
package registry
