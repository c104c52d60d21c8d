// Package mcp mounts the tool registry on the official Model Context
// Protocol SDK server.
//
// The stdio loop is served by the protocol package; this package serves the
// same tools over the SDK's streamable HTTP transport, so both surfaces
// share one registry and one validation path.
package mcp
